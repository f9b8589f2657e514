package repository

import (
	"context"

	"github.com/consultation-service/internal/domain"
)

// AdminRepository определяет доступ к учётным записям администраторов.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	GetByID(ctx context.Context, id string) (*domain.AdminUser, error)
	List(ctx context.Context) ([]*domain.AdminUser, error)

	// Create сохраняет нового администратора (хеш пароля уже вычислен).
	Create(ctx context.Context, admin *domain.AdminUser) (*domain.AdminUser, error)

	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id string) error

	// SetTwoFactor включает/выключает 2FA; secret=nil очищает секрет.
	SetTwoFactor(ctx context.Context, id string, enabled bool, secret *string) error

	Delete(ctx context.Context, id string) error
}
