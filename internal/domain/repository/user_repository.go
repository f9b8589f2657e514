package repository

import (
	"context"

	"github.com/consultation-service/internal/domain"
)

// UserRepository читает зеркало зарегистрированных пользователей.
type UserRepository interface {
	List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
