package repository

import (
	"context"

	"github.com/consultation-service/internal/domain"
)

// ConsultationRepository определяет доступ к заявкам на консультацию.
type ConsultationRepository interface {
	// Create сохраняет новую заявку и возвращает id и created_at.
	Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error)

	// ListByUser возвращает неудалённые заявки пользователя, новые первыми.
	ListByUser(ctx context.Context, userID string) ([]*domain.Consultation, error)

	// GetByIDForUser возвращает заявку, если она принадлежит пользователю.
	GetByIDForUser(ctx context.Context, id, userID string) (*domain.Consultation, error)

	// Update изменяет заявку с фильтром по id И user_id в одной операции.
	// Возвращает ErrConsultationNotFound, если не затронуто ни одной строки.
	Update(ctx context.Context, c *domain.Consultation) error

	// SoftDelete помечает заявку удалённой (is_del='Y', deleted_at=now())
	// с фильтром по id, user_id и is_del='N'. Физического удаления нет.
	SoftDelete(ctx context.Context, id, userID string) error

	// AdminList возвращает неудалённые заявки по фильтрам с общим количеством.
	AdminList(ctx context.Context, filter domain.ConsultationFilter) ([]*domain.Consultation, int, error)

	// AdminGetByID возвращает заявку без проверки владельца.
	AdminGetByID(ctx context.Context, id string) (*domain.Consultation, error)

	// CountByUserIDs считает неудалённые заявки для набора пользователей.
	CountByUserIDs(ctx context.Context, userIDs []string) (map[string]int, error)
}
