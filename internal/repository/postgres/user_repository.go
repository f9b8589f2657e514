package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/domain/repository"
	apperrors "github.com/consultation-service/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *userRepository) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.Email != "" {
		addArg("email ILIKE $%d", "%"+filter.Email+"%")
	}
	if filter.DateFrom != "" {
		addArg("created_at >= $%d::timestamp", filter.DateFrom+" 00:00:00")
	}
	if filter.DateTo != "" {
		addArg("created_at <= $%d::timestamp", filter.DateTo+" 23:59:59")
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM users WHERE " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count users", zap.Error(err))
		return nil, 0, apperrors.ErrDatabaseError
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := fmt.Sprintf(`
		SELECT id, COALESCE(email, '') AS email, COALESCE(phone, '') AS phone,
		       created_at, last_sign_in_at
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	users := make([]*domain.User, 0)
	if err := r.db.SelectContext(ctx, &users, listQuery, args...); err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, 0, apperrors.ErrDatabaseError
	}

	return users, total, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, COALESCE(email, '') AS email, COALESCE(phone, '') AS phone,
		       created_at, last_sign_in_at
		FROM users
		WHERE id = $1
	`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.String("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return &user, nil
}
