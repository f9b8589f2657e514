package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/domain/repository"
	apperrors "github.com/consultation-service/internal/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const adminColumns = `
	id, username, password_hash, is_active, two_factor_enabled,
	two_factor_secret, mfa_exempt, last_login_at, created_at
`

type adminRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAdminRepository(db *DB) repository.AdminRepository {
	return &adminRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users WHERE username = $1`
	return r.getOne(ctx, query, username)
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *adminRepository) List(ctx context.Context) ([]*domain.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users ORDER BY created_at DESC`

	admins := make([]*domain.AdminUser, 0)
	if err := r.db.SelectContext(ctx, &admins, query); err != nil {
		r.logger.Error("Failed to list admin users", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return admins, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.AdminUser) (*domain.AdminUser, error) {
	query := `
		INSERT INTO admin_users (username, password_hash, is_active, mfa_exempt)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	created := *admin
	err := r.db.QueryRowContext(ctx, query,
		admin.Username, admin.PasswordHash, admin.IsActive, admin.MFAExempt,
	).Scan(&created.ID, &created.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperrors.ErrDuplicateAdmin
		}
		r.logger.Error("Failed to insert admin user",
			zap.String("username", admin.Username),
			zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &created, nil
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE admin_users SET password_hash = $1 WHERE id = $2`
	return r.execExpectingRow(ctx, query, passwordHash, id)
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id string) error {
	query := `UPDATE admin_users SET last_login_at = NOW() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id)
}

func (r *adminRepository) SetTwoFactor(ctx context.Context, id string, enabled bool, secret *string) error {
	query := `UPDATE admin_users SET two_factor_enabled = $1, two_factor_secret = $2 WHERE id = $3`
	return r.execExpectingRow(ctx, query, enabled, secret, id)
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM admin_users WHERE id = $1`
	return r.execExpectingRow(ctx, query, id)
}

func (r *adminRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.AdminUser, error) {
	var admin domain.AdminUser
	err := r.db.GetContext(ctx, &admin, query, arg)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrAdminNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get admin user", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return &admin, nil
}

func (r *adminRepository) execExpectingRow(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update admin user", zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read affected rows", zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if affected == 0 {
		return apperrors.ErrAdminNotFound
	}
	return nil
}
