package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	apperrors "github.com/consultation-service/internal/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/consultation-service/internal/domain"
)

func setupAdminRepo(t *testing.T) (sqlmock.Sqlmock, *adminRepository, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "pgx")
	repo := NewAdminRepository(NewDBForTest(sqlxDB, zap.NewNop())).(*adminRepository)

	return mock, repo, func() { db.Close() }
}

func adminRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "password_hash", "is_active", "two_factor_enabled",
		"two_factor_secret", "mfa_exempt", "last_login_at", "created_at",
	})
}

func TestAdminRepository_GetByUsername(t *testing.T) {
	mock, repo, teardown := setupAdminRepo(t)
	defer teardown()

	secret := "JBSWY3DPEHPK3PXP"
	rows := adminRows().AddRow(
		"admin-1", "manager", "$2a$10$hash", true, true,
		secret, false, nil, time.Now(),
	)

	mock.ExpectQuery(`SELECT`).
		WithArgs("manager").
		WillReturnRows(rows)

	admin, err := repo.GetByUsername(context.Background(), "manager")

	require.NoError(t, err)
	assert.Equal(t, "admin-1", admin.ID)
	assert.True(t, admin.TwoFactorEnabled)
	require.NotNil(t, admin.TwoFactorSecret)
	assert.Equal(t, secret, *admin.TwoFactorSecret)
	assert.True(t, admin.RequiresTwoFactor())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_GetByUsername_NotFound(t *testing.T) {
	mock, repo, teardown := setupAdminRepo(t)
	defer teardown()

	mock.ExpectQuery(`SELECT`).
		WithArgs("ghost").
		WillReturnRows(adminRows())

	admin, err := repo.GetByUsername(context.Background(), "ghost")

	assert.Nil(t, admin)
	assert.ErrorIs(t, err, apperrors.ErrAdminNotFound)
}

func TestAdminRepository_Create_DuplicateUsername(t *testing.T) {
	mock, repo, teardown := setupAdminRepo(t)
	defer teardown()

	mock.ExpectQuery(`INSERT INTO admin_users`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	created, err := repo.Create(context.Background(), &domain.AdminUser{
		Username:     "manager",
		PasswordHash: "$2a$10$hash",
		IsActive:     true,
	})

	assert.Nil(t, created)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateAdmin)
}

func TestAdminRepository_SetTwoFactor_ClearSecret(t *testing.T) {
	mock, repo, teardown := setupAdminRepo(t)
	defer teardown()

	mock.ExpectExec(`UPDATE admin_users`).
		WithArgs(false, nil, "admin-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetTwoFactor(context.Background(), "admin-1", false, nil)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_Delete_NotFound(t *testing.T) {
	mock, repo, teardown := setupAdminRepo(t)
	defer teardown()

	mock.ExpectExec(`DELETE FROM admin_users`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperrors.ErrAdminNotFound)
}
