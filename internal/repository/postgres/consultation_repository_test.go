package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/consultation-service/internal/domain"
	apperrors "github.com/consultation-service/internal/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupConsultationRepo(t *testing.T) (sqlmock.Sqlmock, *consultationRepository, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "pgx")
	repo := NewConsultationRepository(NewDBForTest(sqlxDB, zap.NewNop())).(*consultationRepository)

	return mock, repo, func() { db.Close() }
}

func sampleConsultation() *domain.Consultation {
	email := "hong@example.com"
	message := "위반 건축물 양성화 가능한지 문의드립니다."
	return &domain.Consultation{
		UserID:   "user-1",
		Nickname: "홍길동",
		Name:     "홍길동",
		Phone:    "010-1234-5678",
		Email:    &email,
		Address:  "서울특별시 강남구 테헤란로 123",
		AddressCode: domain.AddressCode{
			SigunguCd: "11680",
			BjdongCd:  "10100",
			PlatGbCd:  "0",
			Bun:       "0649",
			Ji:        "0005",
		},
		BuildingInfo: domain.BuildingInfo{
			MainPurpsCdNm: "단독주택",
		},
		MainPurps: "단독주택",
		Message:   &message,
	}
}

func consultationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "nickname", "name", "phone", "email",
		"address", "address_detail", "address_code", "building_info",
		"main_purps", "tot_area", "plat_area", "ground_floor_cnt",
		"message", "attachments", "is_del", "deleted_at",
		"created_at", "updated_at",
	})
}

func TestConsultationRepository_Create(t *testing.T) {
	mock, repo, teardown := setupConsultationRepo(t)
	defer teardown()

	c := sampleConsultation()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO consultations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow("cons-1", createdAt))

	created, err := repo.Create(context.Background(), c)

	require.NoError(t, err)
	assert.Equal(t, "cons-1", created.ID)
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.Equal(t, domain.IsDelNo, created.IsDel)
	// Исходная структура не изменяется
	assert.Empty(t, c.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationRepository_Create_UniqueViolation(t *testing.T) {
	mock, repo, teardown := setupConsultationRepo(t)
	defer teardown()

	mock.ExpectQuery(`INSERT INTO consultations`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	created, err := repo.Create(context.Background(), sampleConsultation())

	assert.Nil(t, created)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateConsultation)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationRepository_Create_CheckViolation(t *testing.T) {
	mock, repo, teardown := setupConsultationRepo(t)
	defer teardown()

	mock.ExpectQuery(`INSERT INTO consultations`).
		WillReturnError(&pgconn.PgError{Code: pgCheckViolation})

	_, err := repo.Create(context.Background(), sampleConsultation())

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestConsultationRepository_GetByIDForUser(t *testing.T) {
	mock, repo, teardown := setupConsultationRepo(t)
	defer teardown()

	addressCode, _ := json.Marshal(domain.AddressCode{
		SigunguCd: "11680", BjdongCd: "10100", PlatGbCd: "0", Bun: "0649", Ji: "0005",
	})
	buildingInfo, _ := json.Marshal(domain.BuildingInfo{MainPurpsCdNm: "단독주택"})
	attachments, _ := json.Marshal([]domain.Attachment{
		{Name: "plan.pdf", Size: 1024, Type: "application/pdf", StoragePath: "user-1/cons-1/1_plan.pdf"},
	})

	now := time.Now()
	rows := consultationRows().AddRow(
		"cons-1", "user-1", "홍길동", "홍길동", "010-1234-5678", nil,
		"서울특별시 강남구 테헤란로 123", nil, addressCode, buildingInfo,
		"단독주택", nil, nil, nil,
		nil, attachments, "N", nil,
		now, now,
	)

	mock.ExpectQuery(`SELECT`).
		WithArgs("cons-1", "user-1").
		WillReturnRows(rows)

	c, err := repo.GetByIDForUser(context.Background(), "cons-1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, "cons-1", c.ID)
	assert.Equal(t, "11680", c.AddressCode.SigunguCd)
	assert.Equal(t, "단독주택", c.BuildingInfo.MainPurpsCdNm)
	require.Len(t, c.Attachments, 1)
	assert.Equal(t, "plan.pdf", c.Attachments[0].Name)
	assert.Nil(t, c.Email)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationRepository_GetByIDForUser_NotFound(t *testing.T) {
	mock, repo, teardown := setupConsultationRepo(t)
	defer teardown()

	mock.ExpectQuery(`SELECT`).
		WithArgs("cons-1", "other-user").
		WillReturnRows(consultationRows())

	c, err := repo.GetByIDForUser(context.Background(), "cons-1", "other-user")

	assert.Nil(t, c)
	assert.ErrorIs(t, err, apperrors.ErrConsultationNotFound)
}

func TestConsultationRepository_Update_NotOwned(t *testing.T) {
	mock, repo, teardown := setupConsultationRepo(t)
	defer teardown()

	c := sampleConsultation()
	c.ID = "cons-1"
	c.UserID = "other-user"

	mock.ExpectExec(`UPDATE consultations`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), c)

	assert.ErrorIs(t, err, apperrors.ErrConsultationNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationRepository_SoftDelete(t *testing.T) {
	mock, repo, teardown := setupConsultationRepo(t)
	defer teardown()

	mock.ExpectExec(`UPDATE consultations`).
		WithArgs("cons-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SoftDelete(context.Background(), "cons-1", "user-1")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationRepository_SoftDelete_AlreadyDeleted(t *testing.T) {
	mock, repo, teardown := setupConsultationRepo(t)
	defer teardown()

	mock.ExpectExec(`UPDATE consultations`).
		WithArgs("cons-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDelete(context.Background(), "cons-1", "user-1")

	assert.ErrorIs(t, err, apperrors.ErrConsultationNotFound)
}

func TestConsultationRepository_AdminList_WithFilters(t *testing.T) {
	mock, repo, teardown := setupConsultationRepo(t)
	defer teardown()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("2025-06-01 00:00:00", "2025-06-30 23:59:59", "%홍%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	addressCode, _ := json.Marshal(domain.AddressCode{SigunguCd: "11680"})
	buildingInfo, _ := json.Marshal(domain.BuildingInfo{})
	attachments, _ := json.Marshal([]domain.Attachment{})

	now := time.Now()
	rows := consultationRows().AddRow(
		"cons-1", "user-1", "홍길동", "홍길동", "010-1234-5678", nil,
		"서울특별시 강남구 테헤란로 123", nil, addressCode, buildingInfo,
		"단독주택", nil, nil, nil,
		nil, attachments, "N", nil,
		now, now,
	)

	mock.ExpectQuery(`SELECT`).
		WithArgs("2025-06-01 00:00:00", "2025-06-30 23:59:59", "%홍%", 20, 0).
		WillReturnRows(rows)

	consultations, total, err := repo.AdminList(context.Background(), domain.ConsultationFilter{
		DateFrom: "2025-06-01",
		DateTo:   "2025-06-30",
		Name:     "홍",
		Page:     1,
		Limit:    20,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, consultations, 1)
	assert.Equal(t, "cons-1", consultations[0].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationRepository_CountByUserIDs(t *testing.T) {
	mock, repo, teardown := setupConsultationRepo(t)
	defer teardown()

	rows := sqlmock.NewRows([]string{"user_id", "count"}).
		AddRow("user-1", 3).
		AddRow("user-2", 1)

	mock.ExpectQuery(`SELECT user_id, COUNT(.|\n)*ANY\(\$1\) AND is_del = 'N'`).
		WillReturnRows(rows)

	counts, err := repo.CountByUserIDs(context.Background(), []string{"user-1", "user-2", "user-3"})

	require.NoError(t, err)
	assert.Equal(t, 3, counts["user-1"])
	assert.Equal(t, 1, counts["user-2"])
	assert.Equal(t, 0, counts["user-3"])
}

func TestConsultationRepository_CountByUserIDs_Empty(t *testing.T) {
	_, repo, teardown := setupConsultationRepo(t)
	defer teardown()

	counts, err := repo.CountByUserIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, counts)
}
