package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/domain/repository"
	apperrors "github.com/consultation-service/internal/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

const consultationColumns = `
	id, user_id, nickname, name, phone, email, address, address_detail,
	address_code, building_info, main_purps, tot_area, plat_area,
	ground_floor_cnt, message, attachments, is_del, deleted_at,
	created_at, updated_at
`

type consultationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewConsultationRepository(db *DB) repository.ConsultationRepository {
	return &consultationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *consultationRepository) Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	addressCode, buildingInfo, attachments, err := marshalJSONColumns(c)
	if err != nil {
		r.logger.Error("Failed to marshal consultation JSON columns", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	query := `
		INSERT INTO consultations (
			user_id, nickname, name, phone, email, address, address_detail,
			address_code, building_info, main_purps, tot_area, plat_area,
			ground_floor_cnt, message, attachments
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`

	created := *c
	err = r.db.QueryRowContext(ctx, query,
		c.UserID, c.Nickname, c.Name, c.Phone, c.Email, c.Address, c.AddressDetail,
		addressCode, buildingInfo, c.MainPurps, c.TotArea, c.PlatArea,
		c.GroundFloorCnt, c.Message, attachments,
	).Scan(&created.ID, &created.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return nil, apperrors.ErrDuplicateConsultation
			case pgCheckViolation:
				return nil, apperrors.ErrValidation
			}
		}
		r.logger.Error("Failed to insert consultation",
			zap.String("user_id", c.UserID),
			zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	created.IsDel = domain.IsDelNo
	return &created, nil
}

func (r *consultationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Consultation, error) {
	query := `
		SELECT ` + consultationColumns + `
		FROM consultations
		WHERE user_id = $1 AND is_del = 'N'
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list consultations",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *consultationRepository) GetByIDForUser(ctx context.Context, id, userID string) (*domain.Consultation, error) {
	query := `
		SELECT ` + consultationColumns + `
		FROM consultations
		WHERE id = $1 AND user_id = $2 AND is_del = 'N'
	`
	return r.getOne(ctx, query, id, userID)
}

func (r *consultationRepository) AdminGetByID(ctx context.Context, id string) (*domain.Consultation, error) {
	query := `
		SELECT ` + consultationColumns + `
		FROM consultations
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *consultationRepository) Update(ctx context.Context, c *domain.Consultation) error {
	addressCode, buildingInfo, attachments, err := marshalJSONColumns(c)
	if err != nil {
		r.logger.Error("Failed to marshal consultation JSON columns", zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	// Фильтр одновременно по id И user_id: чужая заявка не может быть
	// изменена, запрос просто не затронет ни одной строки.
	query := `
		UPDATE consultations SET
			name = $1, phone = $2, email = $3, address = $4, address_detail = $5,
			address_code = $6, building_info = $7, main_purps = $8, tot_area = $9,
			plat_area = $10, ground_floor_cnt = $11, message = $12,
			attachments = $13, updated_at = NOW()
		WHERE id = $14 AND user_id = $15 AND is_del = 'N'
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Phone, c.Email, c.Address, c.AddressDetail,
		addressCode, buildingInfo, c.MainPurps, c.TotArea,
		c.PlatArea, c.GroundFloorCnt, c.Message, attachments,
		c.ID, c.UserID,
	)
	if err != nil {
		r.logger.Error("Failed to update consultation",
			zap.String("id", c.ID),
			zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read affected rows", zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if affected == 0 {
		return apperrors.ErrConsultationNotFound
	}
	return nil
}

func (r *consultationRepository) SoftDelete(ctx context.Context, id, userID string) error {
	query := `
		UPDATE consultations SET
			is_del = 'Y', deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_del = 'N'
	`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		r.logger.Error("Failed to soft delete consultation",
			zap.String("id", id),
			zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read affected rows", zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if affected == 0 {
		return apperrors.ErrConsultationNotFound
	}
	return nil
}

func (r *consultationRepository) AdminList(ctx context.Context, filter domain.ConsultationFilter) ([]*domain.Consultation, int, error) {
	where := []string{"is_del = 'N'"}
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.DateFrom != "" {
		addArg("created_at >= $%d::timestamp", filter.DateFrom+" 00:00:00")
	}
	if filter.DateTo != "" {
		addArg("created_at <= $%d::timestamp", filter.DateTo+" 23:59:59")
	}
	if filter.Name != "" {
		addArg("name ILIKE $%d", "%"+filter.Name+"%")
	}
	if filter.Phone != "" {
		addArg("phone ILIKE $%d", "%"+filter.Phone+"%")
	}
	if filter.Address != "" {
		addArg("address ILIKE $%d", "%"+filter.Address+"%")
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := "SELECT COUNT(*) FROM consultations WHERE " + whereClause
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count consultations", zap.Error(err))
		return nil, 0, apperrors.ErrDatabaseError
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM consultations
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, consultationColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		r.logger.Error("Failed to list consultations for admin", zap.Error(err))
		return nil, 0, apperrors.ErrDatabaseError
	}
	defer rows.Close()

	consultations, err := r.scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return consultations, total, nil
}

func (r *consultationRepository) CountByUserIDs(ctx context.Context, userIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(userIDs))
	if len(userIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT user_id, COUNT(*)
		FROM consultations
		WHERE user_id = ANY($1) AND is_del = 'N'
		GROUP BY user_id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		r.logger.Error("Failed to count consultations by users", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var count int
		if err := rows.Scan(&userID, &count); err != nil {
			r.logger.Error("Failed to scan consultation count", zap.Error(err))
			return nil, apperrors.ErrDatabaseError
		}
		counts[userID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.ErrDatabaseError
	}

	return counts, nil
}

func (r *consultationRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Consultation, error) {
	row := r.db.QueryRowContext(ctx, query, args...)

	c, err := scanConsultation(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrConsultationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get consultation", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return c, nil
}

func (r *consultationRepository) scanRows(rows *sql.Rows) ([]*domain.Consultation, error) {
	consultations := make([]*domain.Consultation, 0)
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			r.logger.Error("Failed to scan consultation row", zap.Error(err))
			return nil, apperrors.ErrDatabaseError
		}
		consultations = append(consultations, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate consultation rows", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return consultations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConsultation(row rowScanner) (*domain.Consultation, error) {
	var c domain.Consultation
	var addressCodeJSON, buildingInfoJSON, attachmentsJSON []byte

	err := row.Scan(
		&c.ID, &c.UserID, &c.Nickname, &c.Name, &c.Phone, &c.Email,
		&c.Address, &c.AddressDetail, &addressCodeJSON, &buildingInfoJSON,
		&c.MainPurps, &c.TotArea, &c.PlatArea, &c.GroundFloorCnt,
		&c.Message, &attachmentsJSON, &c.IsDel, &c.DeletedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(addressCodeJSON) > 0 {
		if err := json.Unmarshal(addressCodeJSON, &c.AddressCode); err != nil {
			return nil, fmt.Errorf("unmarshal address_code: %w", err)
		}
	}
	if len(buildingInfoJSON) > 0 {
		if err := json.Unmarshal(buildingInfoJSON, &c.BuildingInfo); err != nil {
			return nil, fmt.Errorf("unmarshal building_info: %w", err)
		}
	}
	if len(attachmentsJSON) > 0 {
		if err := json.Unmarshal(attachmentsJSON, &c.Attachments); err != nil {
			return nil, fmt.Errorf("unmarshal attachments: %w", err)
		}
	}

	return &c, nil
}

func marshalJSONColumns(c *domain.Consultation) ([]byte, []byte, []byte, error) {
	addressCode, err := json.Marshal(c.AddressCode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal address_code: %w", err)
	}

	buildingInfo, err := json.Marshal(c.BuildingInfo)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal building_info: %w", err)
	}

	attachments := c.Attachments
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	attachmentsJSON, err := json.Marshal(attachments)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal attachments: %w", err)
	}

	return addressCode, buildingInfo, attachmentsJSON, nil
}
