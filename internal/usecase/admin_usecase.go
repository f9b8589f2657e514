package usecase

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/domain/repository"
	"github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/usecase/dto"
)

const (
	defaultPageLimit = 15

	// bcryptCost - стоимость хеширования паролей администраторов.
	bcryptCost = 10

	passwordSpecialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// AdminUseCase - use case админской консоли: заявки, пользователи,
// учётные записи администраторов.
type AdminUseCase struct {
	consultationRepo repository.ConsultationRepository
	userRepo         repository.UserRepository
	adminRepo        repository.AdminRepository
	logger           *zap.Logger
}

// NewAdminUseCase - создание нового AdminUseCase
func NewAdminUseCase(
	consultationRepo repository.ConsultationRepository,
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	logger *zap.Logger,
) *AdminUseCase {
	return &AdminUseCase{
		consultationRepo: consultationRepo,
		userRepo:         userRepo,
		adminRepo:        adminRepo,
		logger:           logger,
	}
}

// ListConsultations - фильтрованный список заявок с пагинацией.
func (uc *AdminUseCase) ListConsultations(ctx context.Context, req dto.AdminConsultationListRequest) (*dto.ConsultationListResponse, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	consultations, total, err := uc.consultationRepo.AdminList(ctx, domain.ConsultationFilter{
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ConsultationResponse, 0, len(consultations))
	for _, c := range consultations {
		items = append(items, dto.NewConsultationResponse(c))
	}

	return &dto.ConsultationListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// GetConsultation - заявка целиком, включая вложения.
func (uc *AdminUseCase) GetConsultation(ctx context.Context, id string) (*dto.ConsultationResponse, error) {
	c, err := uc.consultationRepo.AdminGetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewConsultationResponse(c)
	return &resp, nil
}

// ListUsers - зарегистрированные пользователи со счётчиками заявок.
func (uc *AdminUseCase) ListUsers(ctx context.Context, req dto.AdminUserListRequest) (*dto.UserListResponse, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	users, total, err := uc.userRepo.List(ctx, domain.UserFilter{
		Email:    req.Email,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.ID)
	}

	counts, err := uc.consultationRepo.CountByUserIDs(ctx, userIDs)
	if err != nil {
		// Счётчики не должны ронять листинг
		uc.logger.Warn("Failed to count consultations per user", zap.Error(err))
		counts = map[string]int{}
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		u.ConsultationCount = counts[u.ID]
		items = append(items, dto.NewUserResponse(u))
	}

	return &dto.UserListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// ListUserConsultations - заявки конкретного пользователя для консоли.
func (uc *AdminUseCase) ListUserConsultations(ctx context.Context, userID string) ([]dto.ConsultationResponse, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	consultations, err := uc.consultationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ConsultationResponse, 0, len(consultations))
	for _, c := range consultations {
		items = append(items, dto.NewConsultationResponse(c))
	}
	return items, nil
}

// ListAdmins - все учётные записи администраторов.
func (uc *AdminUseCase) ListAdmins(ctx context.Context) ([]dto.AdminResponse, error) {
	admins, err := uc.adminRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AdminResponse, 0, len(admins))
	for _, a := range admins {
		items = append(items, *dto.NewAdminResponse(a))
	}
	return items, nil
}

// CreateAdmin - новая учётная запись. Пароль проверяется политикой
// и хешируется до записи.
func (uc *AdminUseCase) CreateAdmin(ctx context.Context, req dto.AdminCreateRequest) (*dto.AdminResponse, error) {
	if msg := checkPasswordPolicy(req.Password); msg != "" {
		return nil, errors.ErrValidation.WithMessage(msg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		uc.logger.Error("Failed to hash admin password", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	admin, err := uc.adminRepo.Create(ctx, &domain.AdminUser{
		Username:     req.Username,
		PasswordHash: string(hash),
		IsActive:     true,
		MFAExempt:    req.MFAExempt,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewAdminResponse(admin), nil
}

// ChangePassword - смена пароля после проверки текущего.
func (uc *AdminUseCase) ChangePassword(ctx context.Context, adminID string, req dto.AdminPasswordChangeRequest) error {
	admin, err := uc.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return errors.ErrAdminInvalidCredentials
	}

	if msg := checkPasswordPolicy(req.NewPassword); msg != "" {
		return errors.ErrValidation.WithMessage(msg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		uc.logger.Error("Failed to hash admin password", zap.Error(err))
		return errors.ErrInternalServer
	}

	return uc.adminRepo.UpdatePassword(ctx, adminID, string(hash))
}

// DeleteAdmin - удаление учётной записи. Удаление самого себя запрещено.
func (uc *AdminUseCase) DeleteAdmin(ctx context.Context, callerID, targetID string) error {
	if callerID == targetID {
		return errors.ErrValidation.WithMessage("자기 자신의 계정은 삭제할 수 없습니다.")
	}
	return uc.adminRepo.Delete(ctx, targetID)
}

// checkPasswordPolicy возвращает корейское сообщение о первом нарушении
// политики или пустую строку.
func checkPasswordPolicy(password string) string {
	if len(password) < 8 {
		return "비밀번호는 8자 이상이어야 합니다."
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	switch {
	case !hasUpper:
		return "비밀번호에 대문자를 포함해주세요."
	case !hasLower:
		return "비밀번호에 소문자를 포함해주세요."
	case !hasDigit:
		return "비밀번호에 숫자를 포함해주세요."
	case !strings.ContainsAny(password, passwordSpecialChars):
		return "비밀번호에 특수문자를 포함해주세요."
	}
	return ""
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	return page, limit
}
