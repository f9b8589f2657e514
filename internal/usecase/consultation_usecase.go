package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/domain/repository"
	"github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/pkg/utils"
	"github.com/consultation-service/internal/pkg/validator"
	"github.com/consultation-service/internal/usecase/dto"
)

// phoneRegexp - корейский мобильный номер в форме 010-XXXX-XXXX.
var phoneRegexp = regexp.MustCompile(`^010-[0-9]{4}-[0-9]{4}$`)

// ConsultationUseCase - use case подачи и ведения заявок на консультацию
type ConsultationUseCase struct {
	consultationRepo repository.ConsultationRepository
	streamRepo       repository.StreamRepository
	logger           *zap.Logger
}

// NewConsultationUseCase - создание нового ConsultationUseCase
func NewConsultationUseCase(
	consultationRepo repository.ConsultationRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *ConsultationUseCase {
	return &ConsultationUseCase{
		consultationRepo: consultationRepo,
		streamRepo:       streamRepo,
		logger:           logger,
	}
}

// Create - подача новой заявки аутентифицированным пользователем.
func (uc *ConsultationUseCase) Create(ctx context.Context, user domain.AuthUser, req dto.ConsultationCreateRequest) (*dto.ConsultationCreateResponse, error) {
	code := domain.AddressCode{
		SigunguCd: strings.TrimSpace(req.AddressCode.SigunguCd),
		BjdongCd:  strings.TrimSpace(req.AddressCode.BjdongCd),
		PlatGbCd:  strings.TrimSpace(req.AddressCode.PlatGbCd),
		Bun:       utils.PadLotNumber(req.AddressCode.Bun),
		Ji:        utils.PadLotNumber(req.AddressCode.Ji),
	}

	if details := uc.validateSubmission(&req, code); len(details) > 0 {
		return nil, errors.ErrValidation.WithDetails(details)
	}

	building := normalizeBuildingInfo(req.BuildingInfo, code)
	building.RawData["queryTimestamp"] = time.Now().UTC().Format(time.RFC3339)

	consultation := &domain.Consultation{
		UserID:         user.ID,
		Nickname:       user.Nickname(),
		Name:           strings.TrimSpace(req.Name),
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        strings.TrimSpace(req.Address),
		AddressDetail:  req.AddressDetail,
		AddressCode:    code,
		BuildingInfo:   building,
		MainPurps:      building.MainPurpsCdNm,
		TotArea:        building.TotArea,
		PlatArea:       building.PlatArea,
		GroundFloorCnt: building.GroundFloorCnt,
		Message:        req.Message,
		Attachments:    toAttachments(req.Attachments),
	}

	created, err := uc.consultationRepo.Create(ctx, consultation)
	if err != nil {
		return nil, err
	}

	uc.publishCreated(ctx, created)

	return &dto.ConsultationCreateResponse{
		ID:          created.ID,
		SubmittedAt: created.CreatedAt,
	}, nil
}

// ListByUser - неудалённые заявки пользователя, новые первыми.
func (uc *ConsultationUseCase) ListByUser(ctx context.Context, userID string) ([]dto.ConsultationResponse, error) {
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

// GetByID - заявка владельца по идентификатору.
func (uc *ConsultationUseCase) GetByID(ctx context.Context, id, userID string) (*dto.ConsultationResponse, error) {
	c, err := uc.consultationRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewConsultationResponse(c)
	return &resp, nil
}

// Update - частичное изменение заявки владельцем. Заявка читается,
// изменённые поля накладываются и результат валидируется целиком.
func (uc *ConsultationUseCase) Update(ctx context.Context, id, userID string, req dto.ConsultationUpdateRequest) (*dto.ConsultationResponse, error) {
	existing, err := uc.consultationRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.Email != nil {
		existing.Email = req.Email
	}
	if req.Address != nil {
		existing.Address = strings.TrimSpace(*req.Address)
	}
	if req.AddressDetail != nil {
		existing.AddressDetail = req.AddressDetail
	}
	if req.Message != nil {
		existing.Message = req.Message
	}
	if req.Attachments != nil {
		existing.Attachments = toAttachments(req.Attachments)
	}
	if req.AddressCode != nil {
		existing.AddressCode = domain.AddressCode{
			SigunguCd: strings.TrimSpace(req.AddressCode.SigunguCd),
			BjdongCd:  strings.TrimSpace(req.AddressCode.BjdongCd),
			PlatGbCd:  strings.TrimSpace(req.AddressCode.PlatGbCd),
			Bun:       utils.PadLotNumber(req.AddressCode.Bun),
			Ji:        utils.PadLotNumber(req.AddressCode.Ji),
		}
	}
	if req.BuildingInfo != nil {
		// Повторный выбор адреса обновляет и денормализованные колонки.
		building := normalizeBuildingInfo(req.BuildingInfo, existing.AddressCode)
		existing.BuildingInfo = building
		existing.MainPurps = building.MainPurpsCdNm
		existing.TotArea = building.TotArea
		existing.PlatArea = building.PlatArea
		existing.GroundFloorCnt = building.GroundFloorCnt
	}

	if details := uc.validateMerged(existing); len(details) > 0 {
		return nil, errors.ErrValidation.WithDetails(details)
	}

	if existing.BuildingInfo.RawData == nil {
		existing.BuildingInfo.RawData = map[string]interface{}{}
	}
	existing.BuildingInfo.RawData["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	if err := uc.consultationRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	resp := dto.NewConsultationResponse(existing)
	return &resp, nil
}

// Delete - мягкое удаление заявки владельцем.
func (uc *ConsultationUseCase) Delete(ctx context.Context, id, userID string) error {
	return uc.consultationRepo.SoftDelete(ctx, id, userID)
}

// publishCreated публикует событие для воркера уведомлений. Best-effort:
// ошибка публикации логируется и не доходит до пользователя.
func (uc *ConsultationUseCase) publishCreated(ctx context.Context, c *domain.Consultation) {
	event := domain.ConsultationCreatedEvent{
		ConsultationID: c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		Address:        c.Address,
		AddressDetail:  c.AddressDetail,
		MainPurps:      c.MainPurps,
		Message:        c.Message,
		CreatedAt:      c.CreatedAt,
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamConsultationNotify, event); err != nil {
		uc.logger.Warn("Failed to publish consultation event",
			zap.String("consultation_id", c.ID),
			zap.Error(err))
	}
}

func (uc *ConsultationUseCase) validateSubmission(req *dto.ConsultationCreateRequest, code domain.AddressCode) map[string]interface{} {
	details := map[string]interface{}{}

	validateName(details, req.Name)
	validatePhone(details, req.Phone)
	validateEmail(details, req.Email)
	validateAddress(details, req.Address)
	validateMessage(details, req.Message)

	if !code.Complete() {
		details["addressCode"] = "주소 코드가 올바르지 않습니다. 주소를 다시 선택해주세요."
	}
	if len(req.Attachments) > domain.MaxAttachments {
		details["attachments"] = "첨부파일은 최대 3개까지 등록할 수 있습니다."
	}

	return details
}

func (uc *ConsultationUseCase) validateMerged(c *domain.Consultation) map[string]interface{} {
	details := map[string]interface{}{}

	validateName(details, c.Name)
	validatePhone(details, c.Phone)
	validateEmail(details, c.Email)
	validateAddress(details, c.Address)
	validateMessage(details, c.Message)

	if !c.AddressCode.Complete() {
		details["addressCode"] = "주소 코드가 올바르지 않습니다. 주소를 다시 선택해주세요."
	}
	if len(c.Attachments) > domain.MaxAttachments {
		details["attachments"] = "첨부파일은 최대 3개까지 등록할 수 있습니다."
	}

	return details
}

func validateName(details map[string]interface{}, name string) {
	n := len([]rune(strings.TrimSpace(name)))
	switch {
	case n < 2:
		details["name"] = "이름은 2자 이상 입력해주세요."
	case n > 50:
		details["name"] = "이름은 50자 이내로 입력해주세요."
	}
}

func validatePhone(details map[string]interface{}, phone string) {
	if !phoneRegexp.MatchString(phone) {
		details["phone"] = "연락처는 010-0000-0000 형식으로 입력해주세요."
	}
}

func validateEmail(details map[string]interface{}, email *string) {
	if email == nil || *email == "" {
		return
	}
	if err := validator.GetValidator().Var(*email, "email"); err != nil {
		details["email"] = "올바른 이메일 주소를 입력해주세요."
	}
}

func validateAddress(details map[string]interface{}, address string) {
	n := len([]rune(strings.TrimSpace(address)))
	switch {
	case n < 5:
		details["address"] = "주소를 정확히 입력해주세요."
	case n > 200:
		details["address"] = "주소는 200자 이내로 입력해주세요."
	}
}

func validateMessage(details map[string]interface{}, message *string) {
	if message != nil && len([]rune(*message)) > 1000 {
		details["message"] = "상담 내용은 1000자 이내로 입력해주세요."
	}
}

// normalizeBuildingInfo подставляет запись-заглушку, когда данные реестра
// отсутствуют или неполны. Заглушка переживает персистенцию и показывается
// пользователю как мягкое предупреждение.
func normalizeBuildingInfo(info *domain.BuildingInfo, code domain.AddressCode) domain.BuildingInfo {
	if info == nil || info.MainPurpsCdNm == "" {
		return domain.FallbackBuildingInfo(code)
	}

	building := *info
	if building.AddressInfo == nil {
		addr := code
		building.AddressInfo = &addr
	}
	if building.RawData == nil {
		building.RawData = map[string]interface{}{}
	}
	return building
}

func toAttachments(payloads []dto.AttachmentPayload) []domain.Attachment {
	attachments := make([]domain.Attachment, 0, len(payloads))
	for _, p := range payloads {
		attachments = append(attachments, domain.Attachment{
			Name:        p.Name,
			Size:        p.Size,
			Type:        p.Type,
			StoragePath: p.StoragePath,
		})
	}
	return attachments
}
