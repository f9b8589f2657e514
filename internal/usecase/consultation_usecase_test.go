package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/usecase"
	"github.com/consultation-service/internal/usecase/dto"
)

// MockConsultationRepository is a mock of ConsultationRepository
type MockConsultationRepository struct {
	mock.Mock
}

func (m *MockConsultationRepository) Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consultation), args.Error(1)
}

func (m *MockConsultationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Consultation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Consultation), args.Error(1)
}

func (m *MockConsultationRepository) GetByIDForUser(ctx context.Context, id, userID string) (*domain.Consultation, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consultation), args.Error(1)
}

func (m *MockConsultationRepository) Update(ctx context.Context, c *domain.Consultation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConsultationRepository) SoftDelete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockConsultationRepository) AdminList(ctx context.Context, filter domain.ConsultationFilter) ([]*domain.Consultation, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Consultation), args.Int(1), args.Error(2)
}

func (m *MockConsultationRepository) AdminGetByID(ctx context.Context, id string) (*domain.Consultation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consultation), args.Error(1)
}

func (m *MockConsultationRepository) CountByUserIDs(ctx context.Context, userIDs []string) (map[string]int, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func validCreateRequest() dto.ConsultationCreateRequest {
	return dto.ConsultationCreateRequest{
		Name:    "홍길동",
		Phone:   "010-1234-5678",
		Address: "서울특별시 강남구 테헤란로 123",
		AddressCode: dto.AddressCodePayload{
			SigunguCd: "11680",
			BjdongCd:  "10100",
			PlatGbCd:  "0",
			Bun:       "649",
			Ji:        "5",
		},
		BuildingInfo: &domain.BuildingInfo{
			MainPurpsCdNm: "단독주택",
			RawData:       map[string]interface{}{"bldNm": "테스트빌딩"},
		},
	}
}

func TestConsultationUseCase_Create(t *testing.T) {
	repo := new(MockConsultationRepository)
	stream := new(MockStreamRepository)
	uc := usecase.NewConsultationUseCase(repo, stream, zap.NewNop())

	var persisted *domain.Consultation
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Consultation")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*domain.Consultation)
		}).
		Return(&domain.Consultation{ID: "cons-1"}, nil)
	stream.On("PublishToStream", mock.Anything, domain.StreamConsultationNotify, mock.Anything).
		Return(nil)

	user := domain.AuthUser{ID: "user-1", Email: "hong@example.com", Name: "홍길동"}
	resp, err := uc.Create(context.Background(), user, validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, "cons-1", resp.ID)

	require.NotNil(t, persisted)
	assert.Equal(t, "user-1", persisted.UserID)
	assert.Equal(t, "홍길동", persisted.Nickname)
	// bun/ji нормализованы до 4 знаков
	assert.Equal(t, "0649", persisted.AddressCode.Bun)
	assert.Equal(t, "0005", persisted.AddressCode.Ji)
	assert.Equal(t, "단독주택", persisted.MainPurps)
	assert.Contains(t, persisted.BuildingInfo.RawData, "queryTimestamp")

	repo.AssertExpectations(t)
	stream.AssertExpectations(t)
}

func TestConsultationUseCase_Create_Validation(t *testing.T) {
	repo := new(MockConsultationRepository)
	stream := new(MockStreamRepository)
	uc := usecase.NewConsultationUseCase(repo, stream, zap.NewNop())

	req := validCreateRequest()
	req.Name = "홍"
	req.Phone = "01012345678"
	req.AddressCode.Bun = ""

	_, err := uc.Create(context.Background(), domain.AuthUser{ID: "user-1"}, req)

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Contains(t, appErr.Details, "name")
	assert.Contains(t, appErr.Details, "phone")
	assert.Contains(t, appErr.Details, "addressCode")

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConsultationUseCase_Create_FallbackBuildingInfo(t *testing.T) {
	repo := new(MockConsultationRepository)
	stream := new(MockStreamRepository)
	uc := usecase.NewConsultationUseCase(repo, stream, zap.NewNop())

	var persisted *domain.Consultation
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*domain.Consultation)
		}).
		Return(&domain.Consultation{ID: "cons-1"}, nil)
	stream.On("PublishToStream", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	req := validCreateRequest()
	req.BuildingInfo = nil

	_, err := uc.Create(context.Background(), domain.AuthUser{ID: "user-1"}, req)

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, domain.MainPurpsNeedsVerification, persisted.BuildingInfo.MainPurpsCdNm)
	assert.True(t, persisted.BuildingInfo.IsUnavailable())
	assert.Nil(t, persisted.TotArea)
	require.NotNil(t, persisted.BuildingInfo.AddressInfo)
	assert.Equal(t, "0649", persisted.BuildingInfo.AddressInfo.Bun)
}

func TestConsultationUseCase_Create_PublishFailureSwallowed(t *testing.T) {
	repo := new(MockConsultationRepository)
	stream := new(MockStreamRepository)
	uc := usecase.NewConsultationUseCase(repo, stream, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Consultation{ID: "cons-1"}, nil)
	stream.On("PublishToStream", mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	resp, err := uc.Create(context.Background(), domain.AuthUser{ID: "user-1"}, validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, "cons-1", resp.ID)
}

func TestConsultationUseCase_Create_NicknameFromEmail(t *testing.T) {
	repo := new(MockConsultationRepository)
	stream := new(MockStreamRepository)
	uc := usecase.NewConsultationUseCase(repo, stream, zap.NewNop())

	var persisted *domain.Consultation
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*domain.Consultation)
		}).
		Return(&domain.Consultation{ID: "cons-1"}, nil)
	stream.On("PublishToStream", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	user := domain.AuthUser{ID: "user-1", Email: "kildong@example.com"}
	_, err := uc.Create(context.Background(), user, validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, "kildong", persisted.Nickname)
}

func TestConsultationUseCase_Update_NotFound(t *testing.T) {
	repo := new(MockConsultationRepository)
	stream := new(MockStreamRepository)
	uc := usecase.NewConsultationUseCase(repo, stream, zap.NewNop())

	repo.On("GetByIDForUser", mock.Anything, "cons-1", "user-1").
		Return(nil, errors.ErrConsultationNotFound)

	name := "김철수"
	_, err := uc.Update(context.Background(), "cons-1", "user-1", dto.ConsultationUpdateRequest{Name: &name})

	assert.ErrorIs(t, err, errors.ErrConsultationNotFound)
}

func TestConsultationUseCase_Update_MergesFields(t *testing.T) {
	repo := new(MockConsultationRepository)
	stream := new(MockStreamRepository)
	uc := usecase.NewConsultationUseCase(repo, stream, zap.NewNop())

	existing := &domain.Consultation{
		ID:      "cons-1",
		UserID:  "user-1",
		Name:    "홍길동",
		Phone:   "010-1234-5678",
		Address: "서울특별시 강남구 테헤란로 123",
		AddressCode: domain.AddressCode{
			SigunguCd: "11680",
			BjdongCd:  "10300",
			PlatGbCd:  "0",
			Bun:       "0012",
			Ji:        "0000",
		},
		BuildingInfo: domain.BuildingInfo{
			MainPurpsCdNm: "단독주택",
		},
		MainPurps: "단독주택",
	}
	repo.On("GetByIDForUser", mock.Anything, "cons-1", "user-1").Return(existing, nil)

	var updated *domain.Consultation
	repo.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*domain.Consultation)
		}).
		Return(nil)

	name := "김철수"
	resp, err := uc.Update(context.Background(), "cons-1", "user-1", dto.ConsultationUpdateRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "김철수", resp.Name)
	// Нетронутые поля сохраняются
	assert.Equal(t, "010-1234-5678", updated.Phone)
	assert.Equal(t, "단독주택", updated.MainPurps)
	assert.Contains(t, updated.BuildingInfo.RawData, "updatedAt")
}

func TestConsultationUseCase_Update_ReplacesAddressAndBuilding(t *testing.T) {
	repo := new(MockConsultationRepository)
	stream := new(MockStreamRepository)
	uc := usecase.NewConsultationUseCase(repo, stream, zap.NewNop())

	oldArea := 120.5
	existing := &domain.Consultation{
		ID:      "cons-1",
		UserID:  "user-1",
		Name:    "홍길동",
		Phone:   "010-1234-5678",
		Address: "서울특별시 강남구 테헤란로 123",
		AddressCode: domain.AddressCode{
			SigunguCd: "11680",
			BjdongCd:  "10300",
			PlatGbCd:  "0",
			Bun:       "0012",
			Ji:        "0000",
		},
		BuildingInfo: domain.BuildingInfo{
			MainPurpsCdNm: "단독주택",
			TotArea:       &oldArea,
		},
		MainPurps: "단독주택",
		TotArea:   &oldArea,
	}
	repo.On("GetByIDForUser", mock.Anything, "cons-1", "user-1").Return(existing, nil)

	var updated *domain.Consultation
	repo.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*domain.Consultation)
		}).
		Return(nil)

	addr := "서울특별시 마포구 월드컵북로 400"
	totArea := 312.4
	platArea := 150.0
	ground := 4
	req := dto.ConsultationUpdateRequest{
		Address: &addr,
		AddressCode: &dto.AddressCodePayload{
			SigunguCd: "11440",
			BjdongCd:  "12000",
			PlatGbCd:  "0",
			Bun:       "95",
			Ji:        "",
		},
		BuildingInfo: &domain.BuildingInfo{
			MainPurpsCdNm:  "다세대주택",
			TotArea:        &totArea,
			PlatArea:       &platArea,
			GroundFloorCnt: &ground,
		},
	}
	resp, err := uc.Update(context.Background(), "cons-1", "user-1", req)

	require.NoError(t, err)
	assert.Equal(t, "11440", updated.AddressCode.SigunguCd)
	// Номера участка дополняются до четырёх знаков
	assert.Equal(t, "0095", updated.AddressCode.Bun)
	assert.Equal(t, "0000", updated.AddressCode.Ji)
	// Денормализованные колонки пересчитываются из нового реестра
	assert.Equal(t, "다세대주택", updated.MainPurps)
	assert.Equal(t, 312.4, *updated.TotArea)
	assert.Equal(t, 150.0, *updated.PlatArea)
	assert.Equal(t, 4, *updated.GroundFloorCnt)
	assert.Equal(t, "다세대주택", resp.BuildingInfo.MainPurpsCdNm)
}

func TestConsultationUseCase_Update_IncompleteAddressCode(t *testing.T) {
	repo := new(MockConsultationRepository)
	stream := new(MockStreamRepository)
	uc := usecase.NewConsultationUseCase(repo, stream, zap.NewNop())

	existing := &domain.Consultation{
		ID:      "cons-1",
		UserID:  "user-1",
		Name:    "홍길동",
		Phone:   "010-1234-5678",
		Address: "서울특별시 강남구 테헤란로 123",
		AddressCode: domain.AddressCode{
			SigunguCd: "11680",
			BjdongCd:  "10300",
			PlatGbCd:  "0",
			Bun:       "0012",
			Ji:        "0000",
		},
	}
	repo.On("GetByIDForUser", mock.Anything, "cons-1", "user-1").Return(existing, nil)

	req := dto.ConsultationUpdateRequest{
		AddressCode: &dto.AddressCodePayload{SigunguCd: "11440"},
	}
	_, err := uc.Update(context.Background(), "cons-1", "user-1", req)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Contains(t, appErr.Details, "addressCode")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestConsultationUseCase_Delete(t *testing.T) {
	repo := new(MockConsultationRepository)
	stream := new(MockStreamRepository)
	uc := usecase.NewConsultationUseCase(repo, stream, zap.NewNop())

	repo.On("SoftDelete", mock.Anything, "cons-1", "user-1").Return(nil)

	require.NoError(t, uc.Delete(context.Background(), "cons-1", "user-1"))
	repo.AssertExpectations(t)
}
