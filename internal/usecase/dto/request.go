package dto

import "github.com/consultation-service/internal/domain"

// AddressSearchRequest - запрос на поиск адресов по тексту
type AddressSearchRequest struct {
	Keyword string `json:"keyword" validate:"required,min=2,max=100"`
	Page    int    `json:"page" validate:"omitempty,min=1"`
}

// BuildingTitleRequest - запрос сводки из реестра зданий по кодам участка
type BuildingTitleRequest struct {
	SigunguCd string `json:"sigunguCd" validate:"required,len=5,numeric"`
	BjdongCd  string `json:"bjdongCd" validate:"required,len=5,numeric"`
	PlatGbCd  string `json:"platGbCd" validate:"required,oneof=0 1 2"`
	Bun       string `json:"bun" validate:"required,max=4,numeric"`
	Ji        string `json:"ji" validate:"omitempty,max=4,numeric"`
}

// AddressCodePayload - пятисоставный код участка внутри заявки
type AddressCodePayload struct {
	SigunguCd string `json:"sigunguCd" validate:"required"`
	BjdongCd  string `json:"bjdongCd" validate:"required"`
	PlatGbCd  string `json:"platGbCd" validate:"required"`
	Bun       string `json:"bun" validate:"required"`
	Ji        string `json:"ji" validate:"required"`
}

// AttachmentPayload - метаданные уже загруженного вложения
type AttachmentPayload struct {
	Name        string `json:"name" validate:"required,max=255"`
	Size        int64  `json:"size" validate:"required,min=1"`
	Type        string `json:"type" validate:"required"`
	StoragePath string `json:"storagePath" validate:"required"`
}

// ConsultationCreateRequest - подача заявки на консультацию.
// Телефон проверяется отдельно: формат 010-XXXX-XXXX.
type ConsultationCreateRequest struct {
	Name          string               `json:"name" validate:"required,min=2,max=50"`
	Phone         string               `json:"phone" validate:"required"`
	Email         *string              `json:"email" validate:"omitempty,email"`
	Address       string               `json:"address" validate:"required,min=5,max=200"`
	AddressDetail *string              `json:"addressDetail" validate:"omitempty,max=100"`
	AddressCode   AddressCodePayload   `json:"addressCode"`
	BuildingInfo  *domain.BuildingInfo `json:"buildingInfo"`
	Message       *string              `json:"message" validate:"omitempty,max=1000"`
	Attachments   []AttachmentPayload  `json:"attachments" validate:"omitempty,max=3,dive"`
}

// ConsultationUpdateRequest - частичное изменение заявки владельцем.
// nil-поле означает "не менять". Повторный выбор адреса передаёт новые
// addressCode и buildingInfo вместе.
type ConsultationUpdateRequest struct {
	Name          *string              `json:"name" validate:"omitempty,min=2,max=50"`
	Phone         *string              `json:"phone"`
	Email         *string              `json:"email" validate:"omitempty,email"`
	Address       *string              `json:"address" validate:"omitempty,min=5,max=200"`
	AddressDetail *string              `json:"addressDetail" validate:"omitempty,max=100"`
	AddressCode   *AddressCodePayload  `json:"addressCode"`
	BuildingInfo  *domain.BuildingInfo `json:"buildingInfo"`
	Message       *string              `json:"message" validate:"omitempty,max=1000"`
	Attachments   []AttachmentPayload  `json:"attachments" validate:"omitempty,max=3,dive"`
}

// AdminLoginRequest - вход администратора. OTP передаётся вторым запросом,
// когда первый ответ потребовал двухфакторную проверку.
type AdminLoginRequest struct {
	Username string  `json:"username" validate:"required"`
	Password string  `json:"password" validate:"required"`
	OTP      *string `json:"otp" validate:"omitempty,len=6,numeric"`
}

// AdminCreateRequest - создание учётной записи администратора.
// Политика пароля проверяется отдельно (длина и классы символов).
type AdminCreateRequest struct {
	Username  string `json:"username" validate:"required,min=4,max=30,alphanum"`
	Password  string `json:"password" validate:"required"`
	MFAExempt bool   `json:"mfaExempt"`
}

// AdminPasswordChangeRequest - смена пароля администратора.
// Текущий пароль проверяется перед перезаписью хеша.
type AdminPasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// TwoFactorSetupRequest - генерация TOTP-секрета для администратора.
// Секрет не сохраняется до подтверждения кодом.
type TwoFactorSetupRequest struct {
	TargetAdminID string `json:"targetAdminId" validate:"required"`
}

// TwoFactorVerifyRequest - подтверждение TOTP-кода при настройке 2FA
type TwoFactorVerifyRequest struct {
	TargetAdminID string `json:"targetAdminId" validate:"required"`
	Secret        string `json:"secret" validate:"required"`
	Token         string `json:"token" validate:"required,len=6,numeric"`
}

// TwoFactorDisableRequest - отключение 2FA, требует повторный ввод пароля
type TwoFactorDisableRequest struct {
	Password string `json:"password" validate:"required"`
}

// AdminConsultationListRequest - фильтры админского списка заявок
type AdminConsultationListRequest struct {
	DateFrom string `json:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `json:"dateTo" validate:"omitempty,datetime=2006-01-02"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Page     int    `json:"page" validate:"omitempty,min=1"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// AdminUserListRequest - фильтры админского списка пользователей
type AdminUserListRequest struct {
	Email    string `json:"email"`
	DateFrom string `json:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `json:"dateTo" validate:"omitempty,datetime=2006-01-02"`
	Page     int    `json:"page" validate:"omitempty,min=1"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=100"`
}
