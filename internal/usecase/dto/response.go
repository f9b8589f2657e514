package dto

import (
	"time"

	"github.com/consultation-service/internal/domain"
)

// AddressSearchResponse - ответ на поиск адресов
type AddressSearchResponse struct {
	Results []domain.AddressSearchResult `json:"results"`
	Page    domain.AddressPage           `json:"page"`
}

// BuildingTitleResponse - сводка реестра зданий вместе с сырым ответом
type BuildingTitleResponse struct {
	Summary  domain.BuildingSummary `json:"summary"`
	Building domain.BuildingInfo    `json:"building"`
}

// ConsultationCreateResponse - подтверждение приёма заявки
type ConsultationCreateResponse struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ConsultationResponse - заявка, как её видит владелец или администратор
type ConsultationResponse struct {
	ID             string              `json:"id"`
	Nickname       string              `json:"nickname"`
	Name           string              `json:"name"`
	Phone          string              `json:"phone"`
	Email          *string             `json:"email,omitempty"`
	Address        string              `json:"address"`
	AddressDetail  *string             `json:"addressDetail,omitempty"`
	AddressCode    domain.AddressCode  `json:"addressCode"`
	BuildingInfo   domain.BuildingInfo `json:"buildingInfo"`
	MainPurps      string              `json:"mainPurps"`
	TotArea        *float64            `json:"totArea"`
	PlatArea       *float64            `json:"platArea"`
	GroundFloorCnt *int                `json:"groundFloorCnt"`
	Message        *string             `json:"message,omitempty"`
	Attachments    []AttachmentView    `json:"attachments"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// AttachmentView - вложение с подписанной ссылкой на скачивание.
// Ссылка живёт ограниченное время, постоянного публичного URL нет.
type AttachmentView struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	Type        string `json:"type"`
	StoragePath string `json:"storagePath"`
	URL         string `json:"url,omitempty"`
}

// ConsultationListResponse - страница заявок админской консоли
type ConsultationListResponse struct {
	Items []ConsultationResponse `json:"items"`
	Total int                    `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

// AttachmentUploadResponse - результат загрузки файла
type AttachmentUploadResponse struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	Type        string `json:"type"`
	StoragePath string `json:"storagePath"`
}

// AdminResponse - учётная запись администратора без секретов
type AdminResponse struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	IsActive         bool       `json:"isActive"`
	TwoFactorEnabled bool       `json:"twoFactorEnabled"`
	MFAExempt        bool       `json:"mfaExempt"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// AdminLoginResponse - результат входа. RequiresTwoFactor=true означает,
// что сессия не создана и нужен повторный запрос с полем otp.
type AdminLoginResponse struct {
	RequiresTwoFactor bool           `json:"requiresTwoFactor"`
	Admin             *AdminResponse `json:"admin,omitempty"`
}

// TwoFactorSetupResponse - материал для привязки аутентификатора
type TwoFactorSetupResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauthUrl"`
	QRCode     string `json:"qrCode"` // data:image/png;base64,...
}

// UserResponse - зарегистрированный пользователь со счётчиками активности
type UserResponse struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	CreatedAt         time.Time  `json:"createdAt"`
	LastSignInAt      *time.Time `json:"lastSignInAt,omitempty"`
	ConsultationCount int        `json:"consultationCount"`
	PaymentCount      int        `json:"paymentCount"`
}

// UserListResponse - страница пользователей админской консоли
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// NewConsultationResponse преобразует доменную модель заявки в ответ.
func NewConsultationResponse(c *domain.Consultation) ConsultationResponse {
	attachments := make([]AttachmentView, 0, len(c.Attachments))
	for _, a := range c.Attachments {
		attachments = append(attachments, AttachmentView{
			Name:        a.Name,
			Size:        a.Size,
			Type:        a.Type,
			StoragePath: a.StoragePath,
		})
	}

	return ConsultationResponse{
		ID:             c.ID,
		Nickname:       c.Nickname,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		Address:        c.Address,
		AddressDetail:  c.AddressDetail,
		AddressCode:    c.AddressCode,
		BuildingInfo:   c.BuildingInfo,
		MainPurps:      c.MainPurps,
		TotArea:        c.TotArea,
		PlatArea:       c.PlatArea,
		GroundFloorCnt: c.GroundFloorCnt,
		Message:        c.Message,
		Attachments:    attachments,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// NewAdminResponse преобразует доменную модель в ответ без секретов.
func NewAdminResponse(a *domain.AdminUser) *AdminResponse {
	return &AdminResponse{
		ID:               a.ID,
		Username:         a.Username,
		IsActive:         a.IsActive,
		TwoFactorEnabled: a.TwoFactorEnabled,
		MFAExempt:        a.MFAExempt,
		LastLoginAt:      a.LastLoginAt,
		CreatedAt:        a.CreatedAt,
	}
}

// NewUserResponse преобразует доменную модель пользователя в ответ.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		Phone:             u.Phone,
		CreatedAt:         u.CreatedAt,
		LastSignInAt:      u.LastSignInAt,
		ConsultationCount: u.ConsultationCount,
		PaymentCount:      u.PaymentCount,
	}
}
