package domain

import "time"

const (
	// IsDelNo / IsDelYes - флаг мягкого удаления в том виде, в каком он
	// хранится в базе.
	IsDelNo  = "N"
	IsDelYes = "Y"

	// MaxAttachments - максимум вложений на одну заявку.
	MaxAttachments = 3
)

// Attachment - метаданные загруженного файла. Хранятся JSON-массивом
// в строке заявки, отдельной таблицы нет.
type Attachment struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	Type        string `json:"type"`
	StoragePath string `json:"storagePath"`
}

// Consultation - заявка на консультацию. Создаётся аутентифицированным
// пользователем, изменяется и мягко удаляется только владельцем, читается
// владельцем или администратором. Никогда не удаляется физически.
type Consultation struct {
	ID             string       `json:"id" db:"id"`
	UserID         string       `json:"user_id" db:"user_id"`
	Nickname       string       `json:"nickname" db:"nickname"`
	Name           string       `json:"name" db:"name"`
	Phone          string       `json:"phone" db:"phone"`
	Email          *string      `json:"email" db:"email"`
	Address        string       `json:"address" db:"address"`
	AddressDetail  *string      `json:"address_detail" db:"address_detail"`
	AddressCode    AddressCode  `json:"address_code" db:"-"`
	BuildingInfo   BuildingInfo `json:"building_info" db:"-"`
	MainPurps      string       `json:"main_purps" db:"main_purps"`
	TotArea        *float64     `json:"tot_area" db:"tot_area"`
	PlatArea       *float64     `json:"plat_area" db:"plat_area"`
	GroundFloorCnt *int         `json:"ground_floor_cnt" db:"ground_floor_cnt"`
	Message        *string      `json:"message" db:"message"`
	Attachments    []Attachment `json:"attachments" db:"-"`
	IsDel          string       `json:"is_del" db:"is_del"`
	DeletedAt      *time.Time   `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// ConsultationFilter - фильтры админского списка заявок.
type ConsultationFilter struct {
	DateFrom string
	DateTo   string
	Name     string
	Phone    string
	Address  string
	Page     int
	Limit    int
}
