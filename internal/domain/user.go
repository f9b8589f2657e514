package domain

import (
	"strings"
	"time"
)

// AuthUser - идентичность конечного пользователя из identity-провайдера.
// Ядро доверяет ей как есть (см. внешние интерфейсы).
type AuthUser struct {
	ID       string
	Email    string
	Name     string
	FullName string
	Phone    string
}

// Nickname - отображаемое имя: метаданные провайдера, затем локальная часть
// email, затем "사용자" (пользователь).
func (u AuthUser) Nickname() string {
	if u.Name != "" {
		return u.Name
	}
	if u.FullName != "" {
		return u.FullName
	}
	if u.Email != "" {
		if idx := strings.Index(u.Email, "@"); idx > 0 {
			return u.Email[:idx]
		}
	}
	return "사용자"
}

// User - зеркало зарегистрированного пользователя для админской консоли.
// Таблицу наполняет синхронизация с identity-провайдером.
type User struct {
	ID                string     `json:"id" db:"id"`
	Email             string     `json:"email" db:"email"`
	Phone             string     `json:"phone" db:"phone"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	LastSignInAt      *time.Time `json:"last_sign_in_at" db:"last_sign_in_at"`
	ConsultationCount int        `json:"consultation_count" db:"-"`
	PaymentCount      int        `json:"payment_count" db:"-"`
}

// UserFilter - фильтры админского списка пользователей.
type UserFilter struct {
	Email    string
	DateFrom string
	DateTo   string
	Page     int
	Limit    int
}
