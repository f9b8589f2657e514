package domain

import "time"

// AdminUser - учётная запись администратора. MFAExempt - явный флаг,
// устанавливаемый при создании аккаунта; освобождение от обязательной
// двухфакторки никогда не решается сравнением имени пользователя.
type AdminUser struct {
	ID               string     `json:"id" db:"id"`
	Username         string     `json:"username" db:"username"`
	PasswordHash     string     `json:"-" db:"password_hash"`
	IsActive         bool       `json:"is_active" db:"is_active"`
	TwoFactorEnabled bool       `json:"two_factor_enabled" db:"two_factor_enabled"`
	TwoFactorSecret  *string    `json:"-" db:"two_factor_secret"`
	MFAExempt        bool       `json:"mfa_exempt" db:"mfa_exempt"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

// RequiresTwoFactor - нужен ли TOTP-код для входа этого администратора.
func (a *AdminUser) RequiresTwoFactor() bool {
	return a.TwoFactorEnabled && !a.MFAExempt
}
