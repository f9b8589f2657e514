package usecase

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/consultation-service/internal/config"
	"github.com/consultation-service/internal/domain/repository"
	"github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/usecase/dto"
)

const (
	totpIssuer = "ArchLegal"

	// totpSkew - сколько 30-секундных окон допускается в обе стороны,
	// чтобы пережить расхождение часов на телефоне.
	totpSkew = 2
)

// AdminAuthUseCase - use case входа администратора и управления 2FA
type AdminAuthUseCase struct {
	adminRepo   repository.AdminRepository
	sessionRepo repository.SessionRepository
	authCfg     *config.AuthConfig
	logger      *zap.Logger
}

// NewAdminAuthUseCase - создание нового AdminAuthUseCase
func NewAdminAuthUseCase(
	adminRepo repository.AdminRepository,
	sessionRepo repository.SessionRepository,
	authCfg *config.AuthConfig,
	logger *zap.Logger,
) *AdminAuthUseCase {
	return &AdminAuthUseCase{
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
		authCfg:     authCfg,
		logger:      logger,
	}
}

// Login - проверка учётных данных. Несуществующий логин и неверный пароль
// дают одинаковый ответ. Если включена обязательная двухфакторка и кода нет,
// сессия не создаётся и возвращается требование кода.
func (uc *AdminAuthUseCase) Login(ctx context.Context, req dto.AdminLoginRequest) (*dto.AdminLoginResponse, string, error) {
	admin, err := uc.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == errors.ErrAdminNotFound {
			return nil, "", errors.ErrAdminInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", errors.ErrAdminInvalidCredentials
	}

	if !admin.IsActive {
		return nil, "", errors.ErrAdminInactive
	}

	if admin.RequiresTwoFactor() {
		if req.OTP == nil || *req.OTP == "" {
			return &dto.AdminLoginResponse{RequiresTwoFactor: true}, "", nil
		}
		if admin.TwoFactorSecret == nil || !validateTOTP(*req.OTP, *admin.TwoFactorSecret) {
			return nil, "", errors.ErrInvalidOTP
		}
	}

	sessionID, err := uc.sessionRepo.Create(ctx, admin.ID, uc.authCfg.AdminSessionTTL)
	if err != nil {
		uc.logger.Error("Failed to create admin session",
			zap.String("admin_id", admin.ID),
			zap.Error(err))
		return nil, "", errors.ErrInternalServer
	}

	if err := uc.adminRepo.UpdateLastLogin(ctx, admin.ID); err != nil {
		uc.logger.Warn("Failed to update last login",
			zap.String("admin_id", admin.ID),
			zap.Error(err))
	}

	return &dto.AdminLoginResponse{
		Admin: dto.NewAdminResponse(admin),
	}, sessionID, nil
}

// Verify - разрешение сессии в активного администратора.
func (uc *AdminAuthUseCase) Verify(ctx context.Context, sessionID string) (*dto.AdminResponse, error) {
	if sessionID == "" {
		return nil, errors.ErrAdminUnauthorized
	}

	adminID, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		uc.logger.Error("Failed to resolve admin session", zap.Error(err))
		return nil, errors.ErrInternalServer
	}
	if adminID == "" {
		return nil, errors.ErrAdminUnauthorized
	}

	admin, err := uc.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if err == errors.ErrAdminNotFound {
			return nil, errors.ErrAdminUnauthorized
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, errors.ErrAdminInactive
	}

	return dto.NewAdminResponse(admin), nil
}

// Logout - удаление сессии. Отсутствующая сессия не считается ошибкой.
func (uc *AdminAuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return uc.sessionRepo.Delete(ctx, sessionID)
}

// Setup2FA - генерация TOTP-секрета и QR для привязки аутентификатора.
// Секрет попадёт в базу только после подтверждения кодом.
func (uc *AdminAuthUseCase) Setup2FA(ctx context.Context, req dto.TwoFactorSetupRequest) (*dto.TwoFactorSetupResponse, error) {
	admin, err := uc.adminRepo.GetByID(ctx, req.TargetAdminID)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: admin.Username,
	})
	if err != nil {
		uc.logger.Error("Failed to generate TOTP secret", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	png, err := qrcode.Encode(key.String(), qrcode.Medium, 256)
	if err != nil {
		uc.logger.Error("Failed to render TOTP QR code", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	return &dto.TwoFactorSetupResponse{
		Secret:     key.Secret(),
		OTPAuthURL: key.String(),
		QRCode:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}, nil
}

// Verify2FA - подтверждение кода из аутентификатора: секрет сохраняется
// и двухфакторка включается.
func (uc *AdminAuthUseCase) Verify2FA(ctx context.Context, req dto.TwoFactorVerifyRequest) error {
	if !validateTOTP(req.Token, req.Secret) {
		return errors.ErrInvalidOTP
	}

	secret := req.Secret
	return uc.adminRepo.SetTwoFactor(ctx, req.TargetAdminID, true, &secret)
}

// Disable2FA - отключение двухфакторки после повторной проверки пароля.
func (uc *AdminAuthUseCase) Disable2FA(ctx context.Context, adminID, password string) error {
	admin, err := uc.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return errors.ErrAdminInvalidCredentials
	}

	return uc.adminRepo.SetTwoFactor(ctx, adminID, false, nil)
}

func validateTOTP(token, secret string) bool {
	valid, err := totp.ValidateCustom(token, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && valid
}
