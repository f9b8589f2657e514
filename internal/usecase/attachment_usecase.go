package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/consultation-service/internal/config"
	"github.com/consultation-service/internal/domain/repository"
	"github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/usecase/dto"
)

// allowedMIMETypes - допустимые типы вложений. HWP встречается в двух
// вариантах MIME в зависимости от браузера.
var allowedMIMETypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"image/webp":         true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/haansofthwp": true,
	"application/x-hwp":       true,
}

var resizableMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// unsafePathChars - всё, что не попадает в имя объекта в хранилище.
var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// AttachmentUseCase - use case загрузки и выдачи вложений
type AttachmentUseCase struct {
	storageRepo      repository.StorageRepository
	consultationRepo repository.ConsultationRepository
	storageCfg       *config.StorageConfig
	uploadCfg        *config.UploadConfig
	logger           *zap.Logger
}

// NewAttachmentUseCase - создание нового AttachmentUseCase
func NewAttachmentUseCase(
	storageRepo repository.StorageRepository,
	consultationRepo repository.ConsultationRepository,
	storageCfg *config.StorageConfig,
	uploadCfg *config.UploadConfig,
	logger *zap.Logger,
) *AttachmentUseCase {
	return &AttachmentUseCase{
		storageRepo:      storageRepo,
		consultationRepo: consultationRepo,
		storageCfg:       storageCfg,
		uploadCfg:        uploadCfg,
		logger:           logger,
	}
}

// Upload - приём файла от владельца заявки. Для существующей заявки лимит
// считается по сохранённой строке; existingCount из формы учитывается только
// для временных загрузок, пока заявки ещё нет.
func (uc *AttachmentUseCase) Upload(ctx context.Context, userID, consultationID, fileName, contentType string, size int64, reader io.Reader, existingCount int) (*dto.AttachmentUploadResponse, error) {
	if consultationID != "" {
		consultation, err := uc.consultationRepo.GetByIDForUser(ctx, consultationID, userID)
		if err != nil {
			return nil, err
		}
		existingCount = len(consultation.Attachments)
	}
	if existingCount >= uc.uploadCfg.MaxFiles {
		return nil, errors.ErrValidation.WithMessage(
			fmt.Sprintf("첨부파일은 최대 %d개까지 등록할 수 있습니다.", uc.uploadCfg.MaxFiles))
	}
	if !allowedMIMETypes[contentType] {
		return nil, errors.ErrValidation.WithMessage("지원하지 않는 파일 형식입니다. (이미지, PDF, DOC, HWP만 가능)")
	}
	if size > uc.uploadCfg.MaxFileSize {
		return nil, errors.ErrValidation.WithMessage("파일 크기는 10MB를 초과할 수 없습니다.")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		uc.logger.Error("Failed to read upload", zap.String("file", fileName), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	// Крупные изображения ужимаются перед загрузкой. Best-effort: если
	// декодирование не удалось, загружается оригинал.
	if resizableMIMETypes[contentType] && int64(len(data)) > uc.uploadCfg.ResizeThreshold {
		if resized, ok := uc.downsample(data, fileName); ok {
			data = resized
			contentType = "image/jpeg"
		}
	}

	path := uc.buildObjectPath(userID, consultationID, fileName)

	storedPath, err := uc.storageRepo.Upload(ctx, path, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		uc.logger.Error("Failed to upload attachment",
			zap.String("path", path),
			zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return &dto.AttachmentUploadResponse{
		Name:        fileName,
		Size:        int64(len(data)),
		Type:        contentType,
		StoragePath: storedPath,
	}, nil
}

// SignedURL - временная ссылка на скачивание. Путь должен принадлежать
// вызывающему пользователю.
func (uc *AttachmentUseCase) SignedURL(ctx context.Context, userID, path string) (string, error) {
	if !uc.ownsPath(userID, path) {
		return "", errors.ErrUnauthorized
	}

	url, err := uc.storageRepo.SignedURL(ctx, path, uc.storageCfg.SignedURLTTL)
	if err != nil {
		uc.logger.Error("Failed to sign attachment URL",
			zap.String("path", path),
			zap.Error(err))
		return "", errors.ErrStorageError
	}
	return url, nil
}

// Delete - удаление объекта из хранилища владельцем.
func (uc *AttachmentUseCase) Delete(ctx context.Context, userID, path string) error {
	if !uc.ownsPath(userID, path) {
		return errors.ErrUnauthorized
	}

	if err := uc.storageRepo.Delete(ctx, path); err != nil {
		uc.logger.Error("Failed to delete attachment",
			zap.String("path", path),
			zap.Error(err))
		return errors.ErrStorageError
	}
	return nil
}

// MaxAttachments - действующий лимит вложений на заявку.
func (uc *AttachmentUseCase) MaxAttachments() int {
	return uc.uploadCfg.MaxFiles
}

func (uc *AttachmentUseCase) ownsPath(userID, path string) bool {
	return userID != "" && strings.HasPrefix(path, userID+"/")
}

// buildObjectPath - {userID}/{consultationID|temp_<ts>}/{ts}_{имя файла}.
// Файлы, загруженные до создания заявки, попадают во временную директорию.
func (uc *AttachmentUseCase) buildObjectPath(userID, consultationID, fileName string) string {
	now := time.Now().Unix()
	folder := consultationID
	if folder == "" {
		folder = fmt.Sprintf("temp_%d", now)
	}
	sanitized := unsafePathChars.ReplaceAllString(fileName, "_")
	return fmt.Sprintf("%s/%s/%d_%s", userID, folder, now, sanitized)
}

func (uc *AttachmentUseCase) downsample(data []byte, fileName string) ([]byte, bool) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		uc.logger.Warn("Failed to decode image for resize",
			zap.String("file", fileName),
			zap.Error(err))
		return nil, false
	}

	if img.Bounds().Dx() > uc.uploadCfg.ResizeMaxWidth {
		img = imaging.Resize(img, uc.uploadCfg.ResizeMaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(uc.uploadCfg.JPEGQuality)); err != nil {
		uc.logger.Warn("Failed to encode resized image",
			zap.String("file", fileName),
			zap.Error(err))
		return nil, false
	}

	return buf.Bytes(), true
}
