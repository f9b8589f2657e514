package repository

import (
	"context"

	"github.com/consultation-service/internal/domain"
)

// Notifier отправляет уведомление о новой заявке во внешний канал.
// Контракт best-effort: ошибка отправки логируется вызывающей стороной
// и никогда не доходит до пользовательского пути.
type Notifier interface {
	SendConsultationCreated(ctx context.Context, event *domain.ConsultationCreatedEvent) error
}
