package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/domain/repository"
	"github.com/consultation-service/internal/worker"
	"go.uber.org/zap"
)

const (
	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	retryDelay      = 500 * time.Millisecond // пауза между попытками отправки
)

// NotificationWorker отправляет уведомления о новых заявках
type NotificationWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	notifier     repository.Notifier
	consumerName string
	maxRetries   int
}

// NewNotificationWorker создает новый NotificationWorker
func NewNotificationWorker(
	streamRepo repository.StreamRepository,
	notifier repository.Notifier,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *NotificationWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &NotificationWorker{
		BaseWorker:   worker.NewBaseWorker("consultation-notification", consumerGroup, logger),
		streamRepo:   streamRepo,
		notifier:     notifier,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *NotificationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting NotificationWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	// Создаем consumer group
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamConsultationNotify, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// Основной цикл обработки
	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			// Если ничего не обработали - короткая пауза
			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает batch сообщений.
// Возвращает количество прочитанных сообщений.
func (w *NotificationWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamConsultationNotify,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			w.ack(ctx, msg.ID)
			continue
		}

		if err := w.sendWithRetry(ctx, event); err != nil {
			// Уведомления best-effort: заявка уже сохранена,
			// поэтому сообщение подтверждаем в любом случае.
			logger.Error("Failed to send notification, giving up",
				zap.String("consultation_id", event.ConsultationID),
				zap.Int("attempts", w.maxRetries),
				zap.Error(err))
		}

		w.ack(ctx, msg.ID)
	}

	return len(messages), nil
}

// sendWithRetry отправляет уведомление с повторами
func (w *NotificationWorker) sendWithRetry(ctx context.Context, event *domain.ConsultationCreatedEvent) error {
	var lastErr error

	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err := w.notifier.SendConsultationCreated(ctx, event); err != nil {
			lastErr = err
			w.Logger().Warn("Notification attempt failed",
				zap.String("consultation_id", event.ConsultationID),
				zap.Int("attempt", attempt),
				zap.Error(err))

			if attempt < w.maxRetries {
				time.Sleep(retryDelay)
			}
			continue
		}
		return nil
	}

	return lastErr
}

// parseMessage парсит сообщение из стрима в ConsultationCreatedEvent
func (w *NotificationWorker) parseMessage(msg domain.StreamMessage) (*domain.ConsultationCreatedEvent, error) {
	var event domain.ConsultationCreatedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.ConsultationID == "" {
		return nil, fmt.Errorf("missing consultation_id")
	}

	return &event, nil
}

func (w *NotificationWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamConsultationNotify, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
