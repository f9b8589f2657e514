package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/consultation-service/internal/config"
	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/domain/repository"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const apiBaseURL = "https://api.telegram.org"

// kst - время регистрации в уведомлении показывается по корейскому времени.
var kst = time.FixedZone("KST", 9*60*60)

type notifier struct {
	client    *resty.Client
	botToken  string
	channelID string
	logger    *zap.Logger
}

// NewNotifier создает уведомитель телеграм-канала
func NewNotifier(cfg *config.TelegramConfig, logger *zap.Logger) repository.Notifier {
	client := resty.New().
		SetBaseURL(apiBaseURL).
		SetTimeout(cfg.RequestTimeout)

	return &notifier{
		client:    client,
		botToken:  cfg.BotToken,
		channelID: cfg.ChannelID,
		logger:    logger,
	}
}

type sendMessageResponse struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendConsultationCreated отправляет уведомление о новой заявке.
func (n *notifier) SendConsultationCreated(ctx context.Context, event *domain.ConsultationCreatedEvent) error {
	if n.botToken == "" || n.channelID == "" {
		return fmt.Errorf("telegram configuration missing")
	}

	var result sendMessageResponse
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"chat_id":    n.channelID,
			"text":       formatMessage(event),
			"parse_mode": "Markdown",
		}).
		SetResult(&result).
		Post(fmt.Sprintf("/bot%s/sendMessage", n.botToken))

	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}

	if !resp.IsSuccess() || !result.Ok {
		return fmt.Errorf("telegram API rejected message: status %d, description %q",
			resp.StatusCode(), result.Description)
	}

	n.logger.Info("Telegram notification sent",
		zap.String("consultation_id", event.ConsultationID))
	return nil
}

// formatMessage собирает текст уведомления в том же виде, в каком его
// привыкли читать операторы канала.
func formatMessage(event *domain.ConsultationCreatedEvent) string {
	fullAddress := event.Address
	if event.AddressDetail != nil && *event.AddressDetail != "" {
		fullAddress += " " + *event.AddressDetail
	}

	mainPurps := event.MainPurps
	if mainPurps == "" {
		mainPurps = domain.MainPurpsNeedsVerification
	}

	message := "별도 요청사항 없음"
	if event.Message != nil && *event.Message != "" {
		message = *event.Message
	}

	var b strings.Builder
	b.WriteString("🆕 *새 상담 요청이 등록되었습니다*\n\n")
	fmt.Fprintf(&b, "👤 *고객명:* %s\n", event.Name)
	fmt.Fprintf(&b, "📞 *연락처:* %s\n", event.Phone)
	if event.Email != nil && *event.Email != "" {
		fmt.Fprintf(&b, "📧 *이메일:* %s\n", *event.Email)
	}
	fmt.Fprintf(&b, "\n📍 *주소:* %s\n", fullAddress)
	fmt.Fprintf(&b, "🏠 *건축물 용도:* %s\n", mainPurps)
	fmt.Fprintf(&b, "\n💬 *상담 내용:*\n%s\n", message)
	fmt.Fprintf(&b, "\n⏰ *등록시간:* %s\n", event.CreatedAt.In(kst).Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "\n#새상담 #%s", strings.ReplaceAll(event.Name, " ", ""))

	return b.String()
}
