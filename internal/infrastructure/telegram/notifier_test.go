package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/consultation-service/internal/domain"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testEvent() *domain.ConsultationCreatedEvent {
	email := "hong@example.com"
	detail := "101동 1502호"
	message := "증축 관련 상담을 받고 싶습니다."
	return &domain.ConsultationCreatedEvent{
		ConsultationID: "c-1",
		Name:           "홍길동",
		Phone:          "010-1234-5678",
		Email:          &email,
		Address:        "서울특별시 강남구 테헤란로 123",
		AddressDetail:  &detail,
		MainPurps:      "단독주택",
		Message:        &message,
		CreatedAt:      time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC),
	}
}

func TestNotifier_SendConsultationCreated(t *testing.T) {
	t.Run("successful send", func(t *testing.T) {
		var received map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		n := &notifier{
			client:    resty.New().SetBaseURL(server.URL),
			botToken:  "test-token",
			channelID: "@archlegal",
			logger:    zap.NewNop(),
		}

		err := n.SendConsultationCreated(context.Background(), testEvent())
		require.NoError(t, err)

		assert.Equal(t, "@archlegal", received["chat_id"])
		assert.Equal(t, "Markdown", received["parse_mode"])

		text := received["text"].(string)
		assert.Contains(t, text, "홍길동")
		assert.Contains(t, text, "010-1234-5678")
		assert.Contains(t, text, "서울특별시 강남구 테헤란로 123 101동 1502호")
		assert.Contains(t, text, "단독주택")
		assert.Contains(t, text, "#새상담 #홍길동")
	})

	t.Run("api rejection is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
		}))
		defer server.Close()

		n := &notifier{
			client:    resty.New().SetBaseURL(server.URL),
			botToken:  "test-token",
			channelID: "@missing",
			logger:    zap.NewNop(),
		}

		err := n.SendConsultationCreated(context.Background(), testEvent())
		assert.Error(t, err)
	})

	t.Run("missing configuration is an error", func(t *testing.T) {
		n := &notifier{
			client: resty.New(),
			logger: zap.NewNop(),
		}

		err := n.SendConsultationCreated(context.Background(), testEvent())
		assert.Error(t, err)
	})
}

func TestFormatMessage(t *testing.T) {
	t.Run("optional fields omitted", func(t *testing.T) {
		event := &domain.ConsultationCreatedEvent{
			ConsultationID: "c-2",
			Name:           "이형훈",
			Phone:          "010-9876-5432",
			Address:        "부산광역시 해운대구 중동 7",
			CreatedAt:      time.Now(),
		}

		text := formatMessage(event)
		assert.NotContains(t, text, "이메일")
		assert.Contains(t, text, "별도 요청사항 없음")
		assert.Contains(t, text, domain.MainPurpsNeedsVerification)
	})

	t.Run("timestamp rendered in KST", func(t *testing.T) {
		event := testEvent()
		text := formatMessage(event)
		assert.Contains(t, text, "2025-06-01 12:00:00")
	})
}
