package domain

import "time"

// StreamConsultationNotify - redis-стрим событий о новых заявках.
// Публикация best-effort: ошибка публикации логируется и никогда
// не прерывает подачу заявки.
const StreamConsultationNotify = "consultation:notify"

// ConsultationCreatedEvent - событие для воркера уведомлений.
type ConsultationCreatedEvent struct {
	ConsultationID string    `json:"consultation_id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          *string   `json:"email,omitempty"`
	Address        string    `json:"address"`
	AddressDetail  *string   `json:"address_detail,omitempty"`
	MainPurps      string    `json:"main_purps"`
	Message        *string   `json:"message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// StreamMessage - сообщение, прочитанное из redis-стрима.
type StreamMessage struct {
	ID   string
	Data string
}
