package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type EventType string

const (
	EventBookingConfirmation EventType = "booking_confirmation"
	EventPaymentConfirmation EventType = "payment_confirmation"
)

// NotificationEvent carries exactly one of the payloads, selected by Type.
type NotificationEvent struct {
	ID                  string                      `json:"id"`
	Type                EventType                   `json:"type"`
	OccurredAt          time.Time                   `json:"occurred_at"`
	BookingConfirmation *domain.BookingConfirmation `json:"booking_confirmation,omitempty"`
	PaymentConfirmation *domain.PaymentConfirmation `json:"payment_confirmation,omitempty"`
}

func NewBookingConfirmationEvent(msg domain.BookingConfirmation) NotificationEvent {
	return NotificationEvent{
		ID:                  uuid.NewString(),
		Type:                EventBookingConfirmation,
		OccurredAt:          time.Now().UTC(),
		BookingConfirmation: &msg,
	}
}

func NewPaymentConfirmationEvent(msg domain.PaymentConfirmation) NotificationEvent {
	return NotificationEvent{
		ID:                  uuid.NewString(),
		Type:                EventPaymentConfirmation,
		OccurredAt:          time.Now().UTC(),
		PaymentConfirmation: &msg,
	}
}

// BookingCode is used as the message key so events of one booking stay ordered.
func (e NotificationEvent) BookingCode() string {
	switch {
	case e.BookingConfirmation != nil:
		return e.BookingConfirmation.BookingCode
	case e.PaymentConfirmation != nil:
		return e.PaymentConfirmation.BookingCode
	}
	return ""
}

func DecodeNotificationEvent(msg kafka.Message) (NotificationEvent, error) {
	var event NotificationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return NotificationEvent{}, fmt.Errorf("decode notification event: %w", err)
	}

	switch event.Type {
	case EventBookingConfirmation:
		if event.BookingConfirmation == nil {
			return NotificationEvent{}, fmt.Errorf("event %s: missing booking_confirmation payload", event.ID)
		}
	case EventPaymentConfirmation:
		if event.PaymentConfirmation == nil {
			return NotificationEvent{}, fmt.Errorf("event %s: missing payment_confirmation payload", event.ID)
		}
	default:
		return NotificationEvent{}, fmt.Errorf("event %s: unknown type %q", event.ID, event.Type)
	}
	return event, nil
}
