package notify

import (
	"context"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/kafka"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// QueueNotifier hands notifications to the worker through the notifications topic.
type QueueNotifier struct {
	producer Publisher
	topic    string
}

func NewQueueNotifier(producer Publisher, topic string) *QueueNotifier {
	return &QueueNotifier{producer: producer, topic: topic}
}

func (q *QueueNotifier) SendBookingConfirmation(ctx context.Context, msg domain.BookingConfirmation) error {
	return q.publish(ctx, kafka.NewBookingConfirmationEvent(msg))
}

func (q *QueueNotifier) SendPaymentConfirmation(ctx context.Context, msg domain.PaymentConfirmation) error {
	return q.publish(ctx, kafka.NewPaymentConfirmationEvent(msg))
}

func (q *QueueNotifier) publish(ctx context.Context, event kafka.NotificationEvent) error {
	return q.producer.Publish(ctx, q.topic, event.BookingCode(), event)
}
