package notify

import (
	"context"
	"errors"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/kafka"
)

type Notifier interface {
	SendBookingConfirmation(ctx context.Context, msg domain.BookingConfirmation) error
	SendPaymentConfirmation(ctx context.Context, msg domain.PaymentConfirmation) error
}

// Multi sends every message through all of its notifiers and joins the errors.
type Multi []Notifier

func (m Multi) SendBookingConfirmation(ctx context.Context, msg domain.BookingConfirmation) error {
	var errs []error
	for _, n := range m {
		if err := n.SendBookingConfirmation(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) SendPaymentConfirmation(ctx context.Context, msg domain.PaymentConfirmation) error {
	var errs []error
	for _, n := range m {
		if err := n.SendPaymentConfirmation(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dispatch delivers a consumed queue event through n.
func Dispatch(ctx context.Context, n Notifier, event kafka.NotificationEvent) error {
	switch event.Type {
	case kafka.EventBookingConfirmation:
		return n.SendBookingConfirmation(ctx, *event.BookingConfirmation)
	case kafka.EventPaymentConfirmation:
		return n.SendPaymentConfirmation(ctx, *event.PaymentConfirmation)
	}
	return errors.New("unsupported notification event " + string(event.Type))
}

var (
	_ Notifier = Multi(nil)
	_ Notifier = (*Mailer)(nil)
	_ Notifier = (*TelegramNotifier)(nil)
	_ Notifier = (*QueueNotifier)(nil)
)
