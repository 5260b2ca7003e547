package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airticket/config"
	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/wneessen/go-mail"
)

type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Mailer sends customer e-mails over SMTP.
type Mailer struct {
	client    mailSender
	from      string
	fromName  string
	lookupURL string
	now       func() time.Time
}

func NewMailer(cfg config.SMTPConfig, lookupURL string) (*Mailer, error) {
	if cfg.From == "" {
		return nil, errors.New("smtp: sender address is not configured")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not initialize smtp client: %w", err)
	}
	return newMailer(client, cfg.From, cfg.FromName, lookupURL), nil
}

func newMailer(client mailSender, from, fromName, lookupURL string) *Mailer {
	return &Mailer{
		client:    client,
		from:      from,
		fromName:  fromName,
		lookupURL: lookupURL,
		now:       time.Now,
	}
}

func (m *Mailer) SendBookingConfirmation(ctx context.Context, msg domain.BookingConfirmation) error {
	body, err := renderBookingConfirmation(msg, m.lookupURL)
	if err != nil {
		return fmt.Errorf("render booking confirmation: %w", err)
	}
	return m.send(ctx, msg.To, bookingConfirmationSubject, body)
}

func (m *Mailer) SendPaymentConfirmation(ctx context.Context, msg domain.PaymentConfirmation) error {
	body, err := renderPaymentConfirmation(msg, m.lookupURL, m.now())
	if err != nil {
		return fmt.Errorf("render payment confirmation: %w", err)
	}
	return m.send(ctx, msg.To, paymentConfirmationSubject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("failed to set From address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set To address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
