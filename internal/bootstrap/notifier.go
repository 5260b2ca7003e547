package bootstrap

import (
	"context"
	"time"

	"github.com/Domenick1991/airticket/config"
	"github.com/Domenick1991/airticket/internal/kafka"
	"github.com/Domenick1991/airticket/internal/notify"
	"github.com/sirupsen/logrus"
)

// DirectNotifier builds the SMTP and Telegram fan-out. A channel without
// configuration is skipped with a warning.
func DirectNotifier(cfg *config.Config, logger logrus.FieldLogger) (notify.Multi, error) {
	var channels notify.Multi

	if cfg.SMTP.Host != "" {
		mailer, err := notify.NewMailer(cfg.SMTP, cfg.Notifications.LookupURL)
		if err != nil {
			return nil, err
		}
		channels = append(channels, mailer)
	} else {
		logger.Warn("smtp host not configured, customer e-mails are disabled")
	}

	if cfg.Telegram.BotToken != "" {
		bot, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, err
		}
		channels = append(channels, bot)
	} else {
		logger.Debug("telegram bot not configured, staff messages are disabled")
	}

	return channels, nil
}

// NewNotifier returns the notifier for the configured mode and a close func
// to run after in-flight notifications have drained. In direct mode with no
// channel configured the notifier is nil and bookings send nothing.
func NewNotifier(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (notify.Notifier, func(), error) {
	if cfg.Notifications.Mode != config.NotificationModeQueue {
		channels, err := DirectNotifier(cfg, logger)
		if err != nil {
			return nil, func() {}, err
		}
		if len(channels) == 0 {
			logger.Warn("no notification channel configured, booking notifications are disabled")
			return nil, func() {}, nil
		}
		return channels, func() {}, nil
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := producer.CheckConnection(checkCtx); err != nil {
		logger.WithError(err).Warn("kafka is not reachable yet, notifications will fail until it is")
	}

	closeFn := func() {
		if err := producer.Close(); err != nil {
			logger.WithError(err).Error("close kafka producer")
		}
	}
	return notify.NewQueueNotifier(producer, cfg.Kafka.NotificationsTopic), closeFn, nil
}
