package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airticket/config"
	"github.com/Domenick1991/airticket/internal/bootstrap"
	"github.com/Domenick1991/airticket/internal/kafka"
	"github.com/Domenick1991/airticket/internal/notify"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	logger := bootstrap.NewLogger(cfg.Log)

	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.NotificationsTopic == "" {
		logger.Fatal("worker requires kafka brokers and notifications_topic")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier, err := bootstrap.DirectNotifier(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("configure notifications")
	}
	if len(notifier) == 0 {
		logger.Fatal("worker requires smtp or telegram to be configured")
	}

	consumer := kafka.NewConsumer(cfg.Kafka, logger)
	defer consumer.Close()

	logger.WithFields(logrus.Fields{
		"topic":    cfg.Kafka.NotificationsTopic,
		"group_id": cfg.Kafka.GroupID,
	}).Info("starting notification worker")

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		event, err := kafka.DecodeNotificationEvent(msg)
		if err != nil {
			logger.WithError(err).WithField("offset", msg.Offset).Warn("skip malformed notification event")
			return nil
		}

		entry := logger.WithFields(logrus.Fields{
			"booking_code": event.BookingCode(),
			"event":        event.Type,
			"event_id":     event.ID,
		})

		sendCtx, cancel := context.WithTimeout(ctx, cfg.Notifications.Timeout())
		defer cancel()
		// Delivery is at most once; a failed send is logged and the offset committed.
		if err := notify.Dispatch(sendCtx, notifier, event); err != nil {
			entry.WithError(err).Error("notification failed")
			return nil
		}
		entry.Info("notification sent")
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("consumer stopped")
		return
	}
	logger.Info("worker stopped")
}
