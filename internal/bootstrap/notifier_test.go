package bootstrap

import (
	"context"
	"testing"

	"github.com/Domenick1991/airticket/config"
	"github.com/Domenick1991/airticket/internal/notify"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectNotifier_SkipsUnconfiguredChannels(t *testing.T) {
	logger, hook := test.NewNullLogger()

	n, err := DirectNotifier(&config.Config{}, logger)

	require.NoError(t, err)
	assert.Empty(t, n)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestDirectNotifier_Mailer(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{SMTP: config.SMTPConfig{Host: "smtp.example.vn", Port: 587, From: "no-reply@example.vn"}}

	n, err := DirectNotifier(cfg, logger)

	require.NoError(t, err)
	require.Len(t, n, 1)
	assert.IsType(t, &notify.Mailer{}, n[0])
}

func TestNewNotifier_DirectWithoutChannelsIsNil(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cfg := &config.Config{Notifications: config.NotificationsConfig{Mode: config.NotificationModeDirect}}

	n, closeFn, err := NewNotifier(context.Background(), cfg, logger)

	require.NoError(t, err)
	assert.Nil(t, n)
	assert.NotNil(t, closeFn)
	assert.Equal(t, "no notification channel configured, booking notifications are disabled", hook.LastEntry().Message)
}

func TestNewNotifier_DirectWithMailer(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{
		Notifications: config.NotificationsConfig{Mode: config.NotificationModeDirect},
		SMTP:          config.SMTPConfig{Host: "smtp.example.vn", Port: 587, From: "no-reply@example.vn"},
	}

	n, _, err := NewNotifier(context.Background(), cfg, logger)

	require.NoError(t, err)
	require.IsType(t, notify.Multi{}, n)
	assert.Len(t, n.(notify.Multi), 1)
}
