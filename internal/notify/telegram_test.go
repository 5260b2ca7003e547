package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBot struct {
	mock.Mock
}

func (m *MockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return tgbotapi.Message{}, args.Error(0)
}

func TestTelegramNotifier_SendBookingConfirmation(t *testing.T) {
	bot := &MockBot{}
	notifier := &TelegramNotifier{bot: bot, chatID: -1001}

	var sent tgbotapi.MessageConfig
	bot.On("Send", mock.AnythingOfType("tgbotapi.MessageConfig")).
		Run(func(args mock.Arguments) { sent = args.Get(0).(tgbotapi.MessageConfig) }).
		Return(nil).Once()

	msg := sampleBookingConfirmation()
	ret := sampleLeg("VJ456", "HAN", "SGN", time.Date(2026, 11, 8, 10, 0, 0, 0, time.UTC))
	msg.Return = &ret

	err := notifier.SendBookingConfirmation(context.Background(), msg)

	require.NoError(t, err)
	assert.Equal(t, int64(-1001), sent.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, sent.ParseMode)
	assert.Contains(t, sent.Text, "BK123456007")
	assert.Contains(t, sent.Text, "VJ123 SGN → HAN")
	assert.Contains(t, sent.Text, "VJ456 HAN → SGN")
	assert.Contains(t, sent.Text, "2 người lớn, 1 trẻ em, 0 em bé")
	assert.Contains(t, sent.Text, "2.750.000 VNĐ")
	bot.AssertExpectations(t)
}

func TestTelegramNotifier_EscapesHTML(t *testing.T) {
	bot := &MockBot{}
	notifier := &TelegramNotifier{bot: bot, chatID: 1}

	var sent tgbotapi.MessageConfig
	bot.On("Send", mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(0).(tgbotapi.MessageConfig) }).
		Return(nil).Once()

	msg := samplePaymentConfirmation()
	msg.Name = "<b>An</b>"

	require.NoError(t, notifier.SendPaymentConfirmation(context.Background(), msg))
	assert.Contains(t, sent.Text, "&lt;b&gt;An&lt;/b&gt;")
}

func TestTelegramNotifier_SendError(t *testing.T) {
	bot := &MockBot{}
	notifier := &TelegramNotifier{bot: bot, chatID: 1}
	bot.On("Send", mock.Anything).Return(errors.New("Forbidden: bot was kicked")).Once()

	err := notifier.SendPaymentConfirmation(context.Background(), samplePaymentConfirmation())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot was kicked")
}
