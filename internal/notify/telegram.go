package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Domenick1991/airticket/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts a short summary of each customer notification to the staff chat.
type TelegramNotifier struct {
	bot    botSender
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) SendBookingConfirmation(_ context.Context, msg domain.BookingConfirmation) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Đặt vé mới %s</b>\n", html.EscapeString(msg.BookingCode))
	fmt.Fprintf(&b, "Khách hàng: %s (%s)\n", html.EscapeString(msg.Name), html.EscapeString(msg.To))
	fmt.Fprintf(&b, "Chiều đi: %s %s → %s, %s\n",
		html.EscapeString(msg.Departure.FlightCode),
		html.EscapeString(msg.Departure.Departure.AirportCode),
		html.EscapeString(msg.Departure.Arrival.AirportCode),
		formatTime(msg.Departure.Departure.Time))
	if ret := msg.Return; ret != nil {
		fmt.Fprintf(&b, "Chiều về: %s %s → %s, %s\n",
			html.EscapeString(ret.FlightCode),
			html.EscapeString(ret.Departure.AirportCode),
			html.EscapeString(ret.Arrival.AirportCode),
			formatTime(ret.Departure.Time))
	}
	fmt.Fprintf(&b, "Hành khách: %d người lớn, %d trẻ em, %d em bé\n",
		msg.Passengers.Adults, msg.Passengers.Children, msg.Passengers.Infants)
	fmt.Fprintf(&b, "Tổng tiền: %s VNĐ", formatVND(msg.Amount))
	return t.send(b.String())
}

func (t *TelegramNotifier) SendPaymentConfirmation(_ context.Context, msg domain.PaymentConfirmation) error {
	text := fmt.Sprintf("<b>Đã thanh toán %s</b>\nKhách hàng: %s (%s)\nSố tiền: %s VNĐ",
		html.EscapeString(msg.BookingCode),
		html.EscapeString(msg.Name),
		html.EscapeString(msg.To),
		formatVND(msg.Amount))
	return t.send(text)
}

func (t *TelegramNotifier) send(text string) error {
	out := tgbotapi.NewMessage(t.chatID, text)
	out.ParseMode = tgbotapi.ModeHTML
	if _, err := t.bot.Send(out); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
