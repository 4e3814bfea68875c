package notify

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v3"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/ledger"
)

// Sender is the part of *telebot.Bot used to deliver messages.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelegramNotifier posts alerts to one Telegram chat.
type TelegramNotifier struct {
	sender Sender
	chat   *telebot.Chat
}

// NewTelegramNotifier creates a send-only bot for token. The bot never polls for updates.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return NewTelegramNotifierWithSender(bot, chatID), nil
}

// NewTelegramNotifierWithSender wraps an existing sender.
func NewTelegramNotifierWithSender(sender Sender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, chat: &telebot.Chat{ID: chatID}}
}

func (t *TelegramNotifier) NotifyAlerts(_ context.Context, today calendar.Date, alerts []ledger.CycleStatus) error {
	if len(alerts) == 0 {
		return nil
	}
	if _, err := t.sender.Send(t.chat, FormatAlerts(today, alerts), &telebot.SendOptions{DisableWebPagePreview: true}); err != nil {
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	return nil
}
