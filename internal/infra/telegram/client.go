// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gopkg.in/telebot.v3"
)

// chat addresses a message by numeric id or @username, passed to Telegram as is.
type chat string

func (c chat) Recipient() string { return string(c) }

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

// NewBot creates a send-only bot. It is created offline, so no request is
// made until the first message; a bad token surfaces as a send error.
// The bot is never started, so it never receives updates.
func NewBot(token string, timeout time.Duration) (*telebot.Bot, error) {
	return newBot(token, "", timeout)
}

// newBot allows overriding the API URL; an empty url keeps the default.
func newBot(token, url string, timeout time.Duration) (*telebot.Bot, error) {
	b, err := telebot.NewBot(telebot.Settings{
		URL:     url,
		Token:   token,
		Client:  &http.Client{Timeout: timeout},
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return b, nil
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a plain text message to the chat.
func (tba *TelebotAdapter) SendMessage(ctx context.Context, chatID string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := tba.bot.Send(chat(chatID), text, &telebot.SendOptions{
		ParseMode:             telebot.ModeDefault,
		DisableWebPagePreview: true,
	})
	return err
}
