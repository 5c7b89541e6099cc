package telegram

import "context"

// Client defines an interface for sending messages via a Telegram bot.
type Client interface {
	SendMessage(ctx context.Context, chatID string, text string) error
}
