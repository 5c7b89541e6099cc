// internal/app/notifier.go
package app

import (
	"context"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/notification"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// MessageSendError wraps a failure of the messaging provider.
type MessageSendError struct {
	ChatID string
	Err    error
}

func (e *MessageSendError) Error() string {
	return fmt.Sprintf("failed to send telegram message to chat %s: %v", e.ChatID, e.Err)
}

func (e *MessageSendError) Unwrap() error { return e.Err }

// Notifier delivers texts to the single destination chat.
type Notifier struct {
	client  domainTelegram.Client
	chatID  string
	limiter *rate.Limiter
	journal notification.Journal
	logger  *logrus.Entry
	now     func() time.Time
}

// NewNotifier builds a notifier that sends no more often than once per
// minInterval. A zero interval disables the limit.
func NewNotifier(client domainTelegram.Client, chatID string, minInterval time.Duration, journal notification.Journal, logger *logrus.Entry) *Notifier {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	if journal == nil {
		journal = notification.NopJournal{}
	}
	return &Notifier{
		client:  client,
		chatID:  chatID,
		limiter: rate.NewLimiter(limit, 1),
		journal: journal,
		logger:  logger.WithField("chat_id", chatID),
		now:     time.Now,
	}
}

// SendMessage sends text once, without retries.
func (n *Notifier) SendMessage(ctx context.Context, text string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return &MessageSendError{ChatID: n.chatID, Err: err}
	}
	n.logger.WithField("text", text).Debug("Sending message")
	if err := n.client.SendMessage(ctx, n.chatID, text); err != nil {
		return &MessageSendError{ChatID: n.chatID, Err: err}
	}
	n.logger.Debug("Message sent")
	return nil
}

// Send delivers entry.Text and records the delivery in the journal.
// Journal failures are logged and do not fail the delivery.
func (n *Notifier) Send(ctx context.Context, entry *notification.Entry) error {
	if err := n.SendMessage(ctx, entry.Text); err != nil {
		return err
	}
	entry.ChatID = n.chatID
	entry.SentAt = n.now()
	if err := n.journal.Record(ctx, entry); err != nil {
		n.logger.WithError(err).WithField("kind", entry.Kind).Error("Failed to record notification in journal")
	}
	return nil
}
