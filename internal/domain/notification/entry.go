// internal/domain/notification/entry.go
package notification

import "time"

// Kind distinguishes status notifications from failure reports.
type Kind string

const (
	KindTransition Kind = "TRANSITION"
	KindFailure    Kind = "FAILURE"
)

// Entry is one message delivered to the destination chat.
// Corresponds to the 'homework_notifications' table.
type Entry struct {
	ID           int64
	Kind         Kind
	ChatID       string // numeric id or @username
	HomeworkName string // empty for failures
	Status       string // empty for failures
	Text         string
	SentAt       time.Time
}
