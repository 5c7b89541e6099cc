// internal/domain/notification/repository.go
package notification

import "context"

// Journal records delivered messages. It is an audit trail only and is
// never read back into the polling state.
type Journal interface {
	Record(ctx context.Context, entry *Entry) error
}

// NopJournal discards entries. Used when no database is configured.
type NopJournal struct{}

func (NopJournal) Record(context.Context, *Entry) error { return nil }
