// internal/infra/database/postgres_journal_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homework_status_bot/internal/domain/notification"

	"github.com/lib/pq"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS homework_notifications (
    id            BIGSERIAL PRIMARY KEY,
    kind          TEXT        NOT NULL,
    chat_id       TEXT        NOT NULL,
    homework_name TEXT        NOT NULL DEFAULT '',
    status        TEXT        NOT NULL DEFAULT '',
    text          TEXT        NOT NULL,
    sent_at       TIMESTAMPTZ NOT NULL
)`

// PostgresJournalRepository stores delivered messages in homework_notifications.
type PostgresJournalRepository struct {
	db *sql.DB
}

func NewPostgresJournalRepository(db *sql.DB) *PostgresJournalRepository {
	return &PostgresJournalRepository{db: db}
}

// EnsureSchema creates the journal table if it does not exist yet.
func (r *PostgresJournalRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, journalSchema); err != nil {
		return fmt.Errorf("error creating homework_notifications table: %w", describe(err))
	}
	return nil
}

func (r *PostgresJournalRepository) Record(ctx context.Context, entry *notification.Entry) error {
	query := `INSERT INTO homework_notifications (kind, chat_id, homework_name, status, text, sent_at)
               VALUES ($1, $2, $3, $4, $5, $6)
               RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		entry.Kind, entry.ChatID, entry.HomeworkName, entry.Status, entry.Text, entry.SentAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("error recording notification: %w", describe(err))
	}
	return nil
}

// describe adds the SQLSTATE code to server-side errors.
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%w (sqlstate %s)", err, pqErr.Code)
	}
	return err
}
