package app

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"homework_status_bot/internal/domain/notification"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func decode(t *testing.T, body string) any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return v
}

func nullEntry() (*logrus.Entry, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(log), hook
}

type apiAnswer struct {
	body any
	err  error
}

type fakeAPI struct {
	answers []apiAnswer
	cursors []int64
}

func (f *fakeAPI) GetAPIAnswer(_ context.Context, cursor int64) (any, error) {
	f.cursors = append(f.cursors, cursor)
	if len(f.answers) == 0 {
		return nil, context.Canceled
	}
	a := f.answers[0]
	f.answers = f.answers[1:]
	return a.body, a.err
}

type fakeSender struct {
	sent []notification.Entry
	fail func(entry *notification.Entry) error
}

func (f *fakeSender) Send(_ context.Context, entry *notification.Entry) error {
	if f.fail != nil {
		if err := f.fail(entry); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, *entry)
	return nil
}

func (f *fakeSender) texts() []string {
	out := make([]string, 0, len(f.sent))
	for _, e := range f.sent {
		out = append(out, e.Text)
	}
	return out
}

// fakeWaiter lets the loop run a fixed number of cycles, then cancels.
type fakeWaiter struct {
	cycles int
	cancel context.CancelFunc
	waits  int
}

func (f *fakeWaiter) Wait(ctx context.Context, _ time.Time) error {
	f.waits++
	if f.waits >= f.cycles {
		f.cancel()
	}
	return ctx.Err()
}

type fakeTelegram struct {
	chatIDs []string
	texts   []string
	err     error
}

func (f *fakeTelegram) SendMessage(_ context.Context, chatID string, text string) error {
	if f.err != nil {
		return f.err
	}
	f.chatIDs = append(f.chatIDs, chatID)
	f.texts = append(f.texts, text)
	return nil
}

type fakeJournal struct {
	entries []notification.Entry
	err     error
}

func (f *fakeJournal) Record(_ context.Context, entry *notification.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}
