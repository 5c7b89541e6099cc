package homework

import (
	"errors"
	"testing"
)

func TestParseStatusFirstObservationIsTransition(t *testing.T) {
	table := NewStatusTable()

	msg, changed, err := ParseStatus(table, Item{Name: "hw1", Status: StatusReviewing})
	if err != nil {
		t.Fatalf("ParseStatus: %v", err)
	}
	if !changed {
		t.Fatalf("expected first observation to be a transition")
	}
	want := `Изменился статус проверки работы "hw1". Работа взята на проверку ревьюером.`
	if msg != want {
		t.Fatalf("unexpected message:\n got: %s\nwant: %s", msg, want)
	}
	if got, _ := table.Get("hw1"); got != StatusReviewing {
		t.Fatalf("expected table to store %q, got %q", StatusReviewing, got)
	}
}

func TestParseStatusIdempotent(t *testing.T) {
	table := NewStatusTable()
	item := Item{Name: "hw1", Status: StatusRejected}

	if _, changed, err := ParseStatus(table, item); err != nil || !changed {
		t.Fatalf("first call: changed=%v err=%v", changed, err)
	}
	msg, changed, err := ParseStatus(table, item)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if changed || msg != "" {
		t.Fatalf("expected no change on repeated status, got %q", msg)
	}
}

func TestParseStatusTransition(t *testing.T) {
	table := NewStatusTable()
	table.Set("hw1", StatusReviewing)

	msg, changed, err := ParseStatus(table, Item{Name: "hw1", Status: StatusApproved})
	if err != nil || !changed {
		t.Fatalf("changed=%v err=%v", changed, err)
	}
	want := `Изменился статус проверки работы "hw1". Работа проверена: ревьюеру всё понравилось. Ура!`
	if msg != want {
		t.Fatalf("unexpected message: %s", msg)
	}
	if got, _ := table.Get("hw1"); got != StatusApproved {
		t.Fatalf("table not updated, got %q", got)
	}
}

func TestParseStatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		item       Item
		wantStatus bool
	}{
		{name: "missing name", item: Item{Status: StatusApproved}},
		{name: "unknown status", item: Item{Name: "X", Status: "archived"}, wantStatus: true},
		{name: "empty status", item: Item{Name: "X"}, wantStatus: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewStatusTable()
			_, changed, err := ParseStatus(table, tt.item)
			if err == nil {
				t.Fatalf("expected error")
			}
			if changed {
				t.Fatalf("error must not report a change")
			}
			var statusErr *StatusError
			if tt.wantStatus != errors.As(err, &statusErr) {
				t.Fatalf("unexpected error type: %v", err)
			}
			if !tt.wantStatus && !errors.Is(err, ErrMissingHomeworkName) {
				t.Fatalf("expected ErrMissingHomeworkName, got %v", err)
			}
			if table.Len() != 0 {
				t.Fatalf("table mutated on error")
			}
		})
	}
}
