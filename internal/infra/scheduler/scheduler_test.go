package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestParseEvery(t *testing.T) {
	i, err := Parse("@every 10m")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	from := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if got, want := i.Next(from), from.Add(600*time.Second); !got.Equal(want) {
		t.Fatalf("Next = %v, want %v", got, want)
	}
}

func TestParseStandardSpec(t *testing.T) {
	i, err := Parse("*/15 * * * *")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	from := time.Date(2024, 5, 1, 12, 7, 30, 0, time.UTC)
	want := time.Date(2024, 5, 1, 12, 15, 0, 0, time.UTC)
	if got := i.Next(from); !got.Equal(want) {
		t.Fatalf("Next = %v, want %v", got, want)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("every ten minutes"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWaitReturnsOnCancel(t *testing.T) {
	i, err := Parse("@every 1h")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- i.Wait(ctx, time.Now()) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Wait = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Wait did not return after cancellation")
	}
}

func TestWaitElapses(t *testing.T) {
	i, err := Parse("@every 1s")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Next is one second after from, so a from in the past is already due.
	if err := i.Wait(context.Background(), time.Now().Add(-2*time.Second)); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}
