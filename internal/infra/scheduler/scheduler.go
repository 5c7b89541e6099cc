package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Interval decides when the next polling cycle starts. The spec is anything
// cron.ParseStandard accepts: "@every 10m" gives a fixed pause after each
// cycle, a five-field expression aligns cycles to the wall clock.
type Interval struct {
	spec     string
	schedule cron.Schedule
}

func Parse(spec string) (*Interval, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", spec, err)
	}
	return &Interval{spec: spec, schedule: schedule}, nil
}

func (i *Interval) String() string { return i.spec }

// Next returns the activation time following from.
func (i *Interval) Next(from time.Time) time.Time {
	return i.schedule.Next(from)
}

// Wait blocks until the activation following from, or until ctx is done,
// in which case ctx.Err() is returned.
func (i *Interval) Wait(ctx context.Context, from time.Time) error {
	timer := time.NewTimer(time.Until(i.Next(from)))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
