package xcmd

import (
	"context"
	"time"
)

// PeriodicRun calls execute once per period until ctx is done or execute
// returns a non-nil error, used by the brex CLI's --watch mode to re-run a
// search against a file on an interval.
func PeriodicRun(ctx context.Context, execute func(ctx context.Context) error, period time.Duration) error {
	timer := time.NewTicker(period)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-timer.C:
			if err := execute(ctx); err != nil {
				return err
			}
		}
	}
}
