package util

import (
	"context"
	"errors"
	"time"
)

// RetryWithBackoff calls fn up to maxTries times until it returns nil,
// waiting delay before the second attempt and doubling the wait after each
// further failure. If maxTries <= 0, it defaults to 1.
//
// It stops early when ctx is done or fn returns a context error, and
// otherwise returns the last error.
func RetryWithBackoff(
	ctx context.Context,
	maxTries int,
	delay time.Duration,
	fn func(context.Context) error,
) error {
	if maxTries <= 0 {
		maxTries = 1
	}

	var lastErr error
	for i := 0; i < maxTries; i++ {
		if i > 0 && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			delay *= 2
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		lastErr = err
	}
	return lastErr
}
