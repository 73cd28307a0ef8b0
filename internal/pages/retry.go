package pages

import (
	"context"
	"time"
)

// attempt runs fn up to attempts times, sleeping a fixed delay between
// failures. The delay does not grow between attempts. Returns the last
// error when every attempt fails.
func attempt(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}
