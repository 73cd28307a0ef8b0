package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := attempt(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestAttemptRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := attempt(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestAttemptExhaustsAndReturnsLastError(t *testing.T) {
	calls := 0
	last := errors.New("still broken")
	err := attempt(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return last
	})
	assert.ErrorIs(t, err, last)
	assert.Equal(t, 3, calls)
}

func TestAttemptClampsToOneAttempt(t *testing.T) {
	calls := 0
	err := attempt(context.Background(), 0, time.Millisecond, func() error {
		calls++
		return errors.New("nope")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestAttemptStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := attempt(ctx, 5, 50*time.Millisecond, func() error {
		calls++
		cancel() // cancel while waiting for the next attempt
		return errors.New("fail")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestAttemptDelayIsFixed(t *testing.T) {
	delay := 20 * time.Millisecond
	start := time.Now()

	_ = attempt(context.Background(), 3, delay, func() error {
		return errors.New("fail")
	})

	elapsed := time.Since(start)
	// two delays between three attempts, no backoff growth
	assert.GreaterOrEqual(t, elapsed, 2*delay)
	assert.Less(t, elapsed, 10*delay)
}
