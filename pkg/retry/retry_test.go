package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/product-categories/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func TestDo(t *testing.T) {
	fast := retry.ConstantBackoff(time.Millisecond)

	t.Run("FirstAttemptSucceeds", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), retry.Config{MaxAttempts: 3, Backoff: fast},
			func() error {
				calls++
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), retry.Config{MaxAttempts: 3, Backoff: fast},
			func() error {
				calls++
				if calls < 3 {
					return errTemporary
				}
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("AttemptsExhausted", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), retry.Config{MaxAttempts: 2, Backoff: fast},
			func() error {
				calls++
				return errTemporary
			})
		require.Error(t, err)
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 2, calls)
	})

	t.Run("NotRetryable", func(t *testing.T) {
		permanent := errors.New("permanent")
		var calls int
		err := retry.Do(t.Context(), retry.Config{
			MaxAttempts: 5,
			Backoff:     fast,
			ShouldRetry: func(err error) bool { return errors.Is(err, errTemporary) },
		}, func() error {
			calls++
			return permanent
		})
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("ZeroConfigRunsOnce", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), retry.Config{}, func() error {
			calls++
			return errTemporary
		})
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledBeforeStart", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		err := retry.Do(ctx, retry.Config{}, func() error {
			t.Fatal("must not be called")
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("CanceledWhileWaiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		err := retry.Do(ctx, retry.Config{
			MaxAttempts: 5,
			Backoff:     retry.ConstantBackoff(time.Hour),
		}, func() error {
			cancel()
			return errTemporary
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errTemporary)
	})
}

func TestExponentialBackoff(t *testing.T) {
	b := retry.ExponentialBackoff(10 * time.Millisecond)
	for attempt, base := range map[int]time.Duration{
		1: 10 * time.Millisecond,
		2: 20 * time.Millisecond,
		3: 40 * time.Millisecond,
	} {
		d := b(attempt)
		assert.GreaterOrEqual(t, d, base)
		assert.Less(t, d, base+base/2)
	}
}
