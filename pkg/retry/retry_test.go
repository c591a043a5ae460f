package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")
var errPermanent = errors.New("permanent")

func instantBackoff(int) time.Duration { return time.Nanosecond }

func TestDoWithResult(t *testing.T) {
	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		calls := 0
		cfg := retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     instantBackoff,
		}

		v, err := retry.DoWithResult(t.Context(), cfg, func() (string, error) {
			calls++
			if calls < 3 {
				return "", errTemporary
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		calls := 0
		cfg := retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     instantBackoff,
		}

		_, err := retry.DoWithResult(t.Context(), cfg, func() (string, error) {
			calls++
			return "", errTemporary
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 3, calls)
	})

	t.Run("NonRetryableStopsImmediately", func(t *testing.T) {
		calls := 0
		cfg := retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     instantBackoff,
			ShouldRetry: func(err error) bool {
				return !errors.Is(err, errPermanent)
			},
		}

		_, err := retry.DoWithResult(t.Context(), cfg, func() (string, error) {
			calls++
			return "", errPermanent
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errPermanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		calls := 0
		_, err := retry.DoWithResult(ctx, retry.RetryConfig{}, func() (string, error) {
			calls++
			return "", nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})

	t.Run("CancelBetweenAttempts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())

		cfg := retry.RetryConfig{
			MaxAttempts: 5,
			Backoff: func(int) time.Duration {
				return time.Minute
			},
		}

		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		_, err := retry.DoWithResult(ctx, cfg, func() (string, error) {
			return "", errTemporary
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errTemporary)
	})
}

func TestDo(t *testing.T) {
	t.Run("FirstAttemptSucceeds", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), retry.RetryConfig{}, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
}
