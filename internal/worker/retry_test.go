package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_SucceedsOnLaterAttempt(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), 3, func(attempt int) error {
		attempts++
		if attempt == 0 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	boom := errors.New("disk full")
	attempts := 0
	err := withRetry(context.Background(), 3, func(int) error {
		attempts++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, attempts)
}

func TestWithRetry_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := withRetry(ctx, 5, func(int) error {
		attempts++
		cancel()
		return errors.New("transient")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestComputeRetryBackoff_DoublesAndCaps(t *testing.T) {
	assert.Equal(t, time.Minute, computeRetryBackoff(1))
	assert.Equal(t, 2*time.Minute, computeRetryBackoff(2))
	assert.Equal(t, 4*time.Minute, computeRetryBackoff(3))
	assert.Equal(t, 16*time.Minute, computeRetryBackoff(5))
	// Capped at 30 minutes from the sixth retry on
	assert.Equal(t, 30*time.Minute, computeRetryBackoff(6))
	assert.Equal(t, 30*time.Minute, computeRetryBackoff(12))
}
