package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(maxRetries int) *Config {
	return &Config{
		MaxRetries:      maxRetries,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2.0,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientErrors(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(5), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsSchedule(t *testing.T) {
	transient := errors.New("still down")
	calls := 0
	err := Do(context.Background(), fastConfig(2), func(ctx context.Context) error {
		calls++
		return transient
	})

	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 3, calls, "initial attempt plus two retries")
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	boom := errors.New("bad request")
	calls := 0
	err := Do(context.Background(), fastConfig(5), func(ctx context.Context) error {
		calls++
		return Permanent(boom)
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDo_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, fastConfig(5), func(ctx context.Context) error {
		return errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
}
