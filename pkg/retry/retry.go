// Package retry provides exponential-backoff retries for transient faults.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// ErrMaxRetriesExceeded is returned once every attempt has failed.
var ErrMaxRetriesExceeded = errors.New("max retries exceeded")

// Config contains retry configuration
type Config struct {
	// MaxRetries is the number of retry attempts after the initial one
	MaxRetries int
	// InitialInterval is the first backoff interval
	InitialInterval time.Duration
	// MaxInterval caps the backoff interval
	MaxInterval time.Duration
	// Multiplier grows the interval after each attempt
	Multiplier float64
	// JitterFactor adds ±jitter to each interval (0-1)
	JitterFactor float64
}

// DefaultConfig returns the default backoff schedule: 1s, 2s, 4s, capped at 30s.
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:      3,
		InitialInterval: time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
		JitterFactor:    0.1,
	}
}

// PermanentError marks an error that must not be retried.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Permanent wraps err so Do stops retrying immediately
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// Do runs op, retrying transient failures with exponential backoff until it
// succeeds, returns a permanent error, exhausts the schedule, or ctx is done.
func Do(ctx context.Context, cfg *Config, op func(ctx context.Context) error) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval(cfg, attempt)):
			}
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		var permanent *PermanentError
		if errors.As(lastErr, &permanent) {
			return permanent.Err
		}
	}

	return errors.Join(ErrMaxRetriesExceeded, lastErr)
}

func interval(cfg *Config, attempt int) time.Duration {
	backoff := float64(cfg.InitialInterval) * math.Pow(cfg.Multiplier, float64(attempt-1))
	if max := float64(cfg.MaxInterval); backoff > max {
		backoff = max
	}
	if cfg.JitterFactor > 0 {
		jitter := backoff * cfg.JitterFactor
		backoff = backoff - jitter + rand.Float64()*2*jitter
	}
	return time.Duration(backoff)
}
