// Package retry implements exponential backoff for operations that are safe
// to repeat. Only idempotent reads should go through it.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

var (
	ErrMaxAttemptsExceeded = errors.New("max attempts exceeded")
	ErrContextCanceled     = errors.New("context canceled during retry")
)

// Config contains retry configuration
type Config struct {
	// MaxAttempts is the total number of attempts including the first (min 1)
	MaxAttempts int
	// InitialInterval is the first backoff interval
	InitialInterval time.Duration
	// MaxInterval caps the backoff interval
	MaxInterval time.Duration
	// Multiplier grows the interval after each attempt
	Multiplier float64
	// Jitter is the random factor (0-1) applied to each interval
	Jitter float64
}

// DefaultConfig returns the default backoff: 3 attempts, 200ms, 400ms
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts:     3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2.0,
		Jitter:          0.1,
	}
}

// Operation is the function to be retried
type Operation func(ctx context.Context) error

// PermanentError marks an error that must not be retried
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so the retrier gives up immediately
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// Do runs op until it succeeds, returns a permanent error, exhausts the
// attempt budget, or the context is canceled. The returned error is the one
// from the last attempt.
func Do(ctx context.Context, cfg *Config, op Operation) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if ctx.Err() != nil {
			if lastErr != nil {
				return lastErr
			}
			return ErrContextCanceled
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		var perm *PermanentError
		if errors.As(err, &perm) {
			return perm.Err
		}

		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(interval(cfg, attempt)):
		}
	}
	return lastErr
}

func interval(cfg *Config, attempt int) time.Duration {
	initial := cfg.InitialInterval
	if initial <= 0 {
		initial = 200 * time.Millisecond
	}
	multiplier := cfg.Multiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}

	d := float64(initial) * math.Pow(multiplier, float64(attempt))
	if cfg.Jitter > 0 {
		j := d * cfg.Jitter
		d += (rand.Float64()*2 - 1) * j
	}
	if cfg.MaxInterval > 0 && d > float64(cfg.MaxInterval) {
		d = float64(cfg.MaxInterval)
	}
	if d < 0 {
		d = float64(initial)
	}
	return time.Duration(d)
}
