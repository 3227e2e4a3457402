package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"time"
)

// Config holds retry configuration.
type Config struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseBackoff: 250 * time.Millisecond,
		MaxBackoff:  2 * time.Second,
	}
}

// StatusError is an HTTP response with an unexpected status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func (e *StatusError) StatusCode() int {
	return e.Code
}

// Do runs fn until it succeeds, returns a non-retryable error or the
// attempts run out. Backoff grows exponentially with jitter.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff(cfg.BaseBackoff, cfg.MaxBackoff, attempt-1)):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

// IsRetryable reports whether err is a transient transport failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base * time.Duration(1<<uint(attempt))
	if d > max {
		d = max
	}
	jitter := 0.5 + rand.Float64()*0.5
	return time.Duration(float64(d) * jitter)
}
