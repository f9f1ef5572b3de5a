package api

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/dailyevent/partner-go/internal/apierrors"
)

// Backoff bounds.
const (
	DefaultMaxDelay  = 30 * time.Second
	DefaultMaxJitter = time.Second
)

// RetryPolicy decides whether and when a failed attempt is retried. It holds
// no per-call state, so one value may be shared across goroutines.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int
	// BaseDelay is the backoff delay before the second attempt.
	BaseDelay time.Duration
	// MaxDelay caps every computed backoff delay.
	MaxDelay time.Duration
	// MaxJitter bounds the random delay added to each backoff.
	MaxJitter time.Duration
	// Jitter returns a random duration in [0, max). Defaults to a uniform
	// source when nil.
	Jitter func(max time.Duration) time.Duration
}

// DefaultRetryPolicy returns the default policy: three attempts starting at
// one second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxRetries,
		BaseDelay:   DefaultRetryDelay,
		MaxDelay:    DefaultMaxDelay,
		MaxJitter:   DefaultMaxJitter,
	}
}

// Next reports whether a request that failed with err on the given attempt
// (1-based) should be tried again, and how long to wait first.
func (p RetryPolicy) Next(attempt int, err error) (time.Duration, bool) {
	if attempt >= p.attempts() {
		return 0, false
	}

	var apiErr apierrors.Error
	if !errors.As(err, &apiErr) || !Retryable(apiErr.Kind()) {
		return 0, false
	}

	var rl *apierrors.RateLimitError
	if errors.As(err, &rl) {
		return rl.RetryAfter, true
	}
	return p.Delay(attempt), true
}

// Delay returns the exponential backoff before attempt+1:
// min(BaseDelay*2^(attempt-1) + jitter, MaxDelay).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}

	delay := p.BaseDelay
	for i := 1; i < attempt && delay < maxDelay; i++ {
		delay *= 2
	}
	delay += p.jitter()

	if delay > maxDelay || delay < 0 {
		return maxDelay
	}
	return delay
}

func (p RetryPolicy) attempts() int {
	return max(p.MaxAttempts, 1)
}

func (p RetryPolicy) jitter() time.Duration {
	if p.Jitter != nil {
		return p.Jitter(p.MaxJitter)
	}
	if p.MaxJitter <= 0 {
		return 0
	}
	return rand.N(p.MaxJitter)
}

// Retryable reports whether failures of kind k are transient.
func Retryable(k apierrors.Kind) bool {
	switch k {
	case apierrors.KindRateLimit, apierrors.KindServer, apierrors.KindNetwork:
		return true
	case apierrors.KindValidation, apierrors.KindAuth, apierrors.KindForbidden,
		apierrors.KindNotFound, apierrors.KindAPI:
		return false
	default:
		return false
	}
}

// Wait blocks for d or until ctx is done.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
