package poll

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dailyevent/partner-go/internal/api"
	"github.com/dailyevent/partner-go/internal/apierrors"
)

const (
	DefaultInitialInterval = 2 * time.Second
	DefaultMaxInterval     = 30 * time.Second
	DefaultMultiplier      = 1.5
	DefaultJitterFactor    = 0.3
)

// Config controls the polling cadence. Zero fields take their defaults.
type Config struct {
	Initial      time.Duration
	Max          time.Duration
	Multiplier   float64
	JitterFactor float64

	// Jitter returns a value in [0, 1). Defaults to math/rand/v2.
	Jitter func() float64
}

func (c Config) withDefaults() Config {
	if c.Initial <= 0 {
		c.Initial = DefaultInitialInterval
	}
	if c.Max <= 0 {
		c.Max = DefaultMaxInterval
	}
	if c.Max < c.Initial {
		c.Max = c.Initial
	}
	if c.Multiplier < 1 {
		c.Multiplier = DefaultMultiplier
	}
	if c.JitterFactor < 0 {
		c.JitterFactor = 0
	}
	if c.Jitter == nil {
		c.Jitter = rand.Float64
	}
	return c
}

// next grows interval by the multiplier, capped at Max.
func (c Config) next(interval time.Duration) time.Duration {
	grown := time.Duration(float64(interval) * c.Multiplier)
	if grown > c.Max {
		return c.Max
	}
	return grown
}

func (c Config) wait(interval time.Duration) time.Duration {
	return interval + time.Duration(c.Jitter()*c.JitterFactor*float64(interval))
}

// Until calls fetch immediately and then on a backoff schedule until done
// reports true for its result or ctx ends. On cancellation the last fetched
// value is returned together with an error wrapping ctx.Err().
func Until[T any](ctx context.Context, cfg Config, fetch func(context.Context) (T, error), done func(T) bool) (T, error) {
	cfg = cfg.withDefaults()
	interval := cfg.Initial

	var last T
	for attempt := 1; ; attempt++ {
		v, err := fetch(ctx)
		switch {
		case err == nil:
			last = v
			if done(v) {
				return v, nil
			}
		case ctx.Err() != nil:
			// The fetch failed because the wait itself ended.
		case !transient(err):
			return last, err
		}

		if err := sleep(ctx, cfg.wait(interval)); err != nil {
			return last, fmt.Errorf("gave up after %d polls: %w", attempt, err)
		}
		interval = cfg.next(interval)
	}
}

func transient(err error) bool {
	kind, ok := apierrors.KindOf(err)
	return ok && api.Retryable(kind)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
