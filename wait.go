package dailyevent

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dailyevent/partner-go/internal/poll"
)

const defaultWaitTimeout = 2 * time.Minute

// waitConfig holds configuration for status waiting.
type waitConfig struct {
	timeout time.Duration
	poll    poll.Config
}

// WaitOption configures WaitForStatus.
type WaitOption func(*waitConfig)

// WithWaitTimeout bounds the whole wait.
// Default: 2 minutes
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

// WithPollInterval sets the first polling interval. Later intervals grow
// from it up to 30 seconds.
// Default: 2 seconds
func WithPollInterval(interval time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.poll.Initial = interval
	}
}

func newWaitConfig(opts []WaitOption) *waitConfig {
	cfg := &waitConfig{timeout: defaultWaitTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// waitFor polls get until the returned record's status is one of want.
func waitFor[T any, S comparable](ctx context.Context, what, id string, want []S, status func(T) S,
	get func(context.Context) (*Response[T], error), opts []WaitOption) (*Response[T], error) {
	if err := requireID(what+" ID", id); err != nil {
		return nil, err
	}
	if len(want) == 0 {
		return nil, &missingArgumentError{what: what + " status"}
	}

	cfg := newWaitConfig(opts)
	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	resp, err := poll.Until(ctx, cfg.poll, get, func(r *Response[T]) bool {
		return slices.Contains(want, status(r.Data))
	})
	if err != nil {
		return resp, fmt.Errorf("wait for %s %s: %w", what, id, err)
	}
	return resp, nil
}

// WaitForStatus polls a quote until its status is one of want. On timeout
// the last fetched quote is returned with an error wrapping
// context.DeadlineExceeded.
func (s *QuotesService) WaitForStatus(ctx context.Context, quoteID string, want []QuoteStatus, opts ...WaitOption) (*Response[Quote], error) {
	return waitFor(ctx, "quote", quoteID, want,
		func(q Quote) QuoteStatus { return q.Status },
		func(ctx context.Context) (*Response[Quote], error) { return s.Get(ctx, quoteID) },
		opts)
}

// WaitForStatus polls a policy until its status is one of want, for
// example until a pending_payment policy becomes active.
func (s *PoliciesService) WaitForStatus(ctx context.Context, policyID string, want []PolicyStatus, opts ...WaitOption) (*Response[Policy], error) {
	return waitFor(ctx, "policy", policyID, want,
		func(p Policy) PolicyStatus { return p.Status },
		func(ctx context.Context) (*Response[Policy], error) { return s.Get(ctx, policyID) },
		opts)
}
