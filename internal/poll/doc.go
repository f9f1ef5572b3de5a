// Package poll re-reads a remote resource until it reaches a wanted state.
//
// # Backoff
//
// Polling starts at [DefaultInitialInterval] and grows the interval by
// [DefaultMultiplier] after every poll that does not satisfy the condition,
// up to [DefaultMaxInterval]. Each wait adds up to [DefaultJitterFactor] of
// the interval as jitter so concurrent waiters spread out.
//
// # Errors
//
// A fetch failure whose kind is retryable (network, server, rate limit) is
// treated like an unsatisfied poll. Any other failure ends the wait and is
// returned unchanged.
package poll
