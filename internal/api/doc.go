// Package api implements the HTTP request executor for the DailyEvent
// Partner API. It handles authentication, JSON serialization, error
// classification and automatic retries with exponential backoff.
//
// # Retry Behavior
//
// A request is attempted at most [Config.MaxRetries] times. Only transient
// failures are retried:
//
//   - 429 Too Many Requests, after exactly the server's Retry-After delay
//   - 5xx responses
//   - transport failures and per-attempt timeouts
//
// Other delays follow min(RetryDelay*2^(attempt-1) + jitter, 30s) with up
// to one second of jitter. Validation, authentication, permission,
// not-found and other 4xx responses fail immediately.
//
// # Headers
//
// Caller supplied headers are applied before the client defaults, so
// Authorization, Content-Type and Accept always carry the client's values.
// Idempotency-Key is only sent on POST, PUT and PATCH.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. All per-call state lives on
// the goroutine's stack.
package api
