package dailyevent

import (
	"time"

	"github.com/google/uuid"

	"github.com/dailyevent/partner-go/internal/api"
)

// RequestOption configures a single API call.
type RequestOption func(*api.RequestOptions)

// WithHeader adds a header to the request. Authorization, Content-Type and
// Accept are reserved and cannot be overridden.
func WithHeader(key, value string) RequestOption {
	return func(o *api.RequestOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[key] = value
	}
}

// WithRequestTimeout overrides the client timeout for each attempt of this call.
func WithRequestTimeout(d time.Duration) RequestOption {
	return func(o *api.RequestOptions) {
		o.Timeout = d
	}
}

// WithIdempotencyKey sets the Idempotency-Key header so the server can
// deduplicate retried writes. It is ignored on GET and DELETE.
func WithIdempotencyKey(key string) RequestOption {
	return func(o *api.RequestOptions) {
		o.IdempotencyKey = key
	}
}

// WithNoRetry makes the call fail on its first error.
func WithNoRetry() RequestOption {
	return func(o *api.RequestOptions) {
		o.NoRetry = true
	}
}

// NewIdempotencyKey returns a random key suitable for WithIdempotencyKey.
func NewIdempotencyKey() string {
	return uuid.NewString()
}

func applyRequestOptions(opts []RequestOption) api.RequestOptions {
	var o api.RequestOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
