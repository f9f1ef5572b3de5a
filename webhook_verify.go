package dailyevent

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dailyevent/partner-go/internal/crypto"
)

// SignatureHeader is the request header carrying a delivery's signature.
const SignatureHeader = crypto.SignatureHeader

// DefaultWebhookTolerance is the accepted clock skew between signing and
// verification.
const DefaultWebhookTolerance = crypto.DefaultTolerance

// SignatureVerificationResult is the outcome of VerifyWebhookSignature.
// Error holds a reason when Valid is false.
type SignatureVerificationResult = crypto.Result

// verifyConfig holds configuration for signature verification.
type verifyConfig struct {
	tolerance time.Duration
	now       func() time.Time
}

// VerifyOption configures webhook signature verification.
type VerifyOption func(*verifyConfig)

// WithTolerance sets the maximum age (or clock skew) of a signature.
// Default: 5 minutes
func WithTolerance(d time.Duration) VerifyOption {
	return func(c *verifyConfig) {
		c.tolerance = d
	}
}

// WithClock sets the time source used for the tolerance check. A nil clock
// is ignored.
func WithClock(now func() time.Time) VerifyOption {
	return func(c *verifyConfig) {
		if now != nil {
			c.now = now
		}
	}
}

func newVerifyConfig(opts []VerifyOption) *verifyConfig {
	cfg := &verifyConfig{
		tolerance: DefaultWebhookTolerance,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// VerifyWebhookSignature checks that header is a valid signature of payload
// under secret, made within the tolerance window. payload must be the raw
// request body, byte for byte. Comparison is constant-time.
func VerifyWebhookSignature(payload []byte, header, secret string, opts ...VerifyOption) SignatureVerificationResult {
	cfg := newVerifyConfig(opts)
	return crypto.Verify(payload, header, secret, cfg.tolerance, cfg.now())
}

// ConstructWebhookEvent authenticates payload and decodes it into a
// WebhookEvent. It returns a *SignatureVerificationError when the signature
// is not valid and an error matching ErrInvalidPayload when the body is not
// a well-formed event envelope. No event is returned on any failure.
func ConstructWebhookEvent[T any](payload []byte, header, secret string, opts ...VerifyOption) (*WebhookEvent[T], error) {
	result := VerifyWebhookSignature(payload, header, secret, opts...)
	if !result.Valid {
		return nil, &SignatureVerificationError{Reason: result.Error, Timestamp: result.Timestamp}
	}

	var event WebhookEvent[T]
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if event.ID == "" || event.Type == "" {
		return nil, fmt.Errorf("%w: missing id or type", ErrInvalidPayload)
	}
	return &event, nil
}

// SignWebhookPayload returns the signature header the Partner API would
// send for payload at time t. It is intended for tests and local tooling.
func SignWebhookPayload(payload []byte, secret string, t time.Time) string {
	return crypto.SignHeader(secret, t.Unix(), payload)
}
