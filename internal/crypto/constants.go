package crypto

import "time"

const (
	// SignatureHeader is the HTTP header carrying the webhook signature.
	SignatureHeader = "X-DailyEvent-Signature"

	// SchemeV1 is the signature scheme label for HMAC-SHA256 signatures.
	SchemeV1 = "v1"

	// DefaultTolerance is the maximum allowed distance between the signed
	// timestamp and the verifier's clock.
	DefaultTolerance = 300 * time.Second
)

// Failure reasons reported in Result.Error.
const (
	ReasonMissingSecret    = "Missing webhook secret"
	ReasonInvalidFormat    = "Invalid signature format"
	ReasonOutsideTolerance = "Timestamp outside tolerance window"
	ReasonMismatch         = "Signature mismatch"
)
