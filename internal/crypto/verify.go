package crypto

import (
	"crypto/hmac"
	"encoding/hex"
	"time"
)

// Result is the outcome of a signature verification.
type Result struct {
	Valid bool `json:"valid"`
	// Timestamp is the signed unix timestamp, zero when the header was unparseable.
	Timestamp int64 `json:"timestamp,omitempty"`
	// Error describes why verification failed.
	Error string `json:"error,omitempty"`
}

// Verify checks header against payload and secret as of now. A tolerance
// of zero or less selects DefaultTolerance.
//
// Verify is a pure function: identical inputs always give identical results.
func Verify(payload []byte, header, secret string, tolerance time.Duration, now time.Time) Result {
	if secret == "" {
		return Result{Error: ReasonMissingSecret}
	}

	h, err := ParseHeader(header)
	if err != nil {
		return Result{Error: ReasonInvalidFormat}
	}

	if !withinTolerance(h.Timestamp, now, tolerance) {
		return Result{Timestamp: h.Timestamp, Error: ReasonOutsideTolerance}
	}

	expected := ComputeMAC(secret, h.Timestamp, payload)

	// Every candidate is compared so timing does not reveal which one matched.
	valid := false
	for _, sig := range h.Signatures {
		received, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, received) {
			valid = true
		}
	}

	if !valid {
		return Result{Timestamp: h.Timestamp, Error: ReasonMismatch}
	}
	return Result{Valid: true, Timestamp: h.Timestamp}
}

func withinTolerance(timestamp int64, now time.Time, tolerance time.Duration) bool {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	// Compare in whole seconds; multiplying back into a Duration can overflow
	// for absurd timestamps.
	diff := now.Unix() - timestamp
	if diff < 0 {
		diff = -diff
	}
	return diff <= int64(tolerance/time.Second)
}
