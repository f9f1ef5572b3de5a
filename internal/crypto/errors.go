package crypto

import "errors"

var (
	// ErrInvalidHeader is returned when a signature header cannot be parsed.
	ErrInvalidHeader = errors.New("invalid signature header")

	// ErrMissingTimestamp is returned when the header has no t= component.
	ErrMissingTimestamp = errors.New("signature header has no timestamp")

	// ErrMissingSignature is returned when the header has no v1= component.
	ErrMissingSignature = errors.New("signature header has no v1 signature")
)
