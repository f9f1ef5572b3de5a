package dailyevent

import (
	"errors"

	"github.com/dailyevent/partner-go/internal/apierrors"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = apierrors.ErrMissingAPIKey

	// ErrInvalidConfig is returned when a client option is out of range.
	ErrInvalidConfig = apierrors.ErrInvalidConfig

	// ErrMissingArgument is returned before any request is sent when a
	// required identifier or parameter struct is empty.
	ErrMissingArgument = errors.New("required argument is missing")

	// ErrValidation is matched by ValidationError (HTTP 400).
	ErrValidation = apierrors.ErrValidation

	// ErrUnauthorized is matched by AuthError (HTTP 401).
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrForbidden is matched by ForbiddenError (HTTP 403).
	ErrForbidden = apierrors.ErrForbidden

	// ErrNotFound is matched by NotFoundError (HTTP 404).
	ErrNotFound = apierrors.ErrNotFound

	// ErrRateLimited is matched by RateLimitError (HTTP 429).
	ErrRateLimited = apierrors.ErrRateLimited

	// ErrServer is matched by ServerError (HTTP 5xx).
	ErrServer = apierrors.ErrServer

	// ErrNetwork is matched by NetworkError, including timeouts.
	ErrNetwork = apierrors.ErrNetwork

	// ErrAPI is matched by the generic APIError.
	ErrAPI = apierrors.ErrAPI

	// ErrSignatureInvalid is matched by SignatureVerificationError.
	ErrSignatureInvalid = apierrors.ErrSignatureInvalid

	// ErrInvalidPayload is returned when an authenticated webhook body is
	// not a valid event envelope.
	ErrInvalidPayload = apierrors.ErrInvalidPayload
)

// Error is implemented by every failure returned from an API call. The set
// of implementations is closed; switch on Kind to handle each one.
type Error = apierrors.Error

// Kind identifies an Error variant.
type Kind = apierrors.Kind

// Error kinds.
const (
	KindValidation = apierrors.KindValidation
	KindAuth       = apierrors.KindAuth
	KindForbidden  = apierrors.KindForbidden
	KindNotFound   = apierrors.KindNotFound
	KindRateLimit  = apierrors.KindRateLimit
	KindServer     = apierrors.KindServer
	KindNetwork    = apierrors.KindNetwork
	KindAPI        = apierrors.KindAPI
)

// Error variants. Use errors.As to inspect variant-specific fields.
type (
	ValidationError            = apierrors.ValidationError
	FieldError                 = apierrors.FieldError
	AuthError                  = apierrors.AuthError
	ForbiddenError             = apierrors.ForbiddenError
	NotFoundError              = apierrors.NotFoundError
	RateLimitError             = apierrors.RateLimitError
	ServerError                = apierrors.ServerError
	NetworkError               = apierrors.NetworkError
	APIError                   = apierrors.APIError
	SignatureVerificationError = apierrors.SignatureVerificationError
)

// KindOf returns the Kind of err when err is, or wraps, an API failure.
func KindOf(err error) (Kind, bool) {
	return apierrors.KindOf(err)
}

// RequestIDOf returns the server-assigned request ID carried by err, for
// support correlation. It returns "" when none is known.
func RequestIDOf(err error) string {
	return apierrors.RequestIDOf(err)
}
