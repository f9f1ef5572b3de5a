// Package apierrors provides the error taxonomy shared by the Partner API client.
//
// Every failed request is described by exactly one variant of the closed
// [Error] interface. Variants are distinguished by [Kind]; callers can also
// match them with errors.Is against the package sentinels or with errors.As
// against the concrete types.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrInvalidConfig is returned when the client configuration fails validation.
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrValidation is matched by ValidationError (HTTP 400).
	ErrValidation = errors.New("request validation failed")

	// ErrUnauthorized is matched by AuthError (HTTP 401).
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrForbidden is matched by ForbiddenError (HTTP 403).
	ErrForbidden = errors.New("access forbidden")

	// ErrNotFound is matched by NotFoundError (HTTP 404).
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited is matched by RateLimitError (HTTP 429).
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServer is matched by ServerError (HTTP 5xx).
	ErrServer = errors.New("server error")

	// ErrNetwork is matched by NetworkError (transport failures and timeouts).
	ErrNetwork = errors.New("network error")

	// ErrAPI is matched by the generic APIError (any other non-2xx status).
	ErrAPI = errors.New("unexpected API error")

	// ErrSignatureInvalid is returned when webhook signature verification fails.
	ErrSignatureInvalid = errors.New("webhook signature verification failed")

	// ErrInvalidPayload is returned when a verified webhook payload is not valid JSON.
	ErrInvalidPayload = errors.New("invalid webhook payload")
)

// Kind identifies the variant of an API failure.
type Kind int

// The eight failure kinds. The zero value is not a valid kind.
const (
	KindValidation Kind = iota + 1
	KindAuth
	KindForbidden
	KindNotFound
	KindRateLimit
	KindServer
	KindNetwork
	KindAPI
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindAuth:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindRateLimit:
		return "rate_limited"
	case KindServer:
		return "server_error"
	case KindNetwork:
		return "network_error"
	case KindAPI:
		return "unknown_error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is implemented by every failure the request executor returns.
// The interface is sealed: only the variants in this package implement it.
type Error interface {
	error
	Kind() Kind
	sealed()
}

// Base holds the fields common to all variants.
type Base struct {
	Message   string
	RequestID string // if returned by server
}

func (b Base) format(label string, status int) string {
	msg := label
	if status > 0 {
		msg = fmt.Sprintf("%s %d", label, status)
	}
	if b.Message != "" {
		msg += ": " + b.Message
	}
	if b.RequestID != "" {
		msg += fmt.Sprintf(" (request_id: %s)", b.RequestID)
	}
	return msg
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidationError is returned for HTTP 400 responses.
type ValidationError struct {
	Base
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	s := e.format("validation error", http.StatusBadRequest)
	if len(e.Fields) > 0 {
		s += fmt.Sprintf(" [%d invalid field(s)]", len(e.Fields))
	}
	return s
}

// Kind implements Error.
func (e *ValidationError) Kind() Kind { return KindValidation }

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) sealed() {}

// AuthError is returned for HTTP 401 responses.
type AuthError struct {
	Base
}

func (e *AuthError) Error() string { return e.format("authentication error", http.StatusUnauthorized) }

// Kind implements Error.
func (e *AuthError) Kind() Kind { return KindAuth }

// Is implements errors.Is for sentinel error matching.
func (e *AuthError) Is(target error) bool { return target == ErrUnauthorized }

func (e *AuthError) sealed() {}

// ForbiddenError is returned for HTTP 403 responses.
type ForbiddenError struct {
	Base
}

func (e *ForbiddenError) Error() string { return e.format("forbidden", http.StatusForbidden) }

// Kind implements Error.
func (e *ForbiddenError) Kind() Kind { return KindForbidden }

// Is implements errors.Is for sentinel error matching.
func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

func (e *ForbiddenError) sealed() {}

// NotFoundError is returned for HTTP 404 responses.
type NotFoundError struct {
	Base
	// ResourceID is set when the server names the missing resource.
	ResourceID string
}

func (e *NotFoundError) Error() string { return e.format("not found", http.StatusNotFound) }

// Kind implements Error.
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// Is implements errors.Is for sentinel error matching.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) sealed() {}

// RateLimitError is returned for HTTP 429 responses.
type RateLimitError struct {
	Base
	// RetryAfter is the server-dictated wait before the next attempt.
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s (retry after %s)", e.format("rate limited", http.StatusTooManyRequests), e.RetryAfter)
}

// Kind implements Error.
func (e *RateLimitError) Kind() Kind { return KindRateLimit }

// Is implements errors.Is for sentinel error matching.
func (e *RateLimitError) Is(target error) bool { return target == ErrRateLimited }

func (e *RateLimitError) sealed() {}

// ServerError is returned for HTTP 5xx responses.
type ServerError struct {
	Base
	StatusCode int
}

func (e *ServerError) Error() string { return e.format("server error", e.StatusCode) }

// Kind implements Error.
func (e *ServerError) Kind() Kind { return KindServer }

// Is implements errors.Is for sentinel error matching.
func (e *ServerError) Is(target error) bool { return target == ErrServer }

func (e *ServerError) sealed() {}

// NetworkError represents a transport-level failure: DNS, refused or reset
// connections, and per-request timeouts.
type NetworkError struct {
	Base
	Err error
}

func (e *NetworkError) Error() string {
	if e.Message != "" {
		return e.format("network error", 0)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Kind implements Error.
func (e *NetworkError) Kind() Kind { return KindNetwork }

// Is implements errors.Is for sentinel error matching.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

func (e *NetworkError) sealed() {}

// APIError is the generic variant for non-2xx statuses that have no
// dedicated variant.
type APIError struct {
	Base
	StatusCode int
	Code       string
	Details    map[string]any
}

func (e *APIError) Error() string { return e.format("API error", e.StatusCode) }

// Kind implements Error.
func (e *APIError) Kind() Kind { return KindAPI }

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool { return target == ErrAPI }

func (e *APIError) sealed() {}

// NewNetworkError wraps a transport failure.
func NewNetworkError(err error) *NetworkError {
	msg := "network request failed"
	if err != nil {
		msg = err.Error()
	}
	return &NetworkError{Base: Base{Message: msg}, Err: err}
}

// NewTimeoutError reports a request that exceeded its per-request timeout.
func NewTimeoutError(timeout time.Duration, err error) *NetworkError {
	return &NetworkError{
		Base: Base{Message: fmt.Sprintf("request timeout after %dms", timeout.Milliseconds())},
		Err:  err,
	}
}

// KindOf returns the kind of err if it is (or wraps) a taxonomy variant.
func KindOf(err error) (Kind, bool) {
	var e Error
	if errors.As(err, &e) {
		return e.Kind(), true
	}
	return 0, false
}

// RequestIDOf returns the server request ID carried by err, if any.
func RequestIDOf(err error) string {
	var e Error
	if !errors.As(err, &e) {
		return ""
	}
	switch v := e.(type) {
	case *ValidationError:
		return v.RequestID
	case *AuthError:
		return v.RequestID
	case *ForbiddenError:
		return v.RequestID
	case *NotFoundError:
		return v.RequestID
	case *RateLimitError:
		return v.RequestID
	case *ServerError:
		return v.RequestID
	case *NetworkError:
		return v.RequestID
	case *APIError:
		return v.RequestID
	}
	return ""
}

// SignatureVerificationError indicates a webhook delivery that failed
// authentication: malformed header, stale timestamp or HMAC mismatch.
type SignatureVerificationError struct {
	Reason    string
	Timestamp int64
}

func (e *SignatureVerificationError) Error() string {
	return fmt.Sprintf("signature verification failed: %s", e.Reason)
}

// Is implements errors.Is for sentinel error matching.
func (e *SignatureVerificationError) Is(target error) bool {
	return target == ErrSignatureInvalid
}
