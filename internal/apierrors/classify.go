package apierrors

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultRetryAfter is used when a 429 response carries no usable Retry-After header.
const DefaultRetryAfter = 60 * time.Second

// maxRetryAfterSeconds is the largest delta-seconds value that fits in a
// time.Duration.
const maxRetryAfterSeconds = math.MaxInt64 / int64(time.Second)

// errorBody is the JSON error envelope returned by the Partner API.
type errorBody struct {
	Error            string
	Message          string
	Code             string
	RequestID        string
	Details          map[string]any
	ValidationErrors []FieldError
}

// decodeErrorBody extracts the envelope fields one at a time so that a field
// of an unexpected type is dropped without losing the others. Only a body
// that is not JSON at all falls back to the status text.
func decodeErrorBody(status int, body []byte) errorBody {
	if !json.Valid(body) {
		return errorBody{Message: http.StatusText(status)}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return errorBody{}
	}

	var eb errorBody
	decodeField(fields, "error", &eb.Error)
	decodeField(fields, "message", &eb.Message)
	decodeField(fields, "code", &eb.Code)
	decodeField(fields, "requestId", &eb.RequestID)
	decodeField(fields, "details", &eb.Details)
	decodeField(fields, "validationErrors", &eb.ValidationErrors)
	return eb
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

// FromResponse classifies a non-2xx response into exactly one variant.
// The body is the raw response body; when it is not JSON the status text
// becomes the message.
func FromResponse(status int, header http.Header, body []byte) Error {
	eb := decodeErrorBody(status, body)

	base := Base{
		Message:   eb.message(),
		RequestID: header.Get("X-Request-Id"),
	}
	if base.RequestID == "" {
		base.RequestID = eb.RequestID
	}

	switch {
	case status == http.StatusBadRequest:
		return &ValidationError{Base: base, Fields: eb.fields()}
	case status == http.StatusUnauthorized:
		return &AuthError{Base: base}
	case status == http.StatusForbidden:
		return &ForbiddenError{Base: base}
	case status == http.StatusNotFound:
		return &NotFoundError{Base: base, ResourceID: eb.resourceID()}
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Base: base, RetryAfter: ParseRetryAfter(header.Get("Retry-After"), time.Now())}
	case status >= 500:
		return &ServerError{Base: base, StatusCode: status}
	default:
		return &APIError{Base: base, StatusCode: status, Code: KindAPI.String(), Details: eb.Details}
	}
}

func (eb errorBody) message() string {
	switch {
	case eb.Message != "":
		return eb.Message
	case eb.Error != "":
		return eb.Error
	}
	return "Unknown error"
}

func (eb errorBody) fields() []FieldError {
	if len(eb.ValidationErrors) > 0 {
		return eb.ValidationErrors
	}
	raw, ok := eb.Details["validationErrors"]
	if !ok {
		return nil
	}
	// Details is untyped; round-trip through JSON to recover the field shape.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var fields []FieldError
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	return fields
}

func (eb errorBody) resourceID() string {
	for _, key := range []string{"resourceId", "resource"} {
		if s, ok := eb.Details[key].(string); ok {
			return s
		}
	}
	return ""
}

// ParseRetryAfter converts a Retry-After header into a wait duration.
// Both delta-seconds and HTTP-date forms are accepted; anything missing,
// negative, too large for a time.Duration or unparseable yields
// DefaultRetryAfter.
func ParseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultRetryAfter
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		if secs < 0 || secs > maxRetryAfterSeconds {
			return DefaultRetryAfter
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(value); err == nil {
		if d := t.Sub(now); d > 0 {
			return d.Truncate(time.Second)
		}
		return 0
	}
	return DefaultRetryAfter
}
