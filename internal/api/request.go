package api

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Request describes one logical API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is marshalled to JSON. Nil sends no body.
	Body    any
	Options RequestOptions
}

// RequestOptions holds per-call overrides.
type RequestOptions struct {
	// Headers are added to the request. Authorization, Content-Type and
	// Accept are always set by the client and cannot be overridden.
	Headers map[string]string
	// Timeout overrides the client's per-attempt timeout when positive.
	Timeout time.Duration
	// IdempotencyKey is sent as Idempotency-Key on POST, PUT and PATCH.
	IdempotencyKey string
	// NoRetry limits the call to a single attempt.
	NoRetry bool
}

// buildURL joins baseURL and path and appends the encoded query.
func buildURL(baseURL, path string, query url.Values) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(baseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}
	if len(query) > 0 {
		q := u.Query()
		for key, values := range query {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
