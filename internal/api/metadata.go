package api

import (
	"net/http"
	"strconv"
	"strings"
)

// RateLimit reports the caller's quota as of the response.
type RateLimit struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
	// Reset is the unix time at which the window resets.
	Reset int64 `json:"reset"`
}

// ResponseMetadata is derived from the headers of a successful response.
type ResponseMetadata struct {
	RequestID  string    `json:"requestId"`
	RateLimit  RateLimit `json:"rateLimit"`
	StatusCode int       `json:"statusCode"`
}

func parseMetadata(resp *http.Response) *ResponseMetadata {
	h := resp.Header
	return &ResponseMetadata{
		RequestID: h.Get("X-Request-Id"),
		RateLimit: RateLimit{
			Limit:     int(headerInt(h, "X-Ratelimit-Limit")),
			Remaining: int(headerInt(h, "X-Ratelimit-Remaining")),
			Reset:     headerInt(h, "X-Ratelimit-Reset"),
		},
		StatusCode: resp.StatusCode,
	}
}

// headerInt parses an integer header, returning 0 when absent or malformed.
func headerInt(h http.Header, key string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(h.Get(key)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
