package dailyevent

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recordedRequest is what the fake API saw.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

// fakeAPI records every request and answers with a canned response.
type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
	headers  map[string]string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.RawQuery,
		Body:   string(body),
		Header: r.Header.Clone(),
	})
	status, respBody := f.status, f.body
	f.mu.Unlock()

	for k, v := range f.headers {
		w.Header().Set(k, v)
	}
	if status == 0 {
		status = http.StatusOK
	}
	if respBody == "" {
		respBody = "{}"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, respBody)
}

func (f *fakeAPI) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request recorded")
	return f.requests[len(f.requests)-1]
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func noJitter(time.Duration) time.Duration { return 0 }

// newTestClient returns a client pointed at handler with fast, deterministic
// retries.
func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base := []Option{
		WithBaseURL(server.URL),
		WithRetryDelay(time.Millisecond),
		withJitter(noJitter),
	}
	client, err := New("pk_test_123", append(base, opts...)...)
	require.NoError(t, err)
	return client
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
