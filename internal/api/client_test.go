package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dailyevent/partner-go/internal/apierrors"
)

func noJitter(time.Duration) time.Duration { return 0 }

func newTestClient(t *testing.T, url string, mutate func(*Config)) *Client {
	t.Helper()
	cfg := Config{
		APIKey:     "pk_test",
		BaseURL:    url,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
		Jitter:     noJitter,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	if !errors.Is(err, apierrors.ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown environment", Config{APIKey: "k", Environment: "staging"}},
		{"malformed base URL", Config{APIKey: "k", BaseURL: "not a url"}},
		{"negative timeout", Config{APIKey: "k", Timeout: -time.Second}},
		{"negative retry delay", Config{APIKey: "k", RetryDelay: -time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			if !errors.Is(err, apierrors.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNewClient_DefaultValues(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.BaseURL() != SandboxBaseURL {
		t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), SandboxBaseURL)
	}
	if client.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", client.timeout, DefaultTimeout)
	}
	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}
	if client.logger == nil {
		t.Error("logger is nil")
	}
	if client.retry.MaxDelay != DefaultMaxDelay {
		t.Errorf("retry.MaxDelay = %v, want %v", client.retry.MaxDelay, DefaultMaxDelay)
	}
}

func TestNewClient_EnvironmentAndBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"sandbox", Config{APIKey: "k", Environment: "sandbox"}, SandboxBaseURL},
		{"production", Config{APIKey: "k", Environment: "production"}, ProductionBaseURL},
		{"override wins", Config{APIKey: "k", Environment: "production", BaseURL: "http://localhost:8080/v1/"}, "http://localhost:8080/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.cfg)
			if err != nil {
				t.Fatalf("NewClient() error = %v", err)
			}
			if c.BaseURL() != tt.want {
				t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), tt.want)
			}
		})
	}
}

func TestClient_Do_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quotes/quote_123" {
			t.Errorf("path = %s, want /quotes/quote_123", r.URL.Path)
		}
		w.Header().Set("X-Request-Id", "req_1")
		w.Header().Set("X-RateLimit-Limit", "100")
		w.Header().Set("X-RateLimit-Remaining", "99")
		w.Header().Set("X-RateLimit-Reset", "1700000000")
		json.NewEncoder(w).Encode(map[string]string{"id": "quote_123"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	var out struct {
		ID string `json:"id"`
	}
	meta, err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/quotes/quote_123"}, &out)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if out.ID != "quote_123" {
		t.Errorf("id = %q, want quote_123", out.ID)
	}
	want := &ResponseMetadata{
		RequestID:  "req_1",
		RateLimit:  RateLimit{Limit: 100, Remaining: 99, Reset: 1700000000},
		StatusCode: http.StatusOK,
	}
	if *meta != *want {
		t.Errorf("meta = %+v, want %+v", *meta, *want)
	}
}

func TestClient_Do_WithBodyAndQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.URL.Query().Get("expand"); got != "premium" {
			t.Errorf("expand = %q, want premium", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["eventType"] != "wedding" {
			t.Errorf("eventType = %v, want wedding", body["eventType"])
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"quote_new"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	var out map[string]any
	_, err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "quotes",
		Query:  NewQuery().String("expand", "premium").Values(),
		Body:   map[string]string{"eventType": "wedding"},
	}, &out)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if out["id"] != "quote_new" {
		t.Errorf("id = %v, want quote_new", out["id"])
	}
}

func TestClient_Do_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	var out map[string]any
	meta, err := client.Do(context.Background(), &Request{Method: http.MethodDelete, Path: "/webhooks/wh_1"}, &out)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if meta.StatusCode != http.StatusNoContent {
		t.Errorf("StatusCode = %d, want 204", meta.StatusCode)
	}
	if out != nil {
		t.Errorf("out = %v, want nil", out)
	}
}

func TestClient_Do_UnmarshalableBody(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	_, err := client.Do(context.Background(), &Request{Method: http.MethodPost, Path: "/quotes", Body: make(chan int)}, nil)
	if err == nil {
		t.Fatal("expected marshal error")
	}
	if _, ok := apierrors.KindOf(err); ok {
		t.Errorf("marshal failure classified as %T", err)
	}
	if calls.Load() != 0 {
		t.Errorf("server called %d times, want 0", calls.Load())
	}
}

func TestClient_Do_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"id":"quote_123"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	var out struct{ ID string }
	if _, err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/quotes/quote_123"}, &out); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
	if out.ID != "quote_123" {
		t.Errorf("id = %q, want quote_123", out.ID)
	}
}

func TestClient_Do_RetryMatrix(t *testing.T) {
	tests := []struct {
		status    int
		wantCalls int32
		kind      apierrors.Kind
	}{
		{http.StatusBadRequest, 1, apierrors.KindValidation},
		{http.StatusUnauthorized, 1, apierrors.KindAuth},
		{http.StatusForbidden, 1, apierrors.KindForbidden},
		{http.StatusNotFound, 1, apierrors.KindNotFound},
		{http.StatusConflict, 1, apierrors.KindAPI},
		{http.StatusTooManyRequests, 3, apierrors.KindRateLimit},
		{http.StatusInternalServerError, 3, apierrors.KindServer},
		{http.StatusBadGateway, 3, apierrors.KindServer},
		{http.StatusServiceUnavailable, 3, apierrors.KindServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message":"failed"}`))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, nil)

			_, err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/policies"}, nil)
			kind, ok := apierrors.KindOf(err)
			if !ok || kind != tt.kind {
				t.Errorf("kind = %v (%v), want %v", kind, err, tt.kind)
			}
			if calls.Load() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.wantCalls)
			}
		})
	}
}

func TestClient_Do_NetworkErrorRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("hijacking not supported")
			return
		}
		conn, _, _ := hj.Hijack()
		conn.Close()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	_, err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/quotes"}, nil)
	if !errors.Is(err, apierrors.ErrNetwork) {
		t.Errorf("err = %v, want network error", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestClient_Do_NoRetryOption(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	_, err := client.Do(context.Background(), &Request{
		Method:  http.MethodGet,
		Path:    "/quotes",
		Options: RequestOptions{NoRetry: true},
	}, nil)
	if !errors.Is(err, apierrors.ErrServer) {
		t.Errorf("err = %v, want server error", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestClient_Do_MaxRetriesBelowOne(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(c *Config) { c.MaxRetries = 0 })

	client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/quotes"}, nil)
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestClient_Do_Headers(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(c *Config) { c.UserAgent = "dailyevent-go/test" })

	_, err := client.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/quotes",
		Options: RequestOptions{
			Headers: map[string]string{
				"Authorization": "Bearer stolen",
				"Content-Type":  "text/plain",
				"X-Trace":       "abc",
			},
		},
	}, nil)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	checks := map[string]string{
		"Authorization": "Bearer pk_test",
		"Content-Type":  "application/json",
		"Accept":        "application/json",
		"X-Trace":       "abc",
		"User-Agent":    "dailyevent-go/test",
	}
	for k, want := range checks {
		if got.Get(k) != want {
			t.Errorf("%s = %q, want %q", k, got.Get(k), want)
		}
	}
}

func TestClient_Do_UserAgentOverridable(t *testing.T) {
	var ua string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.UserAgent()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(c *Config) { c.UserAgent = "dailyevent-go/test" })

	client.Do(context.Background(), &Request{
		Method:  http.MethodGet,
		Path:    "/quotes",
		Options: RequestOptions{Headers: map[string]string{"User-Agent": "my-app/2.0"}},
	}, nil)
	if ua != "my-app/2.0" {
		t.Errorf("User-Agent = %q, want my-app/2.0", ua)
	}
}

func TestClient_Do_IdempotencyKey(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{http.MethodPost, "idem_1"},
		{http.MethodPut, "idem_1"},
		{http.MethodPatch, "idem_1"},
		{http.MethodGet, ""},
		{http.MethodDelete, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			var got string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Idempotency-Key")
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, nil)
			client.Do(context.Background(), &Request{
				Method:  tt.method,
				Path:    "/policies",
				Options: RequestOptions{IdempotencyKey: "idem_1"},
			}, nil)

			if got != tt.want {
				t.Errorf("Idempotency-Key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_Do_Timeout(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server.URL, func(c *Config) { c.MaxRetries = 2 })

	_, err := client.Do(context.Background(), &Request{
		Method:  http.MethodGet,
		Path:    "/quotes",
		Options: RequestOptions{Timeout: 50 * time.Millisecond},
	}, nil)

	var netErr *apierrors.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
	if netErr.Message != "request timeout after 50ms" {
		t.Errorf("message = %q", netErr.Message)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestClient_Do_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(c *Config) {
		c.MaxRetries = 5
		c.RetryDelay = time.Hour
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Do(ctx, &Request{Method: http.MethodGet, Path: "/quotes"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want wrapped context.DeadlineExceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Do() did not return promptly after cancellation")
	}
}

func TestClient_Do_DecodeFailureIsNetworkError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"id":`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	var out map[string]any
	_, err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/quotes/q"}, &out)
	if !errors.Is(err, apierrors.ErrNetwork) {
		t.Errorf("err = %v, want network error", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestClient_Do_DebugLogging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	quiet := newTestClient(t, server.URL, func(c *Config) { c.Logger = logger })
	quiet.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/quotes"}, nil)
	if buf.Len() != 0 {
		t.Errorf("logged without debug: %s", buf.String())
	}

	loud := newTestClient(t, server.URL, func(c *Config) {
		c.Logger = logger
		c.Debug = true
	})
	loud.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/quotes"}, nil)
	if !strings.Contains(buf.String(), "[Client] GET "+server.URL+"/quotes") {
		t.Errorf("missing request log line: %s", buf.String())
	}
	if strings.Contains(buf.String(), "pk_test") {
		t.Error("API key leaked into logs")
	}
}

func TestClient_Do_Concurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", r.URL.Query().Get("n"))
		w.Write([]byte(`{"n":"` + r.URL.Query().Get("n") + `"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := string(rune('a' + i))
			var out struct{ N string }
			meta, err := client.Do(context.Background(), &Request{
				Method: http.MethodGet,
				Path:   "/quotes",
				Query:  NewQuery().String("n", n).Values(),
			}, &out)
			if err != nil {
				t.Errorf("Do() error = %v", err)
				return
			}
			if out.N != n || meta.RequestID != n {
				t.Errorf("got %q/%q, want %q", out.N, meta.RequestID, n)
			}
		}()
	}
	wg.Wait()
}

func ExampleNewClient() {
	client, err := NewClient(Config{
		APIKey:      "pk_test_123",
		Environment: "sandbox",
	})
	if err != nil {
		panic(err)
	}
	_ = client
}
