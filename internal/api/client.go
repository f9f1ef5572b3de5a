package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dailyevent/partner-go/internal/apierrors"
)

// Base URLs for the two Partner API environments.
const (
	SandboxBaseURL    = "https://api.sandbox.dailyevent.com/v1"
	ProductionBaseURL = "https://api.dailyevent.com/v1"
)

// Default configuration values.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
)

// maxErrorBody bounds how much of an error response is buffered.
const maxErrorBody = 1 << 20

// validate is a package-level singleton; building a validator is expensive.
var validate = validator.New()

// Config configures the API client.
type Config struct {
	// APIKey is sent as a bearer token on every request.
	APIKey string `validate:"required"`
	// Environment selects the base URL when BaseURL is empty.
	Environment string `validate:"omitempty,oneof=sandbox production"`
	// BaseURL overrides the environment's base URL.
	BaseURL string `validate:"omitempty,url"`
	// HTTPClient is the transport. A new client is created when nil.
	HTTPClient *http.Client `validate:"-"`
	// Timeout is the per-attempt deadline. Zero selects DefaultTimeout.
	Timeout time.Duration `validate:"gte=0"`
	// MaxRetries is the total number of attempts for retryable failures.
	// Zero or less means a single attempt.
	MaxRetries int
	// RetryDelay is the base of the exponential backoff.
	RetryDelay time.Duration `validate:"gte=0"`
	// Jitter overrides the random jitter source. Used by tests.
	Jitter func(max time.Duration) time.Duration `validate:"-"`
	// Debug enables request/response logging through Logger.
	Debug bool
	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger `validate:"-"`
	// UserAgent is sent on every request unless the caller overrides it.
	UserAgent string
}

// Client is the HTTP API client. It holds only immutable configuration and
// is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	timeout    time.Duration
	retry      RetryPolicy
	debug      bool
	logger     *slog.Logger
}

// NewClient creates a new API client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", apierrors.ErrInvalidConfig, err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = EnvironmentURL(cfg.Environment)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		httpClient: cfg.HTTPClient,
		timeout:    cfg.Timeout,
		debug:      cfg.Debug,
		logger:     cfg.Logger,
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout == 0 {
		c.timeout = DefaultTimeout
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	c.retry = DefaultRetryPolicy()
	c.retry.MaxAttempts = cfg.MaxRetries
	c.retry.BaseDelay = cfg.RetryDelay
	if cfg.Jitter != nil {
		c.retry.Jitter = cfg.Jitter
	}

	return c, nil
}

// EnvironmentURL returns the base URL for env; anything other than
// "production" resolves to the sandbox.
func EnvironmentURL(env string) string {
	if env == "production" {
		return ProductionBaseURL
	}
	return SandboxBaseURL
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes req, retrying transient failures according to the client's
// retry policy, and decodes a successful JSON response into out (which may
// be nil). Every failure is one of the apierrors variants, except request
// bodies that cannot be marshalled, which fail before any attempt.
func (c *Client) Do(ctx context.Context, req *Request, out any) (*ResponseMetadata, error) {
	body, err := marshalBody(req.Body)
	if err != nil {
		return nil, err
	}

	policy := c.retry
	if req.Options.NoRetry {
		policy.MaxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		meta, err := c.execute(ctx, req, body, out)
		if err == nil {
			return meta, nil
		}

		delay, retry := policy.Next(attempt, err)
		if !retry || ctx.Err() != nil {
			return nil, err
		}

		c.log(ctx, slog.LevelWarn, "request failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", policy.attempts()),
			slog.Duration("delay", delay),
			slog.Any("error", err))

		if werr := Wait(ctx, delay); werr != nil {
			return nil, &apierrors.NetworkError{
				Base: apierrors.Base{
					Message:   fmt.Sprintf("retry cancelled after attempt %d: %v", attempt, err),
					RequestID: apierrors.RequestIDOf(err),
				},
				Err: werr,
			}
		}
	}
}

// execute performs exactly one HTTP round trip.
func (c *Client) execute(ctx context.Context, req *Request, body []byte, out any) (*ResponseMetadata, error) {
	timeout := c.timeout
	if req.Options.Timeout > 0 {
		timeout = req.Options.Timeout
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u, err := buildURL(c.baseURL, req.Path, req.Query)
	if err != nil {
		return nil, apierrors.NewNetworkError(err)
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, u, bodyReader)
	if err != nil {
		return nil, apierrors.NewNetworkError(err)
	}
	c.setHeaders(httpReq, req)

	c.log(ctx, slog.LevelDebug, fmt.Sprintf("[Client] %s %s", req.Method, u),
		slog.String("body", string(body)))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return nil, apierrors.NewTimeoutError(timeout, err)
		}
		return nil, apierrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log(ctx, slog.LevelDebug, fmt.Sprintf("[Client] Error response from %s", u),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(data)))
		return nil, apierrors.FromResponse(resp.StatusCode, resp.Header, data)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return nil, apierrors.NewTimeoutError(timeout, err)
		}
		return nil, apierrors.NewNetworkError(fmt.Errorf("read response: %w", err))
	}

	c.log(ctx, slog.LevelDebug, fmt.Sprintf("[Client] Response from %s", u),
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(data)))

	meta := parseMetadata(resp)

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, &apierrors.NetworkError{
				Base: apierrors.Base{Message: fmt.Sprintf("decode response: %v", err), RequestID: meta.RequestID},
				Err:  err,
			}
		}
	}

	return meta, nil
}

// setHeaders applies caller headers first and the client defaults last, so
// Authorization, Content-Type and Accept can never be overridden.
func (c *Client) setHeaders(httpReq *http.Request, req *Request) {
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range req.Options.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.Options.IdempotencyKey != "" && isMutating(req.Method) {
		httpReq.Header.Set("Idempotency-Key", req.Options.IdempotencyKey)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
}

func (c *Client) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if !c.debug {
		return
	}
	c.logger.LogAttrs(ctx, level, msg, attrs...)
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return data, nil
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
