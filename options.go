package dailyevent

import (
	"log/slog"
	"net/http"
	"time"
)

// Environment selects which Partner API deployment the client talks to.
type Environment string

const (
	// EnvironmentSandbox is the test environment. No real policies are bound.
	EnvironmentSandbox Environment = "sandbox"
	// EnvironmentProduction is the live environment.
	EnvironmentProduction Environment = "production"
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	environment Environment
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
	debug       bool
	logger      *slog.Logger
	userAgent   string
	jitter      func(time.Duration) time.Duration
}

// Option configures the client.
type Option func(*clientConfig)

// WithEnvironment selects the sandbox or production base URL.
// Default: EnvironmentSandbox
func WithEnvironment(env Environment) Option {
	return func(c *clientConfig) {
		c.environment = env
	}
}

// WithBaseURL overrides the environment's base URL, e.g. for a local mock.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-attempt request timeout.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithMaxRetries sets the total number of attempts made for retryable
// failures. Values below 1 disable retries.
// Default: 3
func WithMaxRetries(n int) Option {
	return func(c *clientConfig) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets the base delay of the exponential backoff.
// Default: 1 second
func WithRetryDelay(d time.Duration) Option {
	return func(c *clientConfig) {
		c.retryDelay = d
	}
}

// WithDebug enables logging of every request, response and retry.
// Authorization headers are never logged.
func WithDebug(enabled bool) Option {
	return func(c *clientConfig) {
		c.debug = enabled
	}
}

// WithLogger sets the logger used for debug output. When debug is enabled
// without a logger, a text logger on stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithUserAgent prepends an application identifier to the SDK's
// User-Agent, e.g. "acme-tickets/2.1".
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// withJitter replaces the random backoff jitter.
func withJitter(fn func(time.Duration) time.Duration) Option {
	return func(c *clientConfig) {
		c.jitter = fn
	}
}
