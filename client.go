package dailyevent

import (
	"log/slog"
	"os"

	"github.com/dailyevent/partner-go/internal/api"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "1.0.0"

// Base URLs for the two environments.
const (
	SandboxBaseURL    = api.SandboxBaseURL
	ProductionBaseURL = api.ProductionBaseURL
)

// Defaults applied by New.
const (
	DefaultTimeout    = api.DefaultTimeout
	DefaultMaxRetries = api.DefaultMaxRetries
	DefaultRetryDelay = api.DefaultRetryDelay
)

// Client is the entry point to the Partner API. It is safe for concurrent
// use and holds no mutable state; create one per API key and share it.
type Client struct {
	apiClient *api.Client

	// Quotes creates and manages insurance quotes.
	Quotes *QuotesService
	// Policies binds quotes into policies and manages them.
	Policies *PoliciesService
	// Webhooks manages webhook endpoints and their deliveries.
	Webhooks *WebhooksService
}

// New creates a new Partner API client with the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		environment: EnvironmentSandbox,
		timeout:     DefaultTimeout,
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := buildAPIClient(apiKey, cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{apiClient: apiClient}
	c.Quotes = &QuotesService{api: apiClient}
	c.Policies = &PoliciesService{api: apiClient}
	c.Webhooks = &WebhooksService{api: apiClient}
	return c, nil
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(apiKey string, cfg *clientConfig) (*api.Client, error) {
	logger := cfg.logger
	if cfg.debug && logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ua := "dailyevent-go/" + Version
	if cfg.userAgent != "" {
		ua = cfg.userAgent + " " + ua
	}

	return api.NewClient(api.Config{
		APIKey:      apiKey,
		Environment: string(cfg.environment),
		BaseURL:     cfg.baseURL,
		HTTPClient:  cfg.httpClient,
		Timeout:     cfg.timeout,
		MaxRetries:  cfg.maxRetries,
		RetryDelay:  cfg.retryDelay,
		Jitter:      cfg.jitter,
		Debug:       cfg.debug,
		Logger:      logger,
		UserAgent:   ua,
	})
}

// BaseURL returns the base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}
