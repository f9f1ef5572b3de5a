package dailyevent

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dailyevent/partner-go/internal/api"
)

const webhooksPath = "/webhooks"

// WebhooksService calls the /webhooks endpoints and verifies deliveries.
type WebhooksService struct {
	api *api.Client
}

// Create registers a webhook endpoint. The returned Webhook carries the
// signing secret; store it, as it is not returned again.
func (s *WebhooksService) Create(ctx context.Context, params *CreateWebhookParams, opts ...RequestOption) (*Response[Webhook], error) {
	if err := requireParams("webhook params", params); err != nil {
		return nil, err
	}
	return call[Webhook](ctx, s.api, http.MethodPost, webhooksPath, nil, params, opts)
}

// Get returns the webhook with the given ID.
func (s *WebhooksService) Get(ctx context.Context, webhookID string, opts ...RequestOption) (*Response[Webhook], error) {
	if err := requireID("webhook ID", webhookID); err != nil {
		return nil, err
	}
	return call[Webhook](ctx, s.api, http.MethodGet, resourcePath(webhooksPath, webhookID), nil, nil, opts)
}

// List returns every webhook registered for the API key.
func (s *WebhooksService) List(ctx context.Context, opts ...RequestOption) (*Response[[]Webhook], error) {
	return call[[]Webhook](ctx, s.api, http.MethodGet, webhooksPath, nil, nil, opts)
}

// Update changes a webhook's URL, events, description or active flag.
func (s *WebhooksService) Update(ctx context.Context, webhookID string, params *UpdateWebhookParams, opts ...RequestOption) (*Response[Webhook], error) {
	if err := requireID("webhook ID", webhookID); err != nil {
		return nil, err
	}
	if err := requireParams("webhook params", params); err != nil {
		return nil, err
	}
	return call[Webhook](ctx, s.api, http.MethodPatch, resourcePath(webhooksPath, webhookID), nil, params, opts)
}

// Delete removes a webhook. Pending deliveries are discarded.
func (s *WebhooksService) Delete(ctx context.Context, webhookID string, opts ...RequestOption) (*ResponseMetadata, error) {
	if err := requireID("webhook ID", webhookID); err != nil {
		return nil, err
	}
	resp, err := call[struct{}](ctx, s.api, http.MethodDelete, resourcePath(webhooksPath, webhookID), nil, nil, opts)
	if err != nil {
		return nil, err
	}
	return &resp.Metadata, nil
}

// RotateSecret issues a new signing secret for a webhook.
func (s *WebhooksService) RotateSecret(ctx context.Context, webhookID string, opts ...RequestOption) (*Response[RotateSecretResult], error) {
	if err := requireID("webhook ID", webhookID); err != nil {
		return nil, err
	}
	return call[RotateSecretResult](ctx, s.api, http.MethodPost, resourcePath(webhooksPath, webhookID, "rotate-secret"), nil, nil, opts)
}

// GetDeliveries returns one page of a webhook's delivery history.
func (s *WebhooksService) GetDeliveries(ctx context.Context, webhookID string, filters *DeliveryListFilters, opts ...RequestOption) (*Response[PaginatedResponse[WebhookDelivery]], error) {
	if err := requireID("webhook ID", webhookID); err != nil {
		return nil, err
	}
	return call[PaginatedResponse[WebhookDelivery]](ctx, s.api, http.MethodGet, resourcePath(webhooksPath, webhookID, "deliveries"), filters.query(), nil, opts)
}

// RetryDelivery schedules an immediate redelivery of a failed delivery.
func (s *WebhooksService) RetryDelivery(ctx context.Context, webhookID, deliveryID string, opts ...RequestOption) (*Response[WebhookDelivery], error) {
	if err := requireID("webhook ID", webhookID); err != nil {
		return nil, err
	}
	if err := requireID("delivery ID", deliveryID); err != nil {
		return nil, err
	}
	return call[WebhookDelivery](ctx, s.api, http.MethodPost, resourcePath(webhooksPath, webhookID, "deliveries", deliveryID, "retry"), nil, nil, opts)
}

// Test sends a synthetic event to the webhook. An empty eventType lets the
// server choose.
func (s *WebhooksService) Test(ctx context.Context, webhookID string, eventType WebhookEventType, opts ...RequestOption) (*Response[WebhookTestResult], error) {
	if err := requireID("webhook ID", webhookID); err != nil {
		return nil, err
	}
	body := struct {
		EventType WebhookEventType `json:"eventType,omitempty"`
	}{eventType}
	return call[WebhookTestResult](ctx, s.api, http.MethodPost, resourcePath(webhooksPath, webhookID, "test"), nil, body, opts)
}

// Verify checks the signature of a delivery. See VerifyWebhookSignature.
func (s *WebhooksService) Verify(payload []byte, header, secret string, opts ...VerifyOption) SignatureVerificationResult {
	return VerifyWebhookSignature(payload, header, secret, opts...)
}

// ConstructEvent authenticates a delivery and decodes its envelope, leaving
// Data undecoded. Use ConstructWebhookEvent to decode Data into a type.
func (s *WebhooksService) ConstructEvent(payload []byte, header, secret string, opts ...VerifyOption) (*WebhookEvent[json.RawMessage], error) {
	return ConstructWebhookEvent[json.RawMessage](payload, header, secret, opts...)
}
