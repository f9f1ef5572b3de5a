package dailyevent

import (
	"net/url"
	"time"

	"github.com/dailyevent/partner-go/internal/api"
)

// WebhookEventType names an event a webhook can subscribe to.
type WebhookEventType string

const (
	EventQuoteCreated     WebhookEventType = "quote.created"
	EventQuoteUpdated     WebhookEventType = "quote.updated"
	EventQuoteExpired     WebhookEventType = "quote.expired"
	EventPolicyCreated    WebhookEventType = "policy.created"
	EventPolicyActivated  WebhookEventType = "policy.activated"
	EventPolicyCancelled  WebhookEventType = "policy.cancelled"
	EventPolicyExpired    WebhookEventType = "policy.expired"
	EventPolicyRenewed    WebhookEventType = "policy.renewed"
	EventClaimSubmitted   WebhookEventType = "claim.submitted"
	EventClaimApproved    WebhookEventType = "claim.approved"
	EventClaimDenied      WebhookEventType = "claim.denied"
	EventClaimPaid        WebhookEventType = "claim.paid"
	EventPaymentSucceeded WebhookEventType = "payment.succeeded"
	EventPaymentFailed    WebhookEventType = "payment.failed"
	EventPaymentRefunded  WebhookEventType = "payment.refunded"
)

// WebhookEventTypes lists every event type, in documentation order.
var WebhookEventTypes = []WebhookEventType{
	EventQuoteCreated, EventQuoteUpdated, EventQuoteExpired,
	EventPolicyCreated, EventPolicyActivated, EventPolicyCancelled, EventPolicyExpired, EventPolicyRenewed,
	EventClaimSubmitted, EventClaimApproved, EventClaimDenied, EventClaimPaid,
	EventPaymentSucceeded, EventPaymentFailed, EventPaymentRefunded,
}

// Webhook is a registered endpoint that receives signed event deliveries.
// Secret is only populated by Create and RotateSecret.
type Webhook struct {
	ID                 string             `json:"id"`
	URL                string             `json:"url"`
	Events             []WebhookEventType `json:"events"`
	Description        string             `json:"description,omitempty"`
	Secret             string             `json:"secret,omitempty"`
	Active             bool               `json:"active"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	LastDeliveryAt     *time.Time         `json:"lastDeliveryAt,omitempty"`
	LastDeliveryStatus string             `json:"lastDeliveryStatus,omitempty"`
}

// CreateWebhookParams are the inputs for Webhooks.Create.
type CreateWebhookParams struct {
	URL         string             `json:"url"`
	Events      []WebhookEventType `json:"events"`
	Description string             `json:"description,omitempty"`
}

// UpdateWebhookParams are the inputs for Webhooks.Update. Nil fields are
// left unchanged.
type UpdateWebhookParams struct {
	URL         *string            `json:"url,omitempty"`
	Events      []WebhookEventType `json:"events,omitempty"`
	Active      *bool              `json:"active,omitempty"`
	Description *string            `json:"description,omitempty"`
}

// DeliveryStatus is the state of one webhook delivery.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending"
	DeliverySuccess DeliveryStatus = "success"
	DeliveryFailed  DeliveryStatus = "failed"
)

// WebhookDelivery is one attempt to deliver an event to a webhook.
type WebhookDelivery struct {
	ID            string           `json:"id"`
	WebhookID     string           `json:"webhookId"`
	EventID       string           `json:"eventId"`
	EventType     WebhookEventType `json:"eventType"`
	Status        DeliveryStatus   `json:"status"`
	HTTPStatus    int              `json:"httpStatus,omitempty"`
	ResponseBody  string           `json:"responseBody,omitempty"`
	AttemptNumber int              `json:"attemptNumber"`
	NextRetryAt   *time.Time       `json:"nextRetryAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	CompletedAt   *time.Time       `json:"completedAt,omitempty"`
}

// DeliveryListFilters narrows Webhooks.GetDeliveries.
type DeliveryListFilters struct {
	Status    []DeliveryStatus
	EventType []WebhookEventType
	Limit     int
	Page      int
	Cursor    string
}

func (f *DeliveryListFilters) query() url.Values {
	if f == nil {
		return nil
	}
	return api.NewQuery().
		List("status", api.Strings(f.Status)).
		List("event_type", api.Strings(f.EventType)).
		Int("limit", f.Limit).
		Int("page", f.Page).
		String("cursor", f.Cursor).
		Values()
}

// RotateSecretResult carries a webhook's new signing secret. The previous
// secret stays valid until PreviousSecretExpiresAt so receivers can roll over.
type RotateSecretResult struct {
	Secret                  string     `json:"secret"`
	PreviousSecretExpiresAt *time.Time `json:"previousSecretExpiresAt,omitempty"`
}

// WebhookTestResult reports the outcome of a test delivery.
type WebhookTestResult struct {
	Success      bool   `json:"success"`
	DeliveryID   string `json:"deliveryId,omitempty"`
	StatusCode   int    `json:"statusCode,omitempty"`
	ResponseBody string `json:"responseBody,omitempty"`
	DurationMs   int64  `json:"durationMs,omitempty"`
	Error        string `json:"error,omitempty"`
}

// WebhookEvent is the envelope of every webhook delivery.
type WebhookEvent[T any] struct {
	ID         string           `json:"id"`
	Type       WebhookEventType `json:"type"`
	CreatedAt  time.Time        `json:"created_at"`
	APIVersion string           `json:"api_version,omitempty"`
	Livemode   bool             `json:"livemode"`
	Data       T                `json:"data"`
}
