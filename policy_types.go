package dailyevent

import (
	"net/url"
	"time"

	"github.com/dailyevent/partner-go/internal/api"
)

// PolicyStatus is the lifecycle state of a policy.
type PolicyStatus string

const (
	PolicyStatusActive         PolicyStatus = "active"
	PolicyStatusExpired        PolicyStatus = "expired"
	PolicyStatusCancelled      PolicyStatus = "cancelled"
	PolicyStatusClaimed        PolicyStatus = "claimed"
	PolicyStatusPendingPayment PolicyStatus = "pending_payment"
)

// CancellationReason explains why a policy is cancelled.
type CancellationReason string

const (
	CancelEventCancelled     CancellationReason = "event_cancelled"
	CancelDuplicatePolicy    CancellationReason = "duplicate_policy"
	CancelCustomerRequest    CancellationReason = "customer_request"
	CancelNonPayment         CancellationReason = "non_payment"
	CancelUnderwritingReview CancellationReason = "underwriting_review"
	CancelFraud              CancellationReason = "fraud"
	CancelOther              CancellationReason = "other"
)

// PaymentInfo records how the premium was paid.
type PaymentInfo struct {
	PaymentID       string     `json:"paymentId"`
	PaymentMethodID string     `json:"paymentMethodId"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`
	RefundedAt      *time.Time `json:"refundedAt,omitempty"`
	RefundAmount    float64    `json:"refundAmount,omitempty"`
}

// CoverageLimits are the limits of one coverage line.
type CoverageLimits struct {
	Limit      float64 `json:"limit"`
	Deductible float64 `json:"deductible"`
	Included   bool    `json:"included"`
}

// CoverageDetails summarizes the bound coverage.
type CoverageDetails struct {
	CoverageLimit     float64                         `json:"coverageLimit"`
	Deductible        float64                         `json:"deductible"`
	CoverageBreakdown map[CoverageType]CoverageLimits `json:"coverageBreakdown,omitempty"`
}

// PolicyDocument is a downloadable document attached to a policy.
type PolicyDocument struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// Policy is a bound insurance policy.
type Policy struct {
	ID                 string              `json:"id"`
	PolicyNumber       string              `json:"policyNumber"`
	Status             PolicyStatus        `json:"status"`
	QuoteID            string              `json:"quoteId"`
	EventType          EventType           `json:"eventType"`
	EventName          string              `json:"eventName"`
	EventDate          string              `json:"eventDate"`
	EventEndDate       string              `json:"eventEndDate,omitempty"`
	VenueAddress       VenueAddress        `json:"venueAddress"`
	AttendeeCount      int                 `json:"attendeeCount"`
	EventValue         float64             `json:"eventValue"`
	CoverageTypes      []CoverageType      `json:"coverageTypes"`
	AdditionalCoverage *AdditionalCoverage `json:"additionalCoverage,omitempty"`
	Policyholder       PolicyholderInfo    `json:"policyholder"`
	Premium            PremiumBreakdown    `json:"premium"`
	Payment            PaymentInfo         `json:"payment"`
	Coverage           CoverageDetails     `json:"coverage"`
	Documents          []PolicyDocument    `json:"documents,omitempty"`
	PartnerReferenceID string              `json:"partnerReferenceId,omitempty"`
	Metadata           map[string]string   `json:"metadata,omitempty"`
	EffectiveDate      string              `json:"effectiveDate"`
	ExpirationDate     string              `json:"expirationDate"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
	CancelledAt        *time.Time          `json:"cancelledAt,omitempty"`
	CancellationReason CancellationReason  `json:"cancellationReason,omitempty"`
}

// CreatePolicyParams bind an accepted quote into a policy.
type CreatePolicyParams struct {
	QuoteID         string            `json:"quoteId"`
	PaymentMethodID string            `json:"paymentMethodId"`
	AcceptTerms     bool              `json:"acceptTerms"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// CancelPolicyParams are the inputs for Policies.Cancel.
type CancelPolicyParams struct {
	Reason CancellationReason `json:"reason"`
	Notes  string             `json:"notes,omitempty"`
}

// RefundInfo describes the refund issued for a cancellation.
type RefundInfo struct {
	RefundID    string     `json:"refundId"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

// CancellationResult is returned by Policies.Cancel.
type CancellationResult struct {
	PolicyID    string      `json:"policyId"`
	Status      string      `json:"status"`
	CancelledAt time.Time   `json:"cancelledAt"`
	Refund      *RefundInfo `json:"refund,omitempty"`
}

// CertificateParams request a certificate of insurance naming an
// additional insured, typically the venue.
type CertificateParams struct {
	HolderName    string        `json:"holderName,omitempty"`
	HolderAddress *VenueAddress `json:"holderAddress,omitempty"`
	Email         string        `json:"email,omitempty"`
}

// Certificate is an issued certificate of insurance.
type Certificate struct {
	ID         string    `json:"id"`
	PolicyID   string    `json:"policyId"`
	HolderName string    `json:"holderName,omitempty"`
	URL        string    `json:"url"`
	IssuedAt   time.Time `json:"issuedAt"`
}

// EndorsementParams describe a mid-term change to a policy.
type EndorsementParams struct {
	Type          string         `json:"type"`
	Description   string         `json:"description,omitempty"`
	EffectiveDate string         `json:"effectiveDate,omitempty"`
	Changes       map[string]any `json:"changes,omitempty"`
}

// Endorsement is an applied policy change and its premium effect.
type Endorsement struct {
	ID            string         `json:"id"`
	PolicyID      string         `json:"policyId"`
	Type          string         `json:"type"`
	Description   string         `json:"description,omitempty"`
	Changes       map[string]any `json:"changes,omitempty"`
	PremiumChange float64        `json:"premiumChange"`
	EffectiveDate string         `json:"effectiveDate"`
	CreatedAt     time.Time      `json:"createdAt"`
	DocumentID    string         `json:"documentId,omitempty"`
}

// PolicyActivity is one entry of a policy's audit trail.
type PolicyActivity struct {
	ID          string         `json:"id"`
	PolicyID    string         `json:"policyId"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Actor       string         `json:"actor,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// RenewPolicyParams are the inputs for Policies.Renew. Zero fields keep
// the values of the expiring policy.
type RenewPolicyParams struct {
	EventDate       string `json:"eventDate,omitempty"`
	EventEndDate    string `json:"eventEndDate,omitempty"`
	PaymentMethodID string `json:"paymentMethodId,omitempty"`
}

// PolicySortField orders policy listings.
type PolicySortField string

const (
	PolicySortCreatedAt    PolicySortField = "createdAt"
	PolicySortEventDate    PolicySortField = "eventDate"
	PolicySortPolicyNumber PolicySortField = "policyNumber"
)

// PolicyListFilters narrows Policies.List. Zero-valued fields are not sent.
type PolicyListFilters struct {
	Status             []PolicyStatus
	EventType          []EventType
	PolicyNumber       string
	EventDateFrom      string
	EventDateTo        string
	CreatedFrom        string
	CreatedTo          string
	PartnerReferenceID string
	SortBy             PolicySortField
	SortOrder          SortOrder
	Limit              int
	Page               int
	Cursor             string
}

func (f *PolicyListFilters) query() url.Values {
	if f == nil {
		return nil
	}
	return api.NewQuery().
		List("status", api.Strings(f.Status)).
		List("event_type", api.Strings(f.EventType)).
		String("policy_number", f.PolicyNumber).
		String("event_date_from", f.EventDateFrom).
		String("event_date_to", f.EventDateTo).
		String("created_from", f.CreatedFrom).
		String("created_to", f.CreatedTo).
		String("partner_reference_id", f.PartnerReferenceID).
		String("sort_by", string(f.SortBy)).
		String("sort_order", string(f.SortOrder)).
		Int("limit", f.Limit).
		Int("page", f.Page).
		String("cursor", f.Cursor).
		Values()
}
