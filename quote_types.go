package dailyevent

import (
	"net/url"
	"time"

	"github.com/dailyevent/partner-go/internal/api"
)

// QuoteStatus is the lifecycle state of a quote.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusExpired   QuoteStatus = "expired"
	QuoteStatusConverted QuoteStatus = "converted"
	QuoteStatusCancelled QuoteStatus = "cancelled"
)

// EventType classifies the insured event.
type EventType string

const (
	EventTypeWedding      EventType = "wedding"
	EventTypeCorporate    EventType = "corporate"
	EventTypeBirthday     EventType = "birthday"
	EventTypeConcert      EventType = "concert"
	EventTypeFestival     EventType = "festival"
	EventTypeSporting     EventType = "sporting"
	EventTypeConference   EventType = "conference"
	EventTypeExhibition   EventType = "exhibition"
	EventTypePrivateParty EventType = "private_party"
	EventTypeCharity      EventType = "charity"
	EventTypeOther        EventType = "other"
)

// CoverageType is a line of coverage that can be added to a quote.
type CoverageType string

const (
	CoverageCancellation   CoverageType = "cancellation"
	CoverageLiability      CoverageType = "liability"
	CoveragePropertyDamage CoverageType = "property_damage"
	CoverageWeather        CoverageType = "weather"
	CoverageVendorNoShow   CoverageType = "vendor_no_show"
	CoverageComprehensive  CoverageType = "comprehensive"
)

// VenueAddress is the postal address of the event venue.
type VenueAddress struct {
	Street1    string `json:"street1"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// AdditionalCoverage holds optional riders.
type AdditionalCoverage struct {
	AlcoholLiability        bool    `json:"alcoholLiability,omitempty"`
	KeyPersonCoverage       bool    `json:"keyPersonCoverage,omitempty"`
	TerrorismCoverage       bool    `json:"terrorismCoverage,omitempty"`
	ExtendedWeatherCoverage bool    `json:"extendedWeatherCoverage,omitempty"`
	EquipmentCoverage       float64 `json:"equipmentCoverage,omitempty"`
}

// PolicyholderInfo identifies the insured party.
type PolicyholderInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName,omitempty"`
}

// PremiumBreakdown itemizes a quoted premium.
type PremiumBreakdown struct {
	BasePremium        float64            `json:"basePremium"`
	AdditionalPremiums map[string]float64 `json:"additionalPremiums,omitempty"`
	Discounts          map[string]float64 `json:"discounts,omitempty"`
	Taxes              float64            `json:"taxes"`
	Fees               float64            `json:"fees"`
	TotalPremium       float64            `json:"totalPremium"`
	Currency           string             `json:"currency"`
}

// Quote is a priced, time-limited offer of coverage for one event.
type Quote struct {
	ID                 string              `json:"id"`
	Status             QuoteStatus         `json:"status"`
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
	PartnerReferenceID string              `json:"partnerReferenceId,omitempty"`
	Metadata           map[string]string   `json:"metadata,omitempty"`
	ExpiresAt          time.Time           `json:"expiresAt"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// CreateQuoteParams are the inputs for Quotes.Create.
type CreateQuoteParams struct {
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
	PartnerReferenceID string              `json:"partnerReferenceId,omitempty"`
	Metadata           map[string]string   `json:"metadata,omitempty"`
}

// QuotePricing is the current price of a quote with each coverage line.
type QuotePricing struct {
	QuoteID   string             `json:"quoteId"`
	Premium   PremiumBreakdown   `json:"premium"`
	Coverages map[string]float64 `json:"coverages,omitempty"`
	ValidTo   time.Time          `json:"validTo"`
}

// QuoteSortField orders quote listings.
type QuoteSortField string

const (
	QuoteSortCreatedAt QuoteSortField = "createdAt"
	QuoteSortEventDate QuoteSortField = "eventDate"
	QuoteSortPremium   QuoteSortField = "premium"
)

// QuoteListFilters narrows Quotes.List. Zero-valued fields are not sent.
type QuoteListFilters struct {
	Status             []QuoteStatus
	EventType          []EventType
	EventDateFrom      string
	EventDateTo        string
	CreatedFrom        string
	CreatedTo          string
	PartnerReferenceID string
	SortBy             QuoteSortField
	SortOrder          SortOrder
	Limit              int
	Page               int
	Cursor             string
}

func (f *QuoteListFilters) query() url.Values {
	if f == nil {
		return nil
	}
	return api.NewQuery().
		List("status", api.Strings(f.Status)).
		List("event_type", api.Strings(f.EventType)).
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
