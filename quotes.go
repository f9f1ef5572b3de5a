package dailyevent

import (
	"context"
	"iter"
	"net/http"

	"github.com/dailyevent/partner-go/internal/api"
)

const quotesPath = "/quotes"

// QuotesService calls the /quotes endpoints.
type QuotesService struct {
	api *api.Client
}

// Create requests a new quote.
func (s *QuotesService) Create(ctx context.Context, params *CreateQuoteParams, opts ...RequestOption) (*Response[Quote], error) {
	if err := requireParams("quote params", params); err != nil {
		return nil, err
	}
	return call[Quote](ctx, s.api, http.MethodPost, quotesPath, nil, params, opts)
}

// Get returns the quote with the given ID.
func (s *QuotesService) Get(ctx context.Context, quoteID string, opts ...RequestOption) (*Response[Quote], error) {
	if err := requireID("quote ID", quoteID); err != nil {
		return nil, err
	}
	return call[Quote](ctx, s.api, http.MethodGet, resourcePath(quotesPath, quoteID), nil, nil, opts)
}

// List returns one page of quotes matching filters, which may be nil.
func (s *QuotesService) List(ctx context.Context, filters *QuoteListFilters, opts ...RequestOption) (*Response[PaginatedResponse[Quote]], error) {
	return call[PaginatedResponse[Quote]](ctx, s.api, http.MethodGet, quotesPath, filters.query(), nil, opts)
}

// ListAll iterates over every quote matching filters, starting at
// filters.Page and requesting further pages as the loop advances.
func (s *QuotesService) ListAll(ctx context.Context, filters *QuoteListFilters, opts ...RequestOption) iter.Seq2[Quote, error] {
	var f QuoteListFilters
	if filters != nil {
		f = *filters
	}
	return paginate(f.Page, func(page int) (*PaginatedResponse[Quote], error) {
		f.Page = page
		resp, err := s.List(ctx, &f, opts...)
		if err != nil {
			return nil, err
		}
		return &resp.Data, nil
	})
}

// GetPricing returns the current premium breakdown of a quote.
func (s *QuotesService) GetPricing(ctx context.Context, quoteID string, opts ...RequestOption) (*Response[QuotePricing], error) {
	if err := requireID("quote ID", quoteID); err != nil {
		return nil, err
	}
	return call[QuotePricing](ctx, s.api, http.MethodGet, resourcePath(quotesPath, quoteID, "pricing"), nil, nil, opts)
}

// Refresh re-prices a quote and extends its expiry.
func (s *QuotesService) Refresh(ctx context.Context, quoteID string, opts ...RequestOption) (*Response[Quote], error) {
	if err := requireID("quote ID", quoteID); err != nil {
		return nil, err
	}
	return call[Quote](ctx, s.api, http.MethodPost, resourcePath(quotesPath, quoteID, "refresh"), nil, nil, opts)
}

// Cancel withdraws a quote. reason is optional.
func (s *QuotesService) Cancel(ctx context.Context, quoteID, reason string, opts ...RequestOption) (*Response[Quote], error) {
	if err := requireID("quote ID", quoteID); err != nil {
		return nil, err
	}
	body := struct {
		Reason string `json:"reason,omitempty"`
	}{reason}
	return call[Quote](ctx, s.api, http.MethodPost, resourcePath(quotesPath, quoteID, "cancel"), nil, body, opts)
}

// ApplyDiscount applies a discount code and returns the re-priced quote.
func (s *QuotesService) ApplyDiscount(ctx context.Context, quoteID, code string, opts ...RequestOption) (*Response[Quote], error) {
	if err := requireID("quote ID", quoteID); err != nil {
		return nil, err
	}
	if err := requireID("discount code", code); err != nil {
		return nil, err
	}
	body := struct {
		Code string `json:"code"`
	}{code}
	return call[Quote](ctx, s.api, http.MethodPost, resourcePath(quotesPath, quoteID, "discounts"), nil, body, opts)
}

// RemoveDiscount removes a previously applied discount code.
func (s *QuotesService) RemoveDiscount(ctx context.Context, quoteID, code string, opts ...RequestOption) (*Response[Quote], error) {
	if err := requireID("quote ID", quoteID); err != nil {
		return nil, err
	}
	if err := requireID("discount code", code); err != nil {
		return nil, err
	}
	return call[Quote](ctx, s.api, http.MethodDelete, resourcePath(quotesPath, quoteID, "discounts", code), nil, nil, opts)
}

// UpdateMetadata replaces the partner metadata attached to a quote.
func (s *QuotesService) UpdateMetadata(ctx context.Context, quoteID string, metadata map[string]string, opts ...RequestOption) (*Response[Quote], error) {
	if err := requireID("quote ID", quoteID); err != nil {
		return nil, err
	}
	body := struct {
		Metadata map[string]string `json:"metadata"`
	}{metadata}
	return call[Quote](ctx, s.api, http.MethodPatch, resourcePath(quotesPath, quoteID), nil, body, opts)
}
