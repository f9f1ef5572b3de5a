package dailyevent

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicies_Endpoints(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func(*Client) error
		method string
		path   string
		body   string
	}{
		{
			name: "create",
			call: func(c *Client) error {
				_, err := c.Policies.Create(ctx, &CreatePolicyParams{QuoteID: "quote_1", PaymentMethodID: "pm_1", AcceptTerms: true})
				return err
			},
			method: http.MethodPost,
			path:   "/policies",
			body:   `{"quoteId":"quote_1","paymentMethodId":"pm_1","acceptTerms":true}`,
		},
		{
			name:   "get",
			call:   func(c *Client) error { _, err := c.Policies.Get(ctx, "pol_1"); return err },
			method: http.MethodGet,
			path:   "/policies/pol_1",
		},
		{
			name:   "get by number",
			call:   func(c *Client) error { _, err := c.Policies.GetByNumber(ctx, "DEI-2026-000123"); return err },
			method: http.MethodGet,
			path:   "/policies/by-number/DEI-2026-000123",
		},
		{
			name: "cancel",
			call: func(c *Client) error {
				_, err := c.Policies.Cancel(ctx, "pol_1", &CancelPolicyParams{Reason: CancelEventCancelled, Notes: "venue flooded"})
				return err
			},
			method: http.MethodPost,
			path:   "/policies/pol_1/cancel",
			body:   `{"reason":"event_cancelled","notes":"venue flooded"}`,
		},
		{
			name:   "documents",
			call:   func(c *Client) error { _, err := c.Policies.GetDocuments(ctx, "pol_1"); return err },
			method: http.MethodGet,
			path:   "/policies/pol_1/documents",
		},
		{
			name:   "document",
			call:   func(c *Client) error { _, err := c.Policies.GetDocument(ctx, "pol_1", "doc_9"); return err },
			method: http.MethodGet,
			path:   "/policies/pol_1/documents/doc_9",
		},
		{
			name:   "certificate without params",
			call:   func(c *Client) error { _, err := c.Policies.RequestCertificate(ctx, "pol_1", nil); return err },
			method: http.MethodPost,
			path:   "/policies/pol_1/certificates",
		},
		{
			name: "certificate with holder",
			call: func(c *Client) error {
				_, err := c.Policies.RequestCertificate(ctx, "pol_1", &CertificateParams{HolderName: "Grand Hall LLC"})
				return err
			},
			method: http.MethodPost,
			path:   "/policies/pol_1/certificates",
			body:   `{"holderName":"Grand Hall LLC"}`,
		},
		{
			name: "endorsement",
			call: func(c *Client) error {
				_, err := c.Policies.AddEndorsement(ctx, "pol_1", &EndorsementParams{Type: "attendee_change", Changes: map[string]any{"attendeeCount": 150}})
				return err
			},
			method: http.MethodPost,
			path:   "/policies/pol_1/endorsements",
			body:   `{"type":"attendee_change","changes":{"attendeeCount":150}}`,
		},
		{
			name:   "activity",
			call:   func(c *Client) error { _, err := c.Policies.GetActivity(ctx, "pol_1"); return err },
			method: http.MethodGet,
			path:   "/policies/pol_1/activity",
		},
		{
			name: "update metadata",
			call: func(c *Client) error {
				_, err := c.Policies.UpdateMetadata(ctx, "pol_1", map[string]string{"crm": "42"})
				return err
			},
			method: http.MethodPatch,
			path:   "/policies/pol_1",
			body:   `{"metadata":{"crm":"42"}}`,
		},
		{
			name:   "renew",
			call:   func(c *Client) error { _, err := c.Policies.Renew(ctx, "pol_1", &RenewPolicyParams{EventDate: "2027-09-12"}); return err },
			method: http.MethodPost,
			path:   "/policies/pol_1/renew",
			body:   `{"eventDate":"2027-09-12"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			if tt.name == "documents" || tt.name == "activity" {
				api.body = `[]`
			}
			client := newTestClient(t, api)

			require.NoError(t, tt.call(client))

			got := api.last(t)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
			if tt.body == "" {
				assert.Empty(t, got.Body)
			} else {
				assert.JSONEq(t, tt.body, got.Body)
			}
		})
	}
}

func TestPolicies_CancelResult(t *testing.T) {
	api := &fakeAPI{body: `{
		"policyId":"pol_1","status":"cancelled","cancelledAt":"2026-05-01T10:00:00Z",
		"refund":{"refundId":"re_1","amount":99.5,"currency":"USD","status":"pending"}
	}`}
	client := newTestClient(t, api)

	resp, err := client.Policies.Cancel(context.Background(), "pol_1", &CancelPolicyParams{Reason: CancelCustomerRequest})
	require.NoError(t, err)

	assert.Equal(t, "pol_1", resp.Data.PolicyID)
	require.NotNil(t, resp.Data.Refund)
	assert.Equal(t, 99.5, resp.Data.Refund.Amount)
}

func TestPolicies_MissingArguments(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)
	ctx := context.Background()

	_, err := client.Policies.Cancel(ctx, "pol_1", nil)
	assert.ErrorIs(t, err, ErrMissingArgument)

	_, err = client.Policies.GetDocument(ctx, "pol_1", "")
	assert.ErrorIs(t, err, ErrMissingArgument)

	_, err = client.Policies.AddEndorsement(ctx, "", &EndorsementParams{})
	assert.ErrorIs(t, err, ErrMissingArgument)

	assert.Zero(t, api.count())
}

func TestPolicyListFilters_Query(t *testing.T) {
	tests := []struct {
		name    string
		filters *PolicyListFilters
		want    url.Values
	}{
		{"nil", nil, nil},
		{"empty", &PolicyListFilters{}, nil},
		{"status list", &PolicyListFilters{Status: []PolicyStatus{PolicyStatusActive, PolicyStatusCancelled}}, url.Values{"status": {"active,cancelled"}}},
		{"event type", &PolicyListFilters{EventType: []EventType{EventTypeFestival}}, url.Values{"event_type": {"festival"}}},
		{"policy number", &PolicyListFilters{PolicyNumber: "DEI-1"}, url.Values{"policy_number": {"DEI-1"}}},
		{"event date from", &PolicyListFilters{EventDateFrom: "2026-01-01"}, url.Values{"event_date_from": {"2026-01-01"}}},
		{"event date to", &PolicyListFilters{EventDateTo: "2026-02-01"}, url.Values{"event_date_to": {"2026-02-01"}}},
		{"created from", &PolicyListFilters{CreatedFrom: "2026-01-05"}, url.Values{"created_from": {"2026-01-05"}}},
		{"created to", &PolicyListFilters{CreatedTo: "2026-01-06"}, url.Values{"created_to": {"2026-01-06"}}},
		{"partner reference", &PolicyListFilters{PartnerReferenceID: "ref"}, url.Values{"partner_reference_id": {"ref"}}},
		{"sort", &PolicyListFilters{SortBy: PolicySortPolicyNumber, SortOrder: SortAsc}, url.Values{"sort_by": {"policyNumber"}, "sort_order": {"asc"}}},
		{"paging", &PolicyListFilters{Limit: 10, Page: 2, Cursor: "c"}, url.Values{"limit": {"10"}, "page": {"2"}, "cursor": {"c"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.query())
		})
	}
}

func TestPolicies_ListAllStartsAtRequestedPage(t *testing.T) {
	var pages []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		next := page == "3"
		w.Write([]byte(`{"data":[{"id":"pol_` + page + `"}],"pagination":{"hasNextPage":` + map[bool]string{true: "true", false: "false"}[next] + `}}`))
	}))

	var ids []string
	for p, err := range client.Policies.ListAll(context.Background(), &PolicyListFilters{Page: 3}) {
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	assert.Equal(t, []string{"3", "4"}, pages)
	assert.Equal(t, []string{"pol_3", "pol_4"}, ids)
}
