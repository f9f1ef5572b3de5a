package dailyevent

import (
	"context"
	"iter"
	"net/http"

	"github.com/dailyevent/partner-go/internal/api"
)

const policiesPath = "/policies"

// PoliciesService calls the /policies endpoints.
type PoliciesService struct {
	api *api.Client
}

// Create binds a quote into a policy. Pass WithIdempotencyKey so a retried
// call cannot bind twice.
func (s *PoliciesService) Create(ctx context.Context, params *CreatePolicyParams, opts ...RequestOption) (*Response[Policy], error) {
	if err := requireParams("policy params", params); err != nil {
		return nil, err
	}
	return call[Policy](ctx, s.api, http.MethodPost, policiesPath, nil, params, opts)
}

// Get returns the policy with the given ID.
func (s *PoliciesService) Get(ctx context.Context, policyID string, opts ...RequestOption) (*Response[Policy], error) {
	if err := requireID("policy ID", policyID); err != nil {
		return nil, err
	}
	return call[Policy](ctx, s.api, http.MethodGet, resourcePath(policiesPath, policyID), nil, nil, opts)
}

// GetByNumber returns the policy with the given human-readable number.
func (s *PoliciesService) GetByNumber(ctx context.Context, policyNumber string, opts ...RequestOption) (*Response[Policy], error) {
	if err := requireID("policy number", policyNumber); err != nil {
		return nil, err
	}
	return call[Policy](ctx, s.api, http.MethodGet, resourcePath(policiesPath, "by-number", policyNumber), nil, nil, opts)
}

// List returns one page of policies matching filters, which may be nil.
func (s *PoliciesService) List(ctx context.Context, filters *PolicyListFilters, opts ...RequestOption) (*Response[PaginatedResponse[Policy]], error) {
	return call[PaginatedResponse[Policy]](ctx, s.api, http.MethodGet, policiesPath, filters.query(), nil, opts)
}

// ListAll iterates over every policy matching filters.
func (s *PoliciesService) ListAll(ctx context.Context, filters *PolicyListFilters, opts ...RequestOption) iter.Seq2[Policy, error] {
	var f PolicyListFilters
	if filters != nil {
		f = *filters
	}
	return paginate(f.Page, func(page int) (*PaginatedResponse[Policy], error) {
		f.Page = page
		resp, err := s.List(ctx, &f, opts...)
		if err != nil {
			return nil, err
		}
		return &resp.Data, nil
	})
}

// Cancel cancels a policy and reports any refund issued.
func (s *PoliciesService) Cancel(ctx context.Context, policyID string, params *CancelPolicyParams, opts ...RequestOption) (*Response[CancellationResult], error) {
	if err := requireID("policy ID", policyID); err != nil {
		return nil, err
	}
	if err := requireParams("cancel params", params); err != nil {
		return nil, err
	}
	return call[CancellationResult](ctx, s.api, http.MethodPost, resourcePath(policiesPath, policyID, "cancel"), nil, params, opts)
}

// GetDocuments lists the documents attached to a policy.
func (s *PoliciesService) GetDocuments(ctx context.Context, policyID string, opts ...RequestOption) (*Response[[]PolicyDocument], error) {
	if err := requireID("policy ID", policyID); err != nil {
		return nil, err
	}
	return call[[]PolicyDocument](ctx, s.api, http.MethodGet, resourcePath(policiesPath, policyID, "documents"), nil, nil, opts)
}

// GetDocument returns a single policy document.
func (s *PoliciesService) GetDocument(ctx context.Context, policyID, documentID string, opts ...RequestOption) (*Response[PolicyDocument], error) {
	if err := requireID("policy ID", policyID); err != nil {
		return nil, err
	}
	if err := requireID("document ID", documentID); err != nil {
		return nil, err
	}
	return call[PolicyDocument](ctx, s.api, http.MethodGet, resourcePath(policiesPath, policyID, "documents", documentID), nil, nil, opts)
}

// RequestCertificate issues a certificate of insurance. params may be nil
// for a certificate naming only the policyholder.
func (s *PoliciesService) RequestCertificate(ctx context.Context, policyID string, params *CertificateParams, opts ...RequestOption) (*Response[Certificate], error) {
	if err := requireID("policy ID", policyID); err != nil {
		return nil, err
	}
	var body any
	if params != nil {
		body = params
	}
	return call[Certificate](ctx, s.api, http.MethodPost, resourcePath(policiesPath, policyID, "certificates"), nil, body, opts)
}

// AddEndorsement applies a mid-term change to a policy.
func (s *PoliciesService) AddEndorsement(ctx context.Context, policyID string, params *EndorsementParams, opts ...RequestOption) (*Response[Endorsement], error) {
	if err := requireID("policy ID", policyID); err != nil {
		return nil, err
	}
	if err := requireParams("endorsement params", params); err != nil {
		return nil, err
	}
	return call[Endorsement](ctx, s.api, http.MethodPost, resourcePath(policiesPath, policyID, "endorsements"), nil, params, opts)
}

// GetActivity returns the audit trail of a policy, newest first.
func (s *PoliciesService) GetActivity(ctx context.Context, policyID string, opts ...RequestOption) (*Response[[]PolicyActivity], error) {
	if err := requireID("policy ID", policyID); err != nil {
		return nil, err
	}
	return call[[]PolicyActivity](ctx, s.api, http.MethodGet, resourcePath(policiesPath, policyID, "activity"), nil, nil, opts)
}

// UpdateMetadata replaces the partner metadata attached to a policy.
func (s *PoliciesService) UpdateMetadata(ctx context.Context, policyID string, metadata map[string]string, opts ...RequestOption) (*Response[Policy], error) {
	if err := requireID("policy ID", policyID); err != nil {
		return nil, err
	}
	body := struct {
		Metadata map[string]string `json:"metadata"`
	}{metadata}
	return call[Policy](ctx, s.api, http.MethodPatch, resourcePath(policiesPath, policyID), nil, body, opts)
}

// Renew creates the successor of an expiring policy. params may be nil.
func (s *PoliciesService) Renew(ctx context.Context, policyID string, params *RenewPolicyParams, opts ...RequestOption) (*Response[Policy], error) {
	if err := requireID("policy ID", policyID); err != nil {
		return nil, err
	}
	var body any
	if params != nil {
		body = params
	}
	return call[Policy](ctx, s.api, http.MethodPost, resourcePath(policiesPath, policyID, "renew"), nil, body, opts)
}
