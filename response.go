package dailyevent

import (
	"context"
	"iter"
	"net/url"
	"strings"

	"github.com/dailyevent/partner-go/internal/api"
)

// ResponseMetadata is derived from the headers of every successful response.
type ResponseMetadata = api.ResponseMetadata

// RateLimit reports the API quota remaining in the current window.
type RateLimit = api.RateLimit

// Response pairs a decoded result with its response metadata.
type Response[T any] struct {
	Data     T                `json:"data"`
	Metadata ResponseMetadata `json:"metadata"`
}

// PaginatedResponse is one page of a list endpoint.
type PaginatedResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination describes the position of a page within a listing.
type Pagination struct {
	Page            int    `json:"page"`
	Limit           int    `json:"limit"`
	Total           int    `json:"totalItems"`
	TotalPages      int    `json:"totalPages"`
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	NextCursor      string `json:"nextCursor,omitempty"`
	PreviousCursor  string `json:"previousCursor,omitempty"`
}

// SortOrder orders list results.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// call performs one API request and decodes the result into a Response.
func call[T any](ctx context.Context, c *api.Client, method, path string, query url.Values, body any, opts []RequestOption) (*Response[T], error) {
	var data T
	meta, err := c.Do(ctx, &api.Request{
		Method:  method,
		Path:    path,
		Query:   query,
		Body:    body,
		Options: applyRequestOptions(opts),
	}, &data)
	if err != nil {
		return nil, err
	}
	return &Response[T]{Data: data, Metadata: *meta}, nil
}

// resourcePath joins escaped path segments under base.
func resourcePath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func requireID(what, id string) error {
	if strings.TrimSpace(id) == "" {
		return &missingArgumentError{what: what}
	}
	return nil
}

func requireParams[T any](what string, params *T) error {
	if params == nil {
		return &missingArgumentError{what: what}
	}
	return nil
}

type missingArgumentError struct {
	what string
}

func (e *missingArgumentError) Error() string {
	return e.what + " is required"
}

func (e *missingArgumentError) Is(target error) bool {
	return target == ErrMissingArgument
}

// paginate yields every item of a listing, fetching pages on demand until
// the server reports no next page. Iteration stops at the first error.
func paginate[T any](first int, fetch func(page int) (*PaginatedResponse[T], error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		page := max(first, 1)
		for {
			resp, err := fetch(page)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range resp.Data {
				if !yield(item, nil) {
					return
				}
			}
			if !resp.Pagination.HasNextPage || len(resp.Data) == 0 {
				return
			}
			page++
		}
	}
}
