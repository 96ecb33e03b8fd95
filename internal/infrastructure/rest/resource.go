package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/barberbook/admin-console/internal/core/domain"
	"github.com/barberbook/admin-console/internal/core/ports"
)

// listEnvelope is the backend's list response shape, shared by every
// paginated resource endpoint.
type listEnvelope[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// Resource is a typed handle on one paginated REST collection. The token
// provider is consulted per request so a refreshed token takes effect
// without rebuilding the handle.
type Resource[T any] struct {
	c     *Client
	path  string
	token func() string
}

// NewResource returns a handle for path (e.g. "/v1/bookings").
func NewResource[T any](c *Client, path string, token func() string) *Resource[T] {
	return &Resource[T]{c: c, path: path, token: token}
}

// FetchPage retrieves one page. Filters are passed through verbatim as query
// parameters; the server is the sole authority on what matches. TotalPages
// is derived client-side as ceil(total/limit).
func (r *Resource[T]) FetchPage(ctx context.Context, q ports.PageQuery) (*ports.Page[T], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("limit", strconv.Itoa(q.Limit))
	for k, v := range q.Filters {
		query.Set(k, v)
	}

	var env listEnvelope[T]
	if err := r.c.do(ctx, http.MethodGet, r.path, r.token(), query, nil, &env); err != nil {
		return nil, err
	}

	limit := env.Limit
	if limit <= 0 {
		limit = q.Limit
	}
	return &ports.Page[T]{
		Items:      env.Data,
		Total:      env.Total,
		Page:       env.Page,
		Limit:      limit,
		TotalPages: domain.PageCount(env.Total, limit),
	}, nil
}

// Get retrieves the record with the given id.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.path+"/"+id, r.token(), nil, nil, &out)
	return out, err
}

// Create POSTs a new item and returns the stored representation.
func (r *Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPost, r.path, r.token(), nil, item, &out)
	return out, err
}

// Update PUTs item over the record with the given id.
func (r *Resource[T]) Update(ctx context.Context, id string, item T) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPut, r.path+"/"+id, r.token(), nil, item, &out)
	return out, err
}

// Delete removes the record with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.path+"/"+id, r.token(), nil, nil, nil)
}
