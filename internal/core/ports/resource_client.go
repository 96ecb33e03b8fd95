package ports

import "context"

// PageQuery carries the list parameters every resource screen uses
// identically: 1-based page, page size, and a verbatim field→value filter
// map that is passed through as query parameters. The server is the sole
// source of truth for what matches a filter; clients never re-filter.
type PageQuery struct {
	Page    int
	Limit   int
	Filters map[string]string
}

// Page is one fetched page of a resource list. TotalPages is always
// ceil(Total/Limit), zero when Total is zero.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PageFetcher fetches one page of T. It is the injection point list
// controllers are built on, so tests can substitute stubs.
type PageFetcher[T any] func(ctx context.Context, q PageQuery) (*Page[T], error)

// ResourceWriter covers the mutation half of a resource endpoint.
type ResourceWriter[T any] interface {
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, item T) (T, error)
	Delete(ctx context.Context, id string) error
}
