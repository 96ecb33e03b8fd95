// Package console holds the screen controllers that sit between user
// actions and the paginated resource client: one generic controller,
// instantiated once per resource list.
package console

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/barberbook/admin-console/internal/core/domain"
	"github.com/barberbook/admin-console/internal/core/ports"
)

// ScreenState is the per-screen fetch lifecycle:
// Idle → Loading → {Loaded, Errored}, re-entering Loading whenever the page
// or a filter changes.
type ScreenState string

const (
	StateIdle    ScreenState = "idle"
	StateLoading ScreenState = "loading"
	StateLoaded  ScreenState = "loaded"
	StateErrored ScreenState = "errored"
)

const defaultLimit = 10

// ListController owns the filter and pagination state for one resource list
// and mediates all fetches for it. Concurrent fetches are ordered by a
// monotonically increasing sequence number: a response only lands if no newer
// fetch has started since it left, so a slow stale request can never
// overwrite a fresher result.
type ListController[T any] struct {
	mu    sync.Mutex
	fetch ports.PageFetcher[T]
	idOf  func(T) string
	log   zerolog.Logger

	page       int
	limit      int
	filters    map[string]string
	items      []T
	total      int64
	totalPages int
	state      ScreenState
	lastErr    error
	seq        uint64
}

// NewListController builds a controller over fetch. idOf extracts the
// identifier used by the optimistic replace/remove mutations.
func NewListController[T any](fetch ports.PageFetcher[T], idOf func(T) string, log zerolog.Logger) *ListController[T] {
	return &ListController[T]{
		fetch:   fetch,
		idOf:    idOf,
		log:     log,
		page:    1,
		limit:   defaultLimit,
		filters: make(map[string]string),
		state:   StateIdle,
	}
}

// SetLimit changes the page size for subsequent fetches.
func (c *ListController[T]) SetLimit(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if limit > 0 {
		c.limit = limit
	}
}

// SetFilter updates one filter field (an empty value removes it), resets the
// page to 1, and triggers exactly one fetch with the updated parameters.
func (c *ListController[T]) SetFilter(ctx context.Context, key, value string) error {
	c.mu.Lock()
	if value == "" {
		delete(c.filters, key)
	} else {
		c.filters[key] = value
	}
	c.page = 1
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetFilters replaces the whole filter map in one step, resets the page to 1
// and triggers exactly one fetch.
func (c *ListController[T]) SetFilters(ctx context.Context, filters map[string]string) error {
	c.mu.Lock()
	c.filters = cloneFilters(filters)
	c.page = 1
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Load is the one-shot entry point: it installs page, limit and filters
// together and performs a single fetch. The page is clamped against the
// fetched total.
func (c *ListController[T]) Load(ctx context.Context, page, limit int, filters map[string]string) error {
	c.mu.Lock()
	if page < 1 {
		page = 1
	}
	if limit > 0 {
		c.limit = limit
	}
	c.page = page
	c.filters = cloneFilters(filters)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// ClearFilters drops every filter, resets to page 1 and refetches.
func (c *ListController[T]) ClearFilters(ctx context.Context) error {
	c.mu.Lock()
	c.filters = make(map[string]string)
	c.page = 1
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetPage moves to page n, clamped into [1, totalPages] when a total is
// known, and refetches. Asking for the current page is a no-op.
func (c *ListController[T]) SetPage(ctx context.Context, n int) error {
	c.mu.Lock()
	n = domain.ClampPage(n, c.totalPages)
	if n == c.page && c.state == StateLoaded {
		c.mu.Unlock()
		return nil
	}
	c.page = n
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Refresh fetches the current page with the current filters. On failure the
// previously displayed items are kept intact so the screen can offer a retry
// over stale-but-valid data. A response that has been superseded by a newer
// fetch is discarded without touching state.
func (c *ListController[T]) Refresh(ctx context.Context) error {
	for {
		c.mu.Lock()
		c.seq++
		my := c.seq
		q := ports.PageQuery{Page: c.page, Limit: c.limit, Filters: cloneFilters(c.filters)}
		c.state = StateLoading
		c.mu.Unlock()

		page, err := c.fetch(ctx, q)

		c.mu.Lock()
		if c.seq != my {
			// A newer fetch started while this one was in flight.
			c.mu.Unlock()
			c.log.Debug().Int("page", q.Page).Msg("stale list response discarded")
			return nil
		}
		if err != nil {
			c.state = StateErrored
			c.lastErr = err
			c.mu.Unlock()
			return err
		}

		c.items = page.Items
		c.total = page.Total
		c.totalPages = page.TotalPages
		c.state = StateLoaded
		c.lastErr = nil

		// The result may reveal the requested page no longer exists (rows
		// deleted server-side). Clamp once and refetch.
		if clamped := domain.ClampPage(c.page, c.totalPages); clamped != c.page {
			c.page = clamped
			c.mu.Unlock()
			continue
		}
		c.mu.Unlock()
		return nil
	}
}

// ApplyCreate appends item to the in-memory list after a successful create.
// Totals are deliberately left stale until the next fetch: the list is
// eventually consistent with server truth, not a mirror of it.
func (c *ListController[T]) ApplyCreate(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// ApplyUpdate replaces the item with a matching id in place. Unknown ids are
// ignored (the row may live on another page).
func (c *ListController[T]) ApplyUpdate(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.idOf(item)
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = item
			return
		}
	}
}

// ApplyDelete removes exactly one item with a matching id, without changing
// the page or triggering a fetch.
func (c *ListController[T]) ApplyDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the currently displayed rows.
func (c *ListController[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// State returns the current fetch lifecycle state.
func (c *ListController[T]) State() ScreenState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error recorded by the last failed fetch, if any.
func (c *ListController[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Page returns the current 1-based page.
func (c *ListController[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Total returns the server-reported total row count from the last fetch.
func (c *ListController[T]) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// TotalPages returns ceil(total/limit) from the last fetch.
func (c *ListController[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

// Filters returns a copy of the active filter map.
func (c *ListController[T]) Filters() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneFilters(c.filters)
}

func cloneFilters(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
