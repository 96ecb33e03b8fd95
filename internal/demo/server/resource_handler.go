package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/barberbook/admin-console/internal/demo/metrics"
	"github.com/barberbook/admin-console/internal/demo/store"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ResourceHandler serves one paginated collection. Every resource shares the
// identical list-filter-paginate contract, so one handler type covers all of
// them.
type ResourceHandler struct {
	st    store.Store
	name  string
	guard UpdateGuard
}

// UpdateGuard vets an update against the stored document before it is
// applied. A non-nil error rejects the update as unprocessable.
type UpdateGuard func(existing, update store.Doc) error

func NewResourceHandler(st store.Store, name string) *ResourceHandler {
	return &ResourceHandler{st: st, name: name}
}

// WithUpdateGuard installs guard on the update path.
func (h *ResourceHandler) WithUpdateGuard(guard UpdateGuard) *ResourceHandler {
	h.guard = guard
	return h
}

type listResponse struct {
	Data  []store.Doc `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// List handles GET /v1/<resource>?page&limit&<filters>. Unknown query
// parameters are passed through to the store as filters verbatim.
func (h *ResourceHandler) List(c echo.Context) error {
	page := intParam(c, "page", defaultPage)
	limit := intParam(c, "limit", defaultLimit)
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filters := make(map[string]string)
	for key, values := range c.QueryParams() {
		if key == "page" || key == "limit" || len(values) == 0 {
			continue
		}
		filters[key] = values[0]
	}

	docs, total, err := h.st.List(c.Request().Context(), h.name, store.ListQuery{
		Page:    page,
		Limit:   limit,
		Filters: filters,
	})
	if err != nil {
		return err
	}
	metrics.ListQueriesTotal.WithLabelValues(h.name).Inc()

	return c.JSON(http.StatusOK, listResponse{Data: docs, Total: total, Page: page, Limit: limit})
}

// Get handles GET /v1/<resource>/:id.
func (h *ResourceHandler) Get(c echo.Context) error {
	doc, err := h.st.Get(c.Request().Context(), h.name, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// Create handles POST /v1/<resource>.
func (h *ResourceHandler) Create(c echo.Context) error {
	var doc store.Doc
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(doc) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "empty payload")
	}

	stored, err := h.st.Insert(c.Request().Context(), h.name, doc)
	if err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues(h.name, "create").Inc()
	return c.JSON(http.StatusCreated, stored)
}

// Update handles PUT /v1/<resource>/:id.
func (h *ResourceHandler) Update(c echo.Context) error {
	var doc store.Doc
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(doc) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "empty payload")
	}

	if h.guard != nil {
		existing, err := h.st.Get(c.Request().Context(), h.name, c.Param("id"))
		if err != nil {
			return err
		}
		if err := h.guard(existing, doc); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
	}

	stored, err := h.st.Update(c.Request().Context(), h.name, c.Param("id"), doc)
	if err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues(h.name, "update").Inc()
	return c.JSON(http.StatusOK, stored)
}

// Delete handles DELETE /v1/<resource>/:id.
func (h *ResourceHandler) Delete(c echo.Context) error {
	if err := h.st.Delete(c.Request().Context(), h.name, c.Param("id")); err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues(h.name, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func intParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
