// Package store defines the document store behind the demo backend's
// resource endpoints. Resources are schemaless JSON documents grouped into
// named collections; the in-memory implementation is the default and a
// MongoDB implementation exists for persistent demo data.
package store

import (
	"context"
	"errors"
)

// ErrDocNotFound is returned when no document matches the requested id.
var ErrDocNotFound = errors.New("document not found")

// Doc is one stored resource record.
type Doc map[string]any

// ListQuery carries pagination plus a verbatim field→value filter map.
// Every filter key matches for equality against the field of the same name,
// except the reserved key "search" which performs a substring match across
// the document's text fields.
type ListQuery struct {
	Page    int
	Limit   int
	Filters map[string]string
}

// Store is the persistence interface of the demo backend.
type Store interface {
	List(ctx context.Context, collection string, q ListQuery) ([]Doc, int64, error)
	Get(ctx context.Context, collection, id string) (Doc, error)
	// Insert stores doc, assigning an "id" and timestamps when absent, and
	// returns the stored document.
	Insert(ctx context.Context, collection string, doc Doc) (Doc, error)
	// Update merges doc's fields into the existing document; fields the
	// payload does not mention keep their stored values.
	Update(ctx context.Context, collection, id string, doc Doc) (Doc, error)
	Delete(ctx context.Context, collection, id string) error
	// Seed inserts docs only when the collection is empty, so restarts
	// against a persistent backend do not duplicate demo data.
	Seed(ctx context.Context, collection string, docs []Doc) error
}
