package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps every collection as an ordered slice of documents. It is
// the default backend: the demo server is expected to run self-contained.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Doc
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]Doc)}
}

func (s *MemoryStore) List(_ context.Context, collection string, q ListQuery) ([]Doc, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Doc
	for _, doc := range s.collections[collection] {
		if matchesFilters(doc, q.Filters) {
			matched = append(matched, doc)
		}
	}

	total := int64(len(matched))
	start := (q.Page - 1) * q.Limit
	if start >= len(matched) {
		return []Doc{}, total, nil
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]Doc, 0, end-start)
	for _, doc := range matched[start:end] {
		out = append(out, cloneDoc(doc))
	}
	return out, total, nil
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if docID(doc) == id {
			return cloneDoc(doc), nil
		}
	}
	return nil, ErrDocNotFound
}

func (s *MemoryStore) Insert(_ context.Context, collection string, doc Doc) (Doc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneDoc(doc)
	stamp(stored)
	s.collections[collection] = append(s.collections[collection], stored)
	return cloneDoc(stored), nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, doc Doc) (Doc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, existing := range docs {
		if docID(existing) != id {
			continue
		}
		// Merge field by field, like the Mongo implementation's $set, so a
		// partial payload cannot blank out fields it never mentioned.
		updated := cloneDoc(existing)
		for k, v := range doc {
			updated[k] = v
		}
		updated["id"] = id
		if created, ok := existing["created_at"]; ok {
			updated["created_at"] = created
		}
		updated["updated_at"] = time.Now().UTC().Format(time.RFC3339)
		docs[i] = updated
		return cloneDoc(updated), nil
	}
	return nil, ErrDocNotFound
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if docID(doc) == id {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrDocNotFound
}

func (s *MemoryStore) Seed(_ context.Context, collection string, docs []Doc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.collections[collection]) > 0 {
		return nil
	}
	for _, doc := range docs {
		stored := cloneDoc(doc)
		stamp(stored)
		s.collections[collection] = append(s.collections[collection], stored)
	}
	return nil
}

// stamp fills id and timestamps when the document lacks them.
func stamp(doc Doc) {
	if docID(doc) == "" {
		doc["id"] = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if _, ok := doc["created_at"]; !ok {
		doc["created_at"] = now
	}
	if _, ok := doc["updated_at"]; !ok {
		doc["updated_at"] = now
	}
}

func docID(doc Doc) string {
	id, _ := doc["id"].(string)
	return id
}

func cloneDoc(doc Doc) Doc {
	out := make(Doc, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// matchesFilters applies equality filters field by field; the reserved
// "search" key does a case-insensitive substring scan over string fields.
func matchesFilters(doc Doc, filters map[string]string) bool {
	for key, want := range filters {
		if key == "search" {
			if !matchesSearch(doc, want) {
				return false
			}
			continue
		}
		got, ok := doc[key]
		if !ok || fmt.Sprint(got) != want {
			return false
		}
	}
	return true
}

func matchesSearch(doc Doc, term string) bool {
	term = strings.ToLower(term)
	for _, v := range doc {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}
