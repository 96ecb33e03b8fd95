package store

import (
	"context"
	"errors"
	"testing"
)

func seedCustomers(t *testing.T, s *MemoryStore) {
	t.Helper()
	docs := []Doc{
		{"id": "cus_1", "full_name": "Ana Alvarez", "status": "ACTIVE"},
		{"id": "cus_2", "full_name": "Bruno Braga", "status": "ACTIVE"},
		{"id": "cus_3", "full_name": "Carla Costa", "status": "INACTIVE"},
	}
	if err := s.Seed(context.Background(), "customers", docs); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
}

func TestMemoryStore_ListPagination(t *testing.T) {
	s := NewMemoryStore()
	seedCustomers(t, s)

	docs, total, err := s.List(context.Background(), "customers", ListQuery{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 3 || len(docs) != 2 {
		t.Fatalf("expected total=3 with 2 rows, got %d/%d", total, len(docs))
	}

	docs, total, err = s.List(context.Background(), "customers", ListQuery{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 3 || len(docs) != 1 {
		t.Fatalf("expected 1 row on page 2, got %d", len(docs))
	}

	// A page past the end is empty, not an error.
	docs, total, err = s.List(context.Background(), "customers", ListQuery{Page: 9, Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 3 || len(docs) != 0 {
		t.Fatalf("expected empty page past the end, got %d rows", len(docs))
	}
}

func TestMemoryStore_ListFilters(t *testing.T) {
	s := NewMemoryStore()
	seedCustomers(t, s)

	docs, total, err := s.List(context.Background(), "customers", ListQuery{
		Page: 1, Limit: 10,
		Filters: map[string]string{"status": "ACTIVE"},
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 2 || len(docs) != 2 {
		t.Fatalf("expected 2 active customers, got %d", total)
	}

	docs, total, err = s.List(context.Background(), "customers", ListQuery{
		Page: 1, Limit: 10,
		Filters: map[string]string{"search": "braga"},
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 1 || docs[0]["id"] != "cus_2" {
		t.Fatalf("search filter mismatch: total=%d docs=%+v", total, docs)
	}

	// Filters combine with AND semantics.
	_, total, err = s.List(context.Background(), "customers", ListQuery{
		Page: 1, Limit: 10,
		Filters: map[string]string{"status": "INACTIVE", "search": "ana"},
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected no matches for contradictory filters, got %d", total)
	}
}

func TestMemoryStore_InsertAssignsIDAndTimestamps(t *testing.T) {
	s := NewMemoryStore()

	doc, err := s.Insert(context.Background(), "services", Doc{"name": "Fade"})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if docID(doc) == "" {
		t.Fatalf("Insert did not assign an id: %+v", doc)
	}
	if doc["created_at"] == nil || doc["updated_at"] == nil {
		t.Fatalf("Insert did not stamp timestamps: %+v", doc)
	}

	got, err := s.Get(context.Background(), "services", docID(doc))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got["name"] != "Fade" {
		t.Fatalf("stored document mismatch: %+v", got)
	}
}

func TestMemoryStore_UpdatePreservesCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	inserted, err := s.Insert(context.Background(), "services", Doc{"name": "Fade"})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	updated, err := s.Update(context.Background(), "services", docID(inserted), Doc{"name": "Skin Fade"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated["name"] != "Skin Fade" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated["created_at"] != inserted["created_at"] {
		t.Fatalf("update must preserve created_at: %v vs %v", updated["created_at"], inserted["created_at"])
	}
	if updated["id"] != docID(inserted) {
		t.Fatalf("update must preserve the id")
	}

	if _, err := s.Update(context.Background(), "services", "missing", Doc{}); !errors.Is(err, ErrDocNotFound) {
		t.Fatalf("expected ErrDocNotFound, got %v", err)
	}
}

func TestMemoryStore_UpdateMergesPartialPayload(t *testing.T) {
	s := NewMemoryStore()
	inserted, err := s.Insert(context.Background(), "bookings", Doc{
		"customer_name": "Jordan Fields",
		"service_name":  "Skin Fade",
		"status":        "CONFIRMED",
	})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	updated, err := s.Update(context.Background(), "bookings", docID(inserted), Doc{"status": "CANCELLED"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated["status"] != "CANCELLED" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated["customer_name"] != "Jordan Fields" || updated["service_name"] != "Skin Fade" {
		t.Fatalf("partial update erased unmentioned fields: %+v", updated)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	seedCustomers(t, s)

	if err := s.Delete(context.Background(), "customers", "cus_2"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := s.Get(context.Background(), "customers", "cus_2"); !errors.Is(err, ErrDocNotFound) {
		t.Fatalf("expected deleted document to be gone, got %v", err)
	}
	if err := s.Delete(context.Background(), "customers", "cus_2"); !errors.Is(err, ErrDocNotFound) {
		t.Fatalf("expected ErrDocNotFound on repeat delete, got %v", err)
	}
}

func TestMemoryStore_SeedIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	seedCustomers(t, s)
	seedCustomers(t, s)

	_, total, err := s.List(context.Background(), "customers", ListQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 3 {
		t.Fatalf("repeated seed duplicated data: %d rows", total)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	seedCustomers(t, s)

	doc, err := s.Get(context.Background(), "customers", "cus_1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	doc["full_name"] = "mutated"

	again, err := s.Get(context.Background(), "customers", "cus_1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if again["full_name"] != "Ana Alvarez" {
		t.Fatalf("store leaked internal state: %+v", again)
	}
}
