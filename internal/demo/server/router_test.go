package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/barberbook/admin-console/internal/demo/auth"
	"github.com/barberbook/admin-console/internal/demo/store"
	"github.com/barberbook/admin-console/internal/demo/tokens"
)

// The router registers prometheus collectors in the default registry, so it
// can only be built once per test binary. All routes are exercised as phases
// of this single test.
func TestDemoServer(t *testing.T) {
	st := store.NewMemoryStore()
	if err := SeedData(context.Background(), st); err != nil {
		t.Fatalf("seed: %v", err)
	}
	authSvc, err := auth.NewService(tokens.NewMemoryStore(), "test-secret", time.Hour, 24*time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	e := NewRouter(Deps{
		Auth:      authSvc,
		Store:     st,
		JWTSecret: "test-secret",
		Log:       zerolog.Nop(),
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	postJSON := func(t *testing.T, path, token string, body any) (*http.Response, []byte) {
		t.Helper()
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		req, err := http.NewRequest(http.MethodPost, srv.URL+path, bytes.NewReader(data))
		if err != nil {
			t.Fatalf("build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return doRequest(t, req)
	}
	putJSON := func(t *testing.T, path, token string, body any) (*http.Response, []byte) {
		t.Helper()
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		req, err := http.NewRequest(http.MethodPut, srv.URL+path, bytes.NewReader(data))
		if err != nil {
			t.Fatalf("build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return doRequest(t, req)
	}
	get := func(t *testing.T, path, token string) (*http.Response, []byte) {
		t.Helper()
		req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
		if err != nil {
			t.Fatalf("build request: %v", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return doRequest(t, req)
	}
	login := func(t *testing.T, email string) (token, refreshToken string) {
		t.Helper()
		resp, body := postJSON(t, "/auth/login", "", map[string]string{"email": email, "password": "password123"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("login %s: status %d: %s", email, resp.StatusCode, body)
		}
		var out struct {
			Token        string `json:"token"`
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("decode login response: %v", err)
		}
		return out.Token, out.RefreshToken
	}

	t.Run("login rejects bad credentials", func(t *testing.T) {
		resp, body := postJSON(t, "/auth/login", "", map[string]string{"email": "admin@example.com", "password": "nope"})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", resp.StatusCode, body)
		}
		var env map[string]string
		if err := json.Unmarshal(body, &env); err != nil || env["error"] == "" {
			t.Fatalf("expected error envelope, got %s", body)
		}
	})

	t.Run("login validates payload", func(t *testing.T) {
		resp, _ := postJSON(t, "/auth/login", "", map[string]string{"email": "not-an-email", "password": "x"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("list requires auth", func(t *testing.T) {
		resp, _ := get(t, "/v1/bookings", "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	adminToken, adminRefresh := login(t, "admin@example.com")

	t.Run("me returns the account", func(t *testing.T) {
		resp, body := get(t, "/auth/me", adminToken)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
		}
		var out struct {
			User struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"user"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("decode me response: %v", err)
		}
		if out.User.Email != "admin@example.com" || out.User.Role != "ADMIN" {
			t.Fatalf("unexpected me response: %s", body)
		}
	})

	t.Run("list bookings with pagination", func(t *testing.T) {
		resp, body := get(t, "/v1/bookings?page=2&limit=3", adminToken)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
		}
		var out struct {
			Data  []store.Doc `json:"data"`
			Total int64       `json:"total"`
			Page  int         `json:"page"`
			Limit int         `json:"limit"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("decode list response: %v", err)
		}
		if out.Total != 4 || out.Page != 2 || out.Limit != 3 {
			t.Fatalf("unexpected envelope: %s", body)
		}
		if len(out.Data) != 1 {
			t.Fatalf("expected 1 row on page 2, got %d", len(out.Data))
		}
	})

	t.Run("list filters pass through", func(t *testing.T) {
		resp, body := get(t, "/v1/bookings?status=PENDING", adminToken)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var out struct {
			Data  []store.Doc `json:"data"`
			Total int64       `json:"total"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("decode list response: %v", err)
		}
		if out.Total != 1 || out.Data[0]["id"] != "bkg_2" {
			t.Fatalf("status filter mismatch: %s", body)
		}
	})

	t.Run("get unknown id is 404", func(t *testing.T) {
		resp, _ := get(t, "/v1/services/svc_missing", adminToken)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("admin can create and delete", func(t *testing.T) {
		resp, body := postJSON(t, "/v1/services", adminToken, store.Doc{"name": "Hot Towel Shave", "duration_min": 25, "price": 20.0, "currency": "USD", "is_active": true})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
		}
		var created store.Doc
		if err := json.Unmarshal(body, &created); err != nil {
			t.Fatalf("decode created doc: %v", err)
		}
		id, _ := created["id"].(string)
		if id == "" {
			t.Fatalf("created document has no id: %s", body)
		}

		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/v1/services/"+id, nil)
		if err != nil {
			t.Fatalf("build request: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, _ = doRequest(t, req)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", resp.StatusCode)
		}
	})

	stylistToken, _ := login(t, "stylist@example.com")

	t.Run("stylist may update bookings but not services", func(t *testing.T) {
		resp, body := postJSON(t, "/v1/services", stylistToken, store.Doc{"name": "Nope"})
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403 for stylist service create, got %d: %s", resp.StatusCode, body)
		}

		req, err := http.NewRequest(http.MethodPut, srv.URL+"/v1/bookings/bkg_2", bytes.NewReader([]byte(`{"status":"CONFIRMED"}`)))
		if err != nil {
			t.Fatalf("build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+stylistToken)
		resp, body = doRequest(t, req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 for stylist booking update, got %d: %s", resp.StatusCode, body)
		}
	})

	t.Run("status change keeps the rest of the booking", func(t *testing.T) {
		resp, body := putJSON(t, "/v1/bookings/bkg_1", adminToken, store.Doc{"status": "CANCELLED"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
		}

		resp, body = get(t, "/v1/bookings/bkg_1", adminToken)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var doc store.Doc
		if err := json.Unmarshal(body, &doc); err != nil {
			t.Fatalf("decode booking: %v", err)
		}
		if doc["status"] != "CANCELLED" {
			t.Fatalf("status not updated: %s", body)
		}
		if doc["customer_name"] != "Jordan Fields" || doc["stylist_name"] != "Sam Scissorhands" || doc["service_name"] != "Skin Fade" {
			t.Fatalf("status change erased other fields: %s", body)
		}
		if starts, _ := doc["starts_at"].(string); starts == "" {
			t.Fatalf("status change erased starts_at: %s", body)
		}
	})

	t.Run("booking lifecycle is enforced", func(t *testing.T) {
		// bkg_3 is COMPLETED, a terminal state.
		resp, body := putJSON(t, "/v1/bookings/bkg_3", adminToken, store.Doc{"status": "PENDING"})
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", resp.StatusCode, body)
		}

		resp, body = get(t, "/v1/bookings/bkg_3", adminToken)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var doc store.Doc
		if err := json.Unmarshal(body, &doc); err != nil {
			t.Fatalf("decode booking: %v", err)
		}
		if doc["status"] != "COMPLETED" {
			t.Fatalf("rejected transition must leave the booking untouched: %s", body)
		}

		// Updates that do not touch the status still pass the guard.
		resp, _ = putJSON(t, "/v1/bookings/bkg_3", adminToken, store.Doc{"duration_min": 25})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 for a non-status update, got %d", resp.StatusCode)
		}
	})

	t.Run("refresh issues a new access token", func(t *testing.T) {
		resp, body := postJSON(t, "/auth/refresh", "", map[string]string{"refresh_token": adminRefresh})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
		}
		var out struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(body, &out); err != nil || out.Token == "" {
			t.Fatalf("expected a token, got %s", body)
		}
	})

	t.Run("logout revokes the refresh token", func(t *testing.T) {
		resp, _ := postJSON(t, "/auth/logout", adminToken, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", resp.StatusCode)
		}
		resp, _ = postJSON(t, "/auth/refresh", "", map[string]string{"refresh_token": adminRefresh})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
		}
	})

	t.Run("health and metrics", func(t *testing.T) {
		resp, _ := get(t, "/health", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 from /health, got %d", resp.StatusCode)
		}
		resp, _ = get(t, "/health/ready", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 from /health/ready, got %d", resp.StatusCode)
		}
		resp, _ = get(t, "/metrics", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 from /metrics, got %d", resp.StatusCode)
		}
	})
}

func doRequest(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, buf.Bytes()
}
