package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/barberbook/admin-console/internal/core/domain"
	"github.com/barberbook/admin-console/internal/demo/tokens"
)

func newTestService(t *testing.T) (*Service, *tokens.MemoryStore) {
	t.Helper()
	tok := tokens.NewMemoryStore()
	svc, err := NewService(tok, "test-secret", time.Hour, 24*time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc, tok
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	return claims
}

func TestService_Login(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Login(context.Background(), "admin@example.com", "password123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role %s", res.User.Role)
	}
	if res.Token == "" || res.RefreshToken == "" {
		t.Fatalf("expected a token pair, got %+v", res)
	}

	claims := parseClaims(t, res.Token)
	if claims["sub"] != res.User.ID || claims["role"] != "ADMIN" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	// The access token references its refresh token for logout.
	if claims["sid"] != res.RefreshToken {
		t.Fatalf("sid claim does not match the refresh token")
	}
}

func TestService_Login_Rejections(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Login(context.Background(), "nobody@example.com", "password123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestService_Refresh(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Login(context.Background(), "manager@example.com", "password123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	token, err := svc.Refresh(context.Background(), res.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	claims := parseClaims(t, token)
	if claims["sub"] != res.User.ID {
		t.Fatalf("refreshed token belongs to the wrong user: %+v", claims)
	}

	if _, err := svc.Refresh(context.Background(), "unknown-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown refresh token, got %v", err)
	}
}

func TestService_LogoutRevokesRefreshToken(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Login(context.Background(), "stylist@example.com", "password123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if err := svc.Logout(context.Background(), res.RefreshToken); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), res.RefreshToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("revoked refresh token must stop working, got %v", err)
	}
	// Logout with no sid is a no-op.
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("empty-sid logout returned error: %v", err)
	}
}

func TestService_UserByID(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Login(context.Background(), "admin@example.com", "password123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	user, err := svc.UserByID(res.User.ID)
	if err != nil {
		t.Fatalf("UserByID returned error: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if _, err := svc.UserByID("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
