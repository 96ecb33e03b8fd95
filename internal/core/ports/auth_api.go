package ports

import (
	"context"

	"github.com/barberbook/admin-console/internal/core/domain"
)

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	User         *domain.User
	Token        string
	RefreshToken string
}

// AuthAPI is the slice of the booking backend the session manager depends
// on. Implementations normalise failures to the domain sentinels:
// ErrInvalidCredentials, ErrUnauthorized, ErrNetwork.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout invalidates the token server-side. Callers treat failures as
	// best-effort.
	Logout(ctx context.Context, token string) error
	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Me returns the latest user record for the bearer token.
	Me(ctx context.Context, token string) (*domain.User, error)
}
