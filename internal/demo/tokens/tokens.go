// Package tokens stores the demo backend's refresh tokens with a TTL.
// Access tokens embed the refresh token's id in their "sid" claim, which is
// how logout knows what to revoke.
package tokens

import (
	"context"
	"errors"
	"time"
)

// ErrTokenNotFound is returned when a refresh token is unknown, expired or
// revoked.
var ErrTokenNotFound = errors.New("refresh token not found")

// Store maps a refresh token to the user it belongs to until it expires or
// is revoked.
type Store interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Lookup returns the owning user id, or ErrTokenNotFound.
	Lookup(ctx context.Context, token string) (string, error)
	// Revoke removes the token. Revoking an unknown token is a no-op.
	Revoke(ctx context.Context, token string) error
}
