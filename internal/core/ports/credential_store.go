package ports

import "github.com/barberbook/admin-console/internal/core/domain"

// Credentials is the opaque token pair held by a credential store. Both
// values are bearer strings; the access token carries a decodable (but
// client-unverified) expiry claim.
type Credentials struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// Empty reports whether no access token is held.
func (c Credentials) Empty() bool { return c.Token == "" }

// CredentialStore is a key-value location for tokens and the cached user
// record. Two implementations exist: durable (survives restarts) and
// ephemeral (process-scoped). The session manager is the only writer; which
// store receives tokens is chosen once at login by the remember flag, while
// logout always clears both locations.
type CredentialStore interface {
	SaveTokens(creds Credentials) error
	// Tokens returns the stored pair; a zero Credentials value (Empty() ==
	// true) with a nil error means nothing is stored.
	Tokens() (Credentials, error)
	SaveUser(user *domain.User) error
	// User returns the cached user record, or nil when absent. A corrupted
	// record returns an error so callers can fail safe.
	User() (*domain.User, error)
	// Clear removes all entries. Clearing an empty store is a no-op.
	Clear() error
}
