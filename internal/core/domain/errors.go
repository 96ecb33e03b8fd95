package domain

import "errors"

var (
	// ErrInvalidCredentials is returned when the backend rejects an
	// email/password pair. Retryable by re-entering credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNetwork covers transport-level failures. Transient; never destroys
	// an established session.
	ErrNetwork = errors.New("network error")
	// ErrNotAuthenticated signals an operation that requires a token was
	// called without one. Hitting it on a gated path is a caller bug.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNoRefreshToken means neither storage location holds a refresh
	// token. Terminal for the session.
	ErrNoRefreshToken = errors.New("no refresh token")
	// ErrRefreshFailed means the backend rejected the refresh exchange.
	// Terminal for the session.
	ErrRefreshFailed = errors.New("token refresh failed")
	// ErrUnauthorized is the authorization-class error (HTTP 401) that
	// cascades into a forced logout during background user refresh.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound maps a 404 from the backend.
	ErrNotFound = errors.New("not found")
)
