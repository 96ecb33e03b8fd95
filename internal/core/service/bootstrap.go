package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/barberbook/admin-console/internal/core/domain"
)

// Status is the coarse authentication state the rest of the console keys on.
type Status string

const (
	StatusInitializing    Status = "initializing"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// Authenticator owns the session bootstrap state machine:
//
//	Initializing → {Authenticated, Unauthenticated}
//
// Bootstrap runs exactly once per process. When cached credentials exist the
// authenticator optimistically enters Authenticated with the cached user and
// then revalidates against the backend; only an authorization-class failure
// tears the session down. Staleness over forced logout is a deliberate
// tradeoff for flaky connectivity.
type Authenticator struct {
	mu       sync.Mutex
	bootOnce sync.Once
	session  *SessionManager
	log      zerolog.Logger

	status  Status
	lastErr error
}

func NewAuthenticator(session *SessionManager, log zerolog.Logger) *Authenticator {
	return &Authenticator{
		session: session,
		log:     log.With().Str("component", "auth").Logger(),
		status:  StatusInitializing,
	}
}

// Bootstrap restores the session from the credential stores and revalidates
// the cached user. Subsequent calls are no-ops returning the current status.
func (a *Authenticator) Bootstrap(ctx context.Context) Status {
	a.bootOnce.Do(func() {
		if !a.session.Restore() {
			a.setStatus(StatusUnauthenticated, nil)
			return
		}
		// Cached credentials are trusted until proven revoked.
		a.setStatus(StatusAuthenticated, nil)
		a.RefreshUser(ctx)
	})
	return a.Status()
}

// RefreshUser revalidates the session's user record against the backend. An
// authorization failure cascades into a forced logout — the only case where
// one operation triggers another state change. Transient failures keep the
// stale cached user and the Authenticated status.
func (a *Authenticator) RefreshUser(ctx context.Context) {
	_, err := a.session.CurrentUser(ctx)
	switch {
	case err == nil:
		a.setStatus(StatusAuthenticated, nil)
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNotAuthenticated):
		a.log.Info().Msg("cached session no longer authorized, logging out")
		a.session.Logout(ctx)
		a.setStatus(StatusUnauthenticated, err)
	default:
		a.log.Warn().Err(err).Msg("user refresh failed, keeping cached session")
	}
}

// Login authenticates and moves to Authenticated on success. On failure the
// status stays Unauthenticated and the reason is retained for display.
func (a *Authenticator) Login(ctx context.Context, in LoginInput) (*domain.User, error) {
	user, err := a.session.Login(ctx, in)
	if err != nil {
		a.setStatus(StatusUnauthenticated, err)
		return nil, err
	}
	a.setStatus(StatusAuthenticated, nil)
	return user, nil
}

// Logout moves to Unauthenticated from any state, unconditionally.
func (a *Authenticator) Logout(ctx context.Context) {
	a.session.Logout(ctx)
	a.setStatus(StatusUnauthenticated, nil)
}

// Status returns the current authentication state.
func (a *Authenticator) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Err returns the failure reason recorded by the last transition, if any.
func (a *Authenticator) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

func (a *Authenticator) setStatus(st Status, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = st
	a.lastErr = err
}
