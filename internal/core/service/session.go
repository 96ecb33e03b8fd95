package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/barberbook/admin-console/internal/core/domain"
	"github.com/barberbook/admin-console/internal/core/ports"
)

// SessionManager is the single authority for login, logout, token refresh and
// current-user retrieval, and the only component permitted to write to the
// credential stores. All state-changing operations are serialized by an
// internal mutex so a login can never race a logout into torn state.
type SessionManager struct {
	mu        sync.Mutex
	api       ports.AuthAPI
	durable   ports.CredentialStore
	ephemeral ports.CredentialStore
	log       zerolog.Logger

	user         *domain.User
	token        string
	refreshToken string
	remember     bool
}

// LoginInput carries the credentials and the storage choice for a login.
type LoginInput struct {
	Email    string
	Password string
	// Remember selects the durable store for the token pair. The cached user
	// record goes to the durable store regardless.
	Remember bool
}

func NewSessionManager(api ports.AuthAPI, durable, ephemeral ports.CredentialStore, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		api:       api,
		durable:   durable,
		ephemeral: ephemeral,
		log:       log.With().Str("component", "session").Logger(),
	}
}

// Login authenticates against the backend. On success the in-memory session
// is populated and credentials are persisted: the token pair to the store
// selected by Remember, the user record to the durable store always. On any
// failure the in-memory session is left fully cleared, never partially set.
func (s *SessionManager) Login(ctx context.Context, in LoginInput) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.api.Login(ctx, in.Email, in.Password)
	if err != nil {
		s.clearMemoryLocked()
		return nil, err
	}

	s.user = res.User
	s.token = res.Token
	s.refreshToken = res.RefreshToken
	s.remember = in.Remember

	creds := ports.Credentials{Token: res.Token, RefreshToken: res.RefreshToken}
	if err := s.tokenStoreLocked().SaveTokens(creds); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist tokens")
	}
	if err := s.durable.SaveUser(res.User); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist user record")
	}

	s.log.Info().Str("email", in.Email).Bool("remember", in.Remember).Msg("logged in")
	return cloneUser(res.User), nil
}

// Logout invalidates the token server-side on a best-effort basis (failures
// are logged, never propagated), then unconditionally clears the in-memory
// session and both storage locations. It cannot fail from the caller's view.
func (s *SessionManager) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		if err := s.api.Logout(ctx, s.token); err != nil {
			s.log.Warn().Err(err).Msg("server-side logout failed")
		}
	}
	s.clearAllLocked()
	s.log.Info().Msg("logged out")
}

// Refresh exchanges the stored refresh token for a new access token,
// persisting it to the same store the refresh token was read from (durable
// checked first). ErrNoRefreshToken and ErrRefreshFailed clear the entire
// session as a side effect; a transport failure is returned as ErrNetwork
// and leaves the session untouched.
func (s *SessionManager) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, creds := s.findRefreshTokenLocked()
	if creds.RefreshToken == "" {
		s.clearAllLocked()
		return domain.ErrNoRefreshToken
	}

	token, err := s.api.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrNetwork) {
			return err
		}
		s.clearAllLocked()
		return fmt.Errorf("%w: %v", domain.ErrRefreshFailed, err)
	}

	s.token = token
	s.refreshToken = creds.RefreshToken
	if err := store.SaveTokens(ports.Credentials{Token: token, RefreshToken: creds.RefreshToken}); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist refreshed token")
	}

	s.log.Debug().Msg("access token refreshed")
	return nil
}

// CurrentUser fetches the latest user record from the backend and overwrites
// both the in-memory and the durable persisted copy wholesale. It requires
// an existing token and fails with ErrNotAuthenticated otherwise.
func (s *SessionManager) CurrentUser(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	user, err := s.api.Me(ctx, s.token)
	if err != nil {
		return nil, err
	}

	s.user = user
	if err := s.durable.SaveUser(user); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist user record")
	}
	return cloneUser(user), nil
}

// Restore loads cached credentials and user from the stores (durable first)
// without touching the network. It returns true when both a token and a user
// record were found. A corrupted user record clears both stores and restores
// nothing, failing safe.
func (s *SessionManager) Restore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.durable.User()
	if err != nil {
		s.log.Warn().Err(err).Msg("corrupted cached user, clearing stores")
		s.clearAllLocked()
		return false
	}

	store, creds := s.findTokensLocked()
	if creds.Empty() || user == nil {
		// A half-present session (token without user or vice versa) is as
		// good as none; wipe it rather than restore something inconsistent.
		if !creds.Empty() || user != nil {
			s.clearAllLocked()
		}
		return false
	}

	s.user = user
	s.token = creds.Token
	s.refreshToken = creds.RefreshToken
	s.remember = store == s.durable
	return true
}

// IsAuthenticated reports whether both a user and a token are present. It is
// derived state and can never be true while either is absent.
func (s *SessionManager) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

// User returns a copy of the current user, or nil.
func (s *SessionManager) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneUser(s.user)
}

// Token returns the current access token, empty when logged out.
func (s *SessionManager) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsTokenExpired decodes the token's exp claim without verifying the
// signature and compares it to the current time. This is a client-side UX
// hint only, never a security boundary; the backend remains the authority.
// A missing or malformed token is reported as expired, failing safe. An
// empty argument checks the session's current token.
func (s *SessionManager) IsTokenExpired(token string) bool {
	if token == "" {
		token = s.Token()
	}
	return TokenExpired(token, time.Now())
}

// TokenExpired reports whether tok's embedded exp claim is absent, unreadable
// or in the past relative to now. The signature is deliberately not checked.
func TokenExpired(tok string, now time.Time) bool {
	if tok == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(now)
}

// findRefreshTokenLocked returns the store holding a refresh token and its
// contents, checking the durable location first.
func (s *SessionManager) findRefreshTokenLocked() (ports.CredentialStore, ports.Credentials) {
	if creds, err := s.durable.Tokens(); err == nil && creds.RefreshToken != "" {
		return s.durable, creds
	} else if err != nil {
		s.log.Warn().Err(err).Msg("failed to read durable tokens")
	}
	if creds, err := s.ephemeral.Tokens(); err == nil && creds.RefreshToken != "" {
		return s.ephemeral, creds
	}
	return s.durable, ports.Credentials{}
}

// findTokensLocked returns the store holding an access token and its
// contents, checking the durable location first.
func (s *SessionManager) findTokensLocked() (ports.CredentialStore, ports.Credentials) {
	if creds, err := s.durable.Tokens(); err == nil && creds.Token != "" {
		return s.durable, creds
	}
	if creds, err := s.ephemeral.Tokens(); err == nil && creds.Token != "" {
		return s.ephemeral, creds
	}
	return s.durable, ports.Credentials{}
}

// tokenStoreLocked is the store selected by the remember flag at login time.
func (s *SessionManager) tokenStoreLocked() ports.CredentialStore {
	if s.remember {
		return s.durable
	}
	return s.ephemeral
}

func (s *SessionManager) clearMemoryLocked() {
	s.user = nil
	s.token = ""
	s.refreshToken = ""
}

// clearAllLocked wipes memory and both storage locations. Writing goes to one
// store, clearing always hits both: that asymmetry is the contract.
func (s *SessionManager) clearAllLocked() {
	s.clearMemoryLocked()
	if err := s.durable.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear durable store")
	}
	if err := s.ephemeral.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear ephemeral store")
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
