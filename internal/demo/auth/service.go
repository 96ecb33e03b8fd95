// Package auth implements the demo backend's authentication: a fixed set of
// bcrypt-hashed demo accounts, HS256 access tokens with an exp claim, and
// rotating uuid refresh tokens held in a TTL store.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/barberbook/admin-console/internal/core/domain"
	"github.com/barberbook/admin-console/internal/demo/tokens"
)

type account struct {
	user domain.User
	hash []byte
}

// Service owns demo accounts and token issuance.
type Service struct {
	accounts map[string]account // keyed by email
	byID     map[string]account
	tokens   tokens.Store
	secret   string
	tokenTTL time.Duration
	refresh  time.Duration
	log      zerolog.Logger
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User         *domain.User
	Token        string
	RefreshToken string
}

// NewService seeds the demo accounts (all with password "password123") and
// returns a ready Service.
func NewService(tok tokens.Store, secret string, tokenTTL, refreshTTL time.Duration, log zerolog.Logger) (*Service, error) {
	s := &Service{
		accounts: make(map[string]account),
		byID:     make(map[string]account),
		tokens:   tok,
		secret:   secret,
		tokenTTL: tokenTTL,
		refresh:  refreshTTL,
		log:      log.With().Str("component", "demo-auth").Logger(),
	}

	seed := []struct {
		email, username, fullName, phone string
		role                             domain.Role
	}{
		{"admin@example.com", "admin", "Avery Admin", "+1-555-0100", domain.RoleAdmin},
		{"manager@example.com", "manager", "Morgan Manager", "+1-555-0101", domain.RoleManager},
		{"stylist@example.com", "stylist", "Sam Scissorhands", "+1-555-0102", domain.RoleStylist},
	}
	now := time.Now().UTC()
	for _, acc := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("seed demo accounts: %w", err)
		}
		user := domain.User{
			ID:            uuid.NewString(),
			Email:         acc.email,
			Username:      acc.username,
			FullName:      acc.fullName,
			Phone:         acc.phone,
			Role:          acc.role,
			IsActive:      true,
			EmailVerified: true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		entry := account{user: user, hash: hash}
		s.accounts[acc.email] = entry
		s.byID[user.ID] = entry
	}
	return s, nil
}

// Login checks the email/password pair and issues a token pair. Rejections
// surface as ErrInvalidCredentials without distinguishing unknown emails
// from wrong passwords.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	acc, ok := s.accounts[email]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	refreshToken := uuid.NewString()
	if err := s.tokens.Save(ctx, refreshToken, acc.user.ID, s.refresh); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	token, err := s.signToken(acc.user, refreshToken)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Str("role", string(acc.user.Role)).Msg("demo login")
	user := acc.user
	return &LoginResult{User: &user, Token: token, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a stored refresh token for a fresh access token. The
// refresh token itself stays valid until logout or expiry.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.Lookup(ctx, refreshToken)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	acc, ok := s.byID[userID]
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return s.signToken(acc.user, refreshToken)
}

// Logout revokes the refresh token referenced by the access token's sid
// claim.
func (s *Service) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, sid)
}

// UserByID returns the demo account's user record.
func (s *Service) UserByID(id string) (*domain.User, error) {
	acc, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user := acc.user
	return &user, nil
}

func (s *Service) signToken(user domain.User, sid string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"sid":   sid,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
