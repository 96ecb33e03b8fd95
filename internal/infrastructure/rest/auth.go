package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/barberbook/admin-console/internal/core/domain"
	"github.com/barberbook/admin-console/internal/core/ports"
)

// AuthClient implements ports.AuthAPI over the REST contract:
//
//	POST /auth/login    {email,password} → {user, token, refresh_token}
//	POST /auth/logout   (bearer)
//	POST /auth/refresh  {refresh_token}  → {token}
//	GET  /auth/me       (bearer)         → {user}
type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User         *domain.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	User *domain.User `json:"user"`
}

func (a *AuthClient) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	var resp loginResponse
	err := a.c.do(ctx, http.MethodPost, "/auth/login", "", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		// A 401 on login means the pair was rejected, not that a session
		// expired.
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if resp.User == nil || resp.Token == "" {
		return nil, fmt.Errorf("rest: malformed login response")
	}
	return &ports.LoginResult{User: resp.User, Token: resp.Token, RefreshToken: resp.RefreshToken}, nil
}

func (a *AuthClient) Logout(ctx context.Context, token string) error {
	return a.c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil, nil)
}

func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var resp refreshResponse
	err := a.c.do(ctx, http.MethodPost, "/auth/refresh", "", nil, refreshRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("rest: malformed refresh response")
	}
	return resp.Token, nil
}

func (a *AuthClient) Me(ctx context.Context, token string) (*domain.User, error) {
	var resp meResponse
	if err := a.c.do(ctx, http.MethodGet, "/auth/me", token, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("rest: malformed me response")
	}
	return resp.User, nil
}
