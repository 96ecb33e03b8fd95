// Package rest implements the HTTP side of the console: the auth endpoints
// the session manager depends on and the generic paginated resource client
// every list screen shares.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/barberbook/admin-console/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-success backend response that is neither a transport
// failure nor an authorization failure.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Client is a thin JSON client for the booking backend. Failures are
// normalized once here so callers only ever deal with domain sentinels or
// *APIError, never raw transport errors.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client (tests, transports).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(baseURL string, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log.With().Str("component", "rest").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorEnvelope matches the backend's canonical {"error": "..."} shape.
type errorEnvelope struct {
	Error string `json:"error"`
}

// do issues one JSON request. body and out may be nil. query may be nil.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("rest: marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("rest: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var env errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
		default:
			return &APIError{Status: resp.StatusCode, Message: msg}
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rest: decode response: %w", err)
	}
	return nil
}
