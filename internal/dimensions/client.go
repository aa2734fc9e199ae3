// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dimensions talks to the Dimensions Analytics API: it exchanges
// an API key for a session token and submits DSL query strings, decoding
// the JSON response into records, stats, and server-reported errors.
package dimensions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/dimensions-query/internal/httputil"
)

const (
	authPath = "/api/auth.json"
	dslPath  = "/api/dsl/v2"

	// maxResponseBytes bounds how much of a response body is decoded.
	maxResponseBytes = 64 << 20
)

// Client is an authenticated session with a Dimensions instance. It is
// established once and held for the life of the process; there is no
// explicit teardown.
type Client struct {
	doer      httputil.Doer
	endpoint  string
	token     string
	userAgent string
	logger    zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the client's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Login exchanges key for a session token at endpoint.
func Login(ctx context.Context, doer httputil.Doer, endpoint, key string, opts ...Option) (*Client, error) {
	c := &Client{
		doer:     doer,
		endpoint: strings.TrimRight(endpoint, "/"),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	payload, err := json.Marshal(map[string]string{"key": key})
	if err != nil {
		return nil, fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+authPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Dimensions login request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newServiceError("login", resp.StatusCode, body)
	}

	var auth struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &auth); err != nil {
		return nil, fmt.Errorf("parsing login response: %w", err)
	}
	if auth.Token == "" {
		return nil, &ServiceError{Op: "login", StatusCode: resp.StatusCode, Messages: []string{"no token in response"}}
	}

	c.token = auth.Token
	c.logger.Debug().Str("endpoint", c.endpoint).Msg("logged in")
	return c, nil
}

// Endpoint returns the base URL the client is bound to.
func (c *Client) Endpoint() string { return c.endpoint }

// Query submits a DSL string and decodes the response. A non-200 status is
// reported as a *ServiceError. A 200 response that carries an errors
// object is returned without a Go error and with Response.Errors set.
func (c *Client) Query(ctx context.Context, dsl string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+dslPath, strings.NewReader(dsl))
	if err != nil {
		return nil, fmt.Errorf("creating query request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Authorization", "JWT "+c.token)
	c.setHeaders(req)

	c.logger.Debug().Str("dsl", dsl).Msg("submitting query")

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Dimensions query request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading query response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newServiceError("query", resp.StatusCode, body)
	}

	out, err := decodeResponse(body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().
		Int("total_count", out.Stats.TotalCount).
		Int("records", len(out.Records)).
		Str("kind", out.Kind).
		Msg("query complete")
	return out, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}
