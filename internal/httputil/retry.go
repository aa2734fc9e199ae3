// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the paced, 429-aware HTTP execution used to
// talk to the Dimensions API.
package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const (
	defaultMaxRetries = 5
	defaultRateLimit  = 0.5
)

// Doer executes HTTP requests. *Retrier and *http.Client both satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Retrier paces requests through a token bucket and retries on HTTP 429
// (Too Many Requests) with exponential backoff.
type Retrier struct {
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
	logger     zerolog.Logger
}

// NewRetrier returns a Retrier around client. ratePerSecond <= 0 selects
// the Dimensions allowance of 30 requests per minute; maxRetries <= 0
// selects 5.
func NewRetrier(client *http.Client, ratePerSecond float64, maxRetries int, logger zerolog.Logger) *Retrier {
	if ratePerSecond <= 0 {
		ratePerSecond = defaultRateLimit
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Retrier{
		client:     client,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Do implements Doer using the request's context.
func (r *Retrier) Do(req *http.Request) (*http.Response, error) {
	return r.DoWithRetry(req.Context(), req)
}

// DoWithRetry executes req, waiting on the limiter before every attempt.
// On 429 the delay starts at RetryBaseDelay and doubles each attempt
// (10 s, 20 s, 40 s, ...) unless the server sends a Retry-After header,
// which takes precedence.
//
// Request bodies are replayed through req.GetBody, so requests built with
// http.NewRequest over a bytes or strings reader can be retried. If the
// context is cancelled while waiting the function returns ctx.Err().
// After exhausting retries the last 429 response is returned so the
// caller can inspect it.
func (r *Retrier) DoWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		attemptReq := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("rewinding request body: %w", err)
			}
			attemptReq.Body = body
		}

		resp, err := r.client.Do(attemptReq)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Out of retries: hand the 429 back to the caller.
		if attempt >= r.maxRetries {
			return resp, nil
		}

		backoff := retryDelay(resp, attempt)

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		r.logger.Warn().
			Dur("backoff", backoff).
			Int("attempt", attempt+1).
			Int("max_retries", r.maxRetries).
			Str("url", req.URL.Redacted()).
			Msg("rate limited, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// retryDelay reads a Retry-After header in seconds, falling back to
// exponential backoff from RetryBaseDelay.
func retryDelay(resp *http.Response, attempt int) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}
