// Package enrich provides the HTTP adapter for the remote enrichment
// service.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driven"
	"github.com/leadlens-labs/leadlens-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Enricher = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 2.0
	DefaultBurstSize         = 3
)

// enrichPath is the enrichment endpoint path under the base URL.
const enrichPath = "/api/enrich"

// TokenSource mints a bearer token for an outbound call.
// driven.IdentityProvider satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Config holds configuration for the enrichment client.
type Config struct {
	// BaseURL is the service base URL (required).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond is the sustained client-side rate limit
	// (default: 2/s). The limiter smooths rapid repeated submissions
	// before they reach the service.
	RequestsPerSecond float64

	// BurstSize is the maximum burst size (default: 3).
	BurstSize int
}

// Client issues enrichment requests. Every call fetches a fresh bearer
// token from its token source; tokens are never cached across calls.
type Client struct {
	client  *http.Client
	tokens  TokenSource
	limiter *rate.Limiter

	// mu guards baseURL, which the config watcher rewrites while
	// requests are in flight.
	mu      sync.RWMutex
	baseURL string
}

// NewClient creates a new enrichment client.
func NewClient(cfg Config, tokens TokenSource) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("enrich: base URL is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("enrich: token source is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = DefaultBurstSize
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}, nil
}

// SetBaseURL swaps the service base URL, used when configuration is
// reloaded at runtime. In-flight requests keep the URL they started with.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// Enrich submits the input and returns the parsed response body. The
// caller sees only domain.ErrEnrichmentFailed on any transport failure;
// the underlying detail is wrapped for logs, never for the UI. An
// interrupted wait on the client-side rate limiter surfaces as
// domain.ErrRateLimited instead, since no request went out. There is
// no automatic retry.
func (c *Client) Enrich(ctx context.Context, input domain.SubmissionInput) (domain.EnrichmentRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}

	// Fresh token immediately before the call; tokens may rotate.
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: minting token: %w", domain.ErrEnrichmentFailed, err)
	}

	jsonBody, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %w", domain.ErrEnrichmentFailed, err)
	}

	c.mu.RLock()
	base := c.baseURL
	c.mu.RUnlock()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		base+enrichPath,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrEnrichmentFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %w", domain.ErrEnrichmentFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrEnrichmentFailed, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Debug("enrichment request failed with status %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrEnrichmentFailed, resp.StatusCode)
	}

	var record domain.EnrichmentRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrEnrichmentFailed, err)
	}

	return record, nil
}
