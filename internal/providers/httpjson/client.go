// Package httpjson performs the single bounded GET + JSON decode that every
// upstream provider in this module is built on.
package httpjson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tkhongsap/mcp-concept/internal/observability"
)

// maxErrorBody bounds how much of a non-2xx body ends up in a StatusError.
const maxErrorBody = 512

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch returned status %d: %s", e.StatusCode, e.Body)
}

// Config describes one upstream provider.
type Config struct {
	Provider  string // metrics label, e.g. "nws"
	UserAgent string
	Accept    string // optional content negotiation
	Timeout   time.Duration
}

// Client issues GET requests against one provider.
type Client struct {
	httpClient *http.Client
	cfg        Config
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a client with its own http.Client bounded by cfg.Timeout.
// Redirects are followed by the standard client policy.
func NewClient(cfg Config, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return NewClientWithHTTPClient(&http.Client{Timeout: cfg.Timeout}, cfg, clock, metrics, logger)
}

// NewClientWithHTTPClient creates a client around a caller-supplied http.Client
func NewClientWithHTTPClient(httpClient *http.Client, cfg Config, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		clock:      clock,
		metrics:    metrics,
		logger:     logger.With("provider", cfg.Provider),
	}
}

// GetJSON fetches rawURL and decodes the body into out. endpoint is a short,
// low-cardinality name used for metrics and logs.
func (c *Client) GetJSON(ctx context.Context, rawURL, endpoint string, out any) error {
	start := c.clock.Now()
	err := c.getJSON(ctx, rawURL, out)
	elapsed := c.clock.Since(start)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	if c.metrics != nil {
		c.metrics.UpstreamRequests.WithLabelValues(c.cfg.Provider, endpoint, outcome).Inc()
		c.metrics.UpstreamDuration.WithLabelValues(c.cfg.Provider, endpoint).Observe(elapsed.Seconds())
	}

	if err != nil {
		c.logger.Error("upstream request failed",
			"endpoint", endpoint,
			"url", rawURL,
			"elapsed", elapsed,
			"error", err,
		)
		return err
	}

	c.logger.Debug("upstream request succeeded",
		"endpoint", endpoint,
		"url", rawURL,
		"elapsed", elapsed,
	)
	return nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.Accept != "" {
		req.Header.Set("Accept", c.cfg.Accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
