package openstreetmap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/tkhongsap/mcp-concept/internal/types"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Search/
// Sample request: https://nominatim.openstreetmap.org/search?q=Seattle,+WA&format=json&limit=1&countrycodes=us
const (
	baseURL = "https://nominatim.openstreetmap.org"

	// NWS only covers the US
	countryCodes = "us"
)

var (
	// ErrUnavailable covers transport failures, non-2xx answers and undecodable payloads.
	ErrUnavailable = errors.New("geocoding service unavailable")
	// ErrNoMatch means the service answered but had no candidate for the query.
	ErrNoMatch = errors.New("no geocoding match")
)

// Fetcher is the shared HTTP plumbing the client runs on
type Fetcher interface {
	GetJSON(ctx context.Context, rawURL, endpoint string, out any) error
}

type Client struct {
	fetcher Fetcher
	baseURL string
	logger  *slog.Logger
}

func NewClient(fetcher Fetcher, logger *slog.Logger) *Client {
	return NewClientWithBaseURL(fetcher, baseURL, logger)
}

func NewClientWithBaseURL(fetcher Fetcher, base string, logger *slog.Logger) *Client {
	return &Client{
		fetcher: fetcher,
		baseURL: base,
		logger:  logger.With("component", "nominatim-client"),
	}
}

// Search returns the coordinates of the best US match for query
func (c *Client) Search(ctx context.Context, query string) (types.Coords, error) {
	// Build URL with query parameters
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return types.Coords{}, fmt.Errorf("%w: failed to parse base URL: %v", ErrUnavailable, err)
	}
	u = u.JoinPath("search")

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("countrycodes", countryCodes)
	u.RawQuery = q.Encode()

	var apiResp SearchAPIResponse
	if err := c.fetcher.GetJSON(ctx, u.String(), "search", &apiResp); err != nil {
		return types.Coords{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if len(apiResp) == 0 {
		c.logger.Debug("no geocoding match", "query", query)
		return types.Coords{}, ErrNoMatch
	}

	best := apiResp[0]
	if !best.Lat.Valid || !best.Lon.Valid {
		return types.Coords{}, fmt.Errorf("%w: match %q has no coordinates", ErrUnavailable, best.DisplayName)
	}

	coords := types.NewCoords(best.Lat.Value, best.Lon.Value)
	if err := coords.Validate(); err != nil {
		return types.Coords{}, fmt.Errorf("%w: match %q: %w", ErrUnavailable, best.DisplayName, err)
	}

	c.logger.Debug("geocoded location",
		"query", query,
		"display_name", best.DisplayName,
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
	)
	return coords, nil
}
