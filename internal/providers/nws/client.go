package nws

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/tkhongsap/mcp-concept/internal/types"
)

// API Docs: https://www.weather.gov/documentation/services-web-api
// Sample requests:
// - https://api.weather.gov/points/39.1154,-107.65840
// - https://api.weather.gov/gridpoints/GJT/129,122/forecast
// - https://api.weather.gov/alerts/active?point=39.1154,-107.6584
const (
	baseURL = "https://api.weather.gov"

	// AcceptGeoJSON is the content type NWS documents for its resources
	AcceptGeoJSON = "application/geo+json"
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
		logger:  logger.With("component", "nws-client"),
	}
}

// GetPoint resolves a coordinate to its forecast office, grid and forecast URLs
func (c *Client) GetPoint(ctx context.Context, coords types.Coords) (*PointAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath("points", coords.PathValue())

	var apiResp PointAPIResponse
	if err := c.fetcher.GetJSON(ctx, u.String(), "points", &apiResp); err != nil {
		return nil, err
	}

	return &apiResp, nil
}

// GetForecast fetches a forecast resource by the absolute URL the point lookup returned.
// endpoint distinguishes "forecast" from "forecast_hourly" in metrics.
func (c *Client) GetForecast(ctx context.Context, forecastURL, endpoint string) (*ForecastAPIResponse, error) {
	if _, err := url.ParseRequestURI(forecastURL); err != nil {
		return nil, fmt.Errorf("invalid forecast URL %q: %w", forecastURL, err)
	}

	var apiResp ForecastAPIResponse
	if err := c.fetcher.GetJSON(ctx, forecastURL, endpoint, &apiResp); err != nil {
		return nil, err
	}

	return &apiResp, nil
}

// GetActiveAlerts fetches alerts currently in effect at a coordinate
func (c *Client) GetActiveAlerts(ctx context.Context, coords types.Coords) (*AlertsAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath("alerts", "active")
	// Kept literal: NWS documents point=lat,lon with a bare comma
	u.RawQuery = "point=" + coords.PathValue()

	var apiResp AlertsAPIResponse
	if err := c.fetcher.GetJSON(ctx, u.String(), "alerts", &apiResp); err != nil {
		return nil, err
	}

	return &apiResp, nil
}
