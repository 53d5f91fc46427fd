package tools

import (
	"fmt"
	"log/slog"

	"github.com/tkhongsap/mcp-concept/internal/config"
	"github.com/tkhongsap/mcp-concept/internal/location"
	"github.com/tkhongsap/mcp-concept/internal/observability"
	"github.com/tkhongsap/mcp-concept/internal/providers/httpjson"
	"github.com/tkhongsap/mcp-concept/internal/providers/openstreetmap"
	"github.com/tkhongsap/mcp-concept/internal/weather"
)

// NewFromConfig builds the facade with real upstream clients
func NewFromConfig(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (*Service, error) {
	geocodeFetcher := httpjson.NewClient(httpjson.Config{
		Provider:  "nominatim",
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
	}, nil, metrics, logger)
	geocoder := openstreetmap.NewClientWithBaseURL(geocodeFetcher, cfg.Geocoder.BaseURL, logger)

	weatherService, err := weather.NewWeatherService(cfg, metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather service: %w", err)
	}

	return NewService(
		location.NewResolver(geocoder, logger),
		weatherService,
		cfg.Tools.Profile,
		metrics,
		logger,
	), nil
}
