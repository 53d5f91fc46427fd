// Package tools exposes the weather pipeline as operations that always answer
// with text. Failures never escape as errors; they become messages starting
// with FailureMarker.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tkhongsap/mcp-concept/internal/config"
	"github.com/tkhongsap/mcp-concept/internal/location"
	"github.com/tkhongsap/mcp-concept/internal/observability"
	"github.com/tkhongsap/mcp-concept/internal/report"
	"github.com/tkhongsap/mcp-concept/internal/weather"
)

const (
	FailureMarker = "❌"

	ToolGetWeather           = "get_weather"
	ToolGetWeatherAlertsOnly = "get_weather_alerts_only"
)

// Invocation outcomes, used as the metrics label
const (
	outcomeSuccess       = "success"
	outcomeInvalidInput  = "invalid_input"
	outcomeNotFound      = "not_found"
	outcomeUpstreamError = "upstream_error"
	outcomePanic         = "panic"
)

type Service struct {
	resolver location.Resolver
	weather  weather.Service
	profile  string
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewService creates the tool facade. profile is config.ProfileExtended or
// config.ProfileSimple; metrics may be nil.
func NewService(
	resolver location.Resolver,
	weatherService weather.Service,
	profile string,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		resolver: resolver,
		weather:  weatherService,
		profile:  profile,
		metrics:  metrics,
		logger:   logger.With("component", "tools"),
	}
}

// OptionsForProfile maps a profile name to pipeline options. Unknown names get the extended profile.
func OptionsForProfile(profile string, includeAlerts bool) weather.Options {
	if strings.EqualFold(profile, config.ProfileSimple) {
		return weather.SimpleOptions(includeAlerts)
	}
	return weather.ExtendedOptions(includeAlerts)
}

// GetWeather returns the forecast for location using the configured profile
func (s *Service) GetWeather(ctx context.Context, location string, includeAlerts bool) string {
	return s.GetWeatherWithProfile(ctx, location, includeAlerts, s.profile)
}

// GetWeatherWithProfile is GetWeather with an explicit profile
func (s *Service) GetWeatherWithProfile(ctx context.Context, location string, includeAlerts bool, profile string) (result string) {
	outcome := outcomeSuccess
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("recovered panic in get_weather", "location", location, "panic", r)
			outcome = outcomePanic
			result = fmt.Sprintf("%s Error retrieving weather data: %v", FailureMarker, r)
		}
		s.record(ToolGetWeather, outcome)
	}()

	coords, err := s.resolver.Resolve(ctx, location)
	if err != nil {
		outcome, result = s.resolutionFailure(location, err)
		return result
	}

	opts := OptionsForProfile(profile, includeAlerts)
	s.logger.Info("getting weather",
		"location", location,
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"profile", profile,
		"include_alerts", includeAlerts,
	)

	r, err := s.weather.GetReport(ctx, coords, opts)
	if err != nil {
		s.logger.Error("failed to get weather report", "location", location, "error", err)
		outcome = outcomeUpstreamError
		return fmt.Sprintf("%s Could not retrieve weather data for %s. The location may be outside the US or the NWS service may be unavailable.", FailureMarker, location)
	}

	return report.Weather(r, opts)
}

// GetWeatherAlertsOnly returns the active alerts for location
func (s *Service) GetWeatherAlertsOnly(ctx context.Context, location string) (result string) {
	outcome := outcomeSuccess
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("recovered panic in get_weather_alerts_only", "location", location, "panic", r)
			outcome = outcomePanic
			result = fmt.Sprintf("%s Error retrieving weather alerts: %v", FailureMarker, r)
		}
		s.record(ToolGetWeatherAlertsOnly, outcome)
	}()

	coords, err := s.resolver.Resolve(ctx, location)
	if err != nil {
		outcome, result = s.resolutionFailure(location, err)
		return result
	}

	s.logger.Info("getting weather alerts",
		"location", location,
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
	)

	alerts, err := s.weather.GetAlerts(ctx, coords)
	if err != nil {
		s.logger.Error("failed to get weather alerts", "location", location, "error", err)
		outcome = outcomeUpstreamError
		return fmt.Sprintf("%s Could not retrieve weather alerts for %s. The NWS alerts service may be unavailable.", FailureMarker, location)
	}

	return report.Alerts(location, coords, alerts)
}

func (s *Service) resolutionFailure(loc string, err error) (string, string) {
	if errors.Is(err, location.ErrInvalidCoordinateFormat) {
		s.logger.Warn("invalid coordinates", "location", loc, "error", err)
		return outcomeInvalidInput, fmt.Sprintf("%s Could not parse coordinates for location: %s. Use \"latitude,longitude\" (e.g. \"47.6062,-122.3321\").", FailureMarker, loc)
	}

	s.logger.Warn("location not found", "location", loc, "error", err)
	return outcomeNotFound, fmt.Sprintf("%s Could not find coordinates for location: %s. Please ensure it's a valid US location.", FailureMarker, loc)
}

func (s *Service) record(tool, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ToolInvocations.WithLabelValues(tool, outcome).Inc()
}
