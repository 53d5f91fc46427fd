package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/sixdouglas/suncalc"
	"github.com/tkhongsap/mcp-concept/internal/config"
	"github.com/tkhongsap/mcp-concept/internal/observability"
	"github.com/tkhongsap/mcp-concept/internal/providers/httpjson"
	"github.com/tkhongsap/mcp-concept/internal/providers/nws"
	"github.com/tkhongsap/mcp-concept/internal/timezone"
	"github.com/tkhongsap/mcp-concept/internal/types"
)

var (
	ErrNoPointData       = errors.New("no point data")
	ErrNoForecastData    = errors.New("no forecast data")
	ErrAlertsUnavailable = errors.New("alerts unavailable")
)

// ForecastProvider is the NWS surface the service depends on
type ForecastProvider interface {
	GetPoint(ctx context.Context, coords types.Coords) (*nws.PointAPIResponse, error)
	GetForecast(ctx context.Context, forecastURL, endpoint string) (*nws.ForecastAPIResponse, error)
	GetActiveAlerts(ctx context.Context, coords types.Coords) (*nws.AlertsAPIResponse, error)
}

type Service interface {
	// GetReport runs point -> forecast -> [hourly] [alerts] for coords
	GetReport(ctx context.Context, coords types.Coords, opts Options) (*Report, error)
	// GetAlerts returns active alerts for coords; an empty slice means none are in effect
	GetAlerts(ctx context.Context, coords types.Coords) ([]Alert, error)
}

type weatherService struct {
	provider        ForecastProvider
	timezoneService timezone.Service
	clock           clockwork.Clock
	logger          *slog.Logger
}

func NewWeatherService(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (Service, error) {
	tzSvc, err := timezone.NewService()
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone service: %w", err)
	}

	fetcher := httpjson.NewClient(httpjson.Config{
		Provider:  "nws",
		UserAgent: cfg.UserAgent,
		Accept:    nws.AcceptGeoJSON,
		Timeout:   cfg.NWS.Timeout,
	}, nil, metrics, logger)

	return NewWeatherServiceWithProviders(
		nws.NewClientWithBaseURL(fetcher, cfg.NWS.BaseURL, logger),
		tzSvc,
		clockwork.NewRealClock(),
		logger,
	), nil
}

// NewWeatherServiceWithProviders creates a weather service with custom providers.
// timezoneService may be nil, in which case reports carry no sun times.
func NewWeatherServiceWithProviders(
	provider ForecastProvider,
	timezoneService timezone.Service,
	clock clockwork.Clock,
	logger *slog.Logger,
) Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &weatherService{
		provider:        provider,
		timezoneService: timezoneService,
		clock:           clock,
		logger:          logger.With("component", "weather-service"),
	}
}

func (s *weatherService) GetReport(ctx context.Context, coords types.Coords, opts Options) (*Report, error) {
	pointResp, err := s.provider.GetPoint(ctx, coords)
	if err != nil {
		s.logger.Error("failed to get NWS point data",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrNoPointData, err)
	}

	point := mapPoint(pointResp)
	if point.ForecastURL == "" {
		s.logger.Warn("NWS point data has no forecast URL",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
		)
		return nil, fmt.Errorf("%w: no forecast URL for %s", ErrNoPointData, coords.PathValue())
	}

	// A failed forecast makes the hourly and alerts results worthless
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg           sync.WaitGroup
		forecastResp *nws.ForecastAPIResponse
		hourlyResp   *nws.ForecastAPIResponse
		alerts       []Alert
		forecastErr  error
		hourlyErr    error
		alertsErr    error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		forecastResp, forecastErr = s.provider.GetForecast(ctx, point.ForecastURL, "forecast")
		if forecastErr != nil {
			cancel()
		}
	}()

	fetchHourly := opts.IncludeCurrent && point.ForecastHourlyURL != ""
	if fetchHourly {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hourlyResp, hourlyErr = s.provider.GetForecast(ctx, point.ForecastHourlyURL, "forecast_hourly")
		}()
	}

	if opts.IncludeAlerts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			alerts, alertsErr = s.GetAlerts(ctx, coords)
		}()
	}

	wg.Wait()

	if forecastErr != nil {
		s.logger.Error("failed to get NWS forecast", "url", point.ForecastURL, "error", forecastErr)
		return nil, fmt.Errorf("%w: %w", ErrNoForecastData, forecastErr)
	}
	if forecastResp == nil || forecastResp.Properties.Periods == nil {
		s.logger.Warn("NWS forecast has no periods", "url", point.ForecastURL)
		return nil, fmt.Errorf("%w: forecast has no periods", ErrNoForecastData)
	}

	report := &Report{
		Coords:    coords,
		Point:     point,
		Periods:   mapPeriods(forecastResp.Properties.Periods),
		Elevation: mapElevation(forecastResp.Properties.Elevation),
	}

	if fetchHourly {
		switch {
		case hourlyErr != nil:
			s.logger.Warn("omitting current conditions", "url", point.ForecastHourlyURL, "error", hourlyErr)
		case hourlyResp != nil && len(hourlyResp.Properties.Periods) > 0:
			current := mapPeriod(hourlyResp.Properties.Periods[0])
			report.Current = &current
		}
	}

	if opts.IncludeAlerts {
		if alertsErr != nil {
			report.AlertStatus = AlertsUnavailable
		} else {
			report.AlertStatus = AlertsFetched
			report.Alerts = alerts
		}
	}

	if opts.IncludeSun {
		report.Sun = s.sunTimes(coords, point.TimeZone)
	}

	return report, nil
}

func (s *weatherService) GetAlerts(ctx context.Context, coords types.Coords) ([]Alert, error) {
	resp, err := s.provider.GetActiveAlerts(ctx, coords)
	if err != nil && ctx.Err() != nil {
		// Caller gave up, e.g. GetReport after a failed forecast
		s.logger.Debug("active alerts request canceled", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrAlertsUnavailable, err)
	}
	if err != nil {
		s.logger.Error("failed to get NWS active alerts",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrAlertsUnavailable, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrAlertsUnavailable)
	}

	alerts := mapAlerts(resp.Features)
	s.logger.Debug("fetched active alerts", "count", len(alerts))
	return alerts, nil
}

func (s *weatherService) sunTimes(coords types.Coords, zoneName string) *SunTimes {
	if s.timezoneService == nil {
		return nil
	}

	loc, err := s.timezoneService.Location(zoneName, coords)
	if err != nil {
		s.logger.Debug("skipping sun times", "error", err)
		return nil
	}

	now := s.clock.Now().In(loc)
	times := suncalc.GetTimes(now, coords.Latitude, coords.Longitude)
	sunrise := times["sunrise"].Value
	sunset := times["sunset"].Value
	// Polar day or night
	if sunrise.IsZero() || sunset.IsZero() {
		return nil
	}

	return &SunTimes{
		Sunrise:  sunrise.In(loc),
		Sunset:   sunset.In(loc),
		TimeZone: loc.String(),
	}
}
