package weather

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkhongsap/mcp-concept/internal/providers/nws"
	"github.com/tkhongsap/mcp-concept/internal/types"
)

const (
	testForecastURL = "https://api.weather.gov/gridpoints/SEW/125,68/forecast"
	testHourlyURL   = "https://api.weather.gov/gridpoints/SEW/125,68/forecast/hourly"
)

var seattle = types.NewCoords(47.6062, -122.3321)

// Mock providers for testing

type mockForecastProvider struct {
	mu sync.Mutex

	point     *nws.PointAPIResponse
	pointErr  error
	forecasts map[string]*nws.ForecastAPIResponse
	errs      map[string]error
	alerts    *nws.AlertsAPIResponse
	alertsErr error
	// alertsWaitForCancel makes GetActiveAlerts hang until its context is canceled
	alertsWaitForCancel bool

	calls []string
}

func (m *mockForecastProvider) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockForecastProvider) called(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *mockForecastProvider) GetPoint(_ context.Context, _ types.Coords) (*nws.PointAPIResponse, error) {
	m.record("points")
	return m.point, m.pointErr
}

func (m *mockForecastProvider) GetForecast(_ context.Context, forecastURL, endpoint string) (*nws.ForecastAPIResponse, error) {
	m.record(endpoint)
	if err := m.errs[forecastURL]; err != nil {
		return nil, err
	}
	return m.forecasts[forecastURL], nil
}

func (m *mockForecastProvider) GetActiveAlerts(ctx context.Context, _ types.Coords) (*nws.AlertsAPIResponse, error) {
	m.record("alerts")
	if m.alertsWaitForCancel {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.alerts, m.alertsErr
}

type mockTimezoneService struct {
	zone string
}

func (m *mockTimezoneService) GetTimezone(_ types.Coords) (string, error) {
	return m.zone, nil
}

func (m *mockTimezoneService) Location(_ string, _ types.Coords) (*time.Location, error) {
	return time.LoadLocation(m.zone)
}

func testPoint() *nws.PointAPIResponse {
	var resp nws.PointAPIResponse
	resp.Properties.Cwa = "SEW"
	resp.Properties.GridId = "SEW"
	resp.Properties.GridX = 125
	resp.Properties.GridY = 68
	resp.Properties.Forecast = testForecastURL
	resp.Properties.ForecastHourly = testHourlyURL
	resp.Properties.TimeZone = "America/Los_Angeles"
	resp.Properties.RelativeLocation.Properties.City = "Seattle"
	resp.Properties.RelativeLocation.Properties.State = "WA"
	return &resp
}

func quantity(v float64) nws.Quantity {
	return nws.Quantity{Value: &v}
}

func testForecast(names ...string) *nws.ForecastAPIResponse {
	elevation := 56.08
	resp := &nws.ForecastAPIResponse{}
	resp.Properties.Elevation = &nws.QuantitativeValue{UnitCode: "wmoUnit:m", Value: &elevation}
	resp.Properties.Periods = []nws.ForecastPeriod{}
	for i, name := range names {
		resp.Properties.Periods = append(resp.Properties.Periods, nws.ForecastPeriod{
			Number:           i + 1,
			Name:             name,
			Temperature:      quantity(float64(50 + i)),
			TemperatureUnit:  "F",
			WindSpeed:        nws.Quantity{Text: "5 to 10 mph"},
			WindDirection:    "SW",
			ShortForecast:    "Rain",
			DetailedForecast: "Rain. High near 50.",
		})
	}
	return resp
}

func testProvider() *mockForecastProvider {
	return &mockForecastProvider{
		point: testPoint(),
		forecasts: map[string]*nws.ForecastAPIResponse{
			testForecastURL: testForecast("Tonight", "Monday", "Monday Night"),
			testHourlyURL:   testForecast("Now"),
		},
		errs:   map[string]error{},
		alerts: &nws.AlertsAPIResponse{},
	}
}

func testService(provider ForecastProvider) Service {
	return testServiceWithLogger(provider, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testServiceWithLogger(provider ForecastProvider, logger *slog.Logger) Service {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 21, 19, 0, 0, 0, time.UTC))
	return NewWeatherServiceWithProviders(
		provider,
		&mockTimezoneService{zone: "America/Los_Angeles"},
		clock,
		logger,
	)
}

func TestWeatherService_GetReport_Extended(t *testing.T) {
	provider := testProvider()
	provider.alerts = &nws.AlertsAPIResponse{Features: []nws.AlertFeature{
		{Properties: nws.AlertProperties{Event: "Wind Advisory", Severity: "Moderate"}},
	}}

	report, err := testService(provider).GetReport(context.Background(), seattle, ExtendedOptions(true))
	require.NoError(t, err)

	assert.Equal(t, seattle, report.Coords)
	assert.Equal(t, "Seattle, WA", report.Point.LocationName())
	assert.Equal(t, "SEW", report.Point.OfficeCode())

	require.Len(t, report.Periods, 3)
	assert.Equal(t, "Tonight", report.Periods[0].Name)
	assert.Equal(t, "50", report.Periods[0].Temperature)
	assert.Equal(t, "5 to 10 mph SW", report.Periods[0].DisplayWind())

	require.NotNil(t, report.Current)
	assert.Equal(t, "Now", report.Current.Name)

	require.NotNil(t, report.Elevation)
	assert.InDelta(t, 56.08, report.Elevation.Meters, 0.001)
	assert.InDelta(t, 184.0, report.Elevation.Feet, 0.1)

	require.NotNil(t, report.Sun)
	assert.Equal(t, "America/Los_Angeles", report.Sun.TimeZone)
	assert.True(t, report.Sun.Sunrise.Before(report.Sun.Sunset))
	assert.GreaterOrEqual(t, report.Sun.Sunrise.Hour(), 4)
	assert.LessOrEqual(t, report.Sun.Sunrise.Hour(), 6)
	assert.GreaterOrEqual(t, report.Sun.Sunset.Hour(), 20)
	assert.LessOrEqual(t, report.Sun.Sunset.Hour(), 21)

	assert.Equal(t, AlertsFetched, report.AlertStatus)
	require.Len(t, report.Alerts, 1)
	assert.Equal(t, "Wind Advisory", report.Alerts[0].Event)

	assert.Equal(t, 1, provider.called("points"))
	assert.Equal(t, 1, provider.called("forecast"))
	assert.Equal(t, 1, provider.called("forecast_hourly"))
	assert.Equal(t, 1, provider.called("alerts"))
}

func TestWeatherService_GetReport_SimpleSkipsOptionalStages(t *testing.T) {
	provider := testProvider()

	report, err := testService(provider).GetReport(context.Background(), seattle, SimpleOptions(false))
	require.NoError(t, err)

	assert.Nil(t, report.Current)
	assert.Nil(t, report.Sun)
	assert.Equal(t, AlertsNotRequested, report.AlertStatus)
	assert.Equal(t, 0, provider.called("forecast_hourly"))
	assert.Equal(t, 0, provider.called("alerts"), "alerts must not be fetched unless requested")
}

func TestWeatherService_GetReport_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*mockForecastProvider)
		wantErr error
	}{
		{
			name:    "point lookup fails",
			setup:   func(m *mockForecastProvider) { m.pointErr = errors.New("404") },
			wantErr: ErrNoPointData,
		},
		{
			name:    "point has no forecast URL",
			setup:   func(m *mockForecastProvider) { m.point.Properties.Forecast = "" },
			wantErr: ErrNoPointData,
		},
		{
			name:    "forecast lookup fails",
			setup:   func(m *mockForecastProvider) { m.errs[testForecastURL] = errors.New("500") },
			wantErr: ErrNoForecastData,
		},
		{
			name: "forecast has no periods",
			setup: func(m *mockForecastProvider) {
				m.forecasts[testForecastURL] = &nws.ForecastAPIResponse{}
			},
			wantErr: ErrNoForecastData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := testProvider()
			tt.setup(provider)

			report, err := testService(provider).GetReport(context.Background(), seattle, ExtendedOptions(true))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Nil(t, report)
		})
	}
}

func TestWeatherService_GetReport_NoPointDataSkipsForecast(t *testing.T) {
	provider := testProvider()
	provider.point.Properties.Forecast = ""

	_, err := testService(provider).GetReport(context.Background(), seattle, ExtendedOptions(true))
	require.ErrorIs(t, err, ErrNoPointData)
	assert.Equal(t, 0, provider.called("forecast"))
	assert.Equal(t, 0, provider.called("alerts"))
}

func TestWeatherService_GetReport_HourlyFailureIsNonFatal(t *testing.T) {
	provider := testProvider()
	provider.errs[testHourlyURL] = errors.New("503")

	report, err := testService(provider).GetReport(context.Background(), seattle, ExtendedOptions(false))
	require.NoError(t, err)
	assert.Nil(t, report.Current)
	assert.Len(t, report.Periods, 3)
}

func TestWeatherService_GetReport_NoHourlyURL(t *testing.T) {
	provider := testProvider()
	provider.point.Properties.ForecastHourly = ""

	report, err := testService(provider).GetReport(context.Background(), seattle, ExtendedOptions(false))
	require.NoError(t, err)
	assert.Nil(t, report.Current)
	assert.Equal(t, 0, provider.called("forecast_hourly"))
}

func TestWeatherService_GetReport_AlertsUnavailable(t *testing.T) {
	provider := testProvider()
	provider.alertsErr = errors.New("timeout")

	report, err := testService(provider).GetReport(context.Background(), seattle, SimpleOptions(true))
	require.NoError(t, err)
	assert.Equal(t, AlertsUnavailable, report.AlertStatus)
	assert.Empty(t, report.Alerts)
}

func TestWeatherService_GetAlerts(t *testing.T) {
	t.Run("empty feature list is not an error", func(t *testing.T) {
		provider := testProvider()
		alerts, err := testService(provider).GetAlerts(context.Background(), seattle)
		require.NoError(t, err)
		assert.NotNil(t, alerts)
		assert.Empty(t, alerts)
	})

	t.Run("provider order is preserved", func(t *testing.T) {
		provider := testProvider()
		provider.alerts = &nws.AlertsAPIResponse{Features: []nws.AlertFeature{
			{Properties: nws.AlertProperties{Event: "Flood Watch", AreaDesc: "King"}},
			{Properties: nws.AlertProperties{Event: "Wind Advisory", AreaDesc: "Pierce"}},
		}}

		alerts, err := testService(provider).GetAlerts(context.Background(), seattle)
		require.NoError(t, err)
		require.Len(t, alerts, 2)
		assert.Equal(t, "Flood Watch", alerts[0].Event)
		assert.Equal(t, "King", alerts[0].AreaDescription)
		assert.Equal(t, "Wind Advisory", alerts[1].Event)
	})

	t.Run("failure wraps ErrAlertsUnavailable", func(t *testing.T) {
		provider := testProvider()
		provider.alertsErr = errors.New("connection refused")

		_, err := testService(provider).GetAlerts(context.Background(), seattle)
		require.ErrorIs(t, err, ErrAlertsUnavailable)
	})
}

func TestWeatherService_GetReport_WithoutTimezoneService(t *testing.T) {
	svc := NewWeatherServiceWithProviders(testProvider(), nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	report, err := svc.GetReport(context.Background(), seattle, ExtendedOptions(false))
	require.NoError(t, err)
	assert.Nil(t, report.Sun)
}

func TestWeatherService_GetReport_ForecastFailureCancelsAlertsQuietly(t *testing.T) {
	provider := testProvider()
	provider.errs[testForecastURL] = errors.New("500")
	provider.alertsWaitForCancel = true

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := testServiceWithLogger(provider, logger).GetReport(context.Background(), seattle, SimpleOptions(true))
	require.ErrorIs(t, err, ErrNoForecastData)
	assert.Equal(t, 1, provider.called("alerts"))

	assert.Contains(t, logs.String(), "failed to get NWS forecast")
	assert.Contains(t, logs.String(), "active alerts request canceled")
	assert.NotContains(t, logs.String(), "failed to get NWS active alerts")
}
