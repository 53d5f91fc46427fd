//go:build integration

package nws

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/tkhongsap/mcp-concept/internal/observability"
	"github.com/tkhongsap/mcp-concept/internal/providers/httpjson"
	"github.com/tkhongsap/mcp-concept/internal/types"
)

func integrationClient() *Client {
	// Create logger for test
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	fetcher := httpjson.NewClient(httpjson.Config{
		Provider:  "nws",
		UserAgent: "mcp-weather-server/1.0 (integration test)",
		Accept:    AcceptGeoJSON,
		Timeout:   30 * time.Second,
	}, nil, observability.NewMetricsForTesting(), logger)
	return NewClient(fetcher, logger)
}

func TestClient_GetPoint_Integration(t *testing.T) {
	// Test coordinates: Aspen, CO area
	coords := types.NewCoords(39.11539, -107.65840)
	client := integrationClient()

	t.Logf("Making API call to NWS Points API...")
	t.Logf("Coordinates: lat=%f, lon=%f", coords.Latitude, coords.Longitude)

	resp, err := client.GetPoint(context.Background(), coords)
	if err != nil {
		t.Fatalf("Failed to get point data: %v", err)
	}

	// Pretty print the raw response
	rawJSON, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	t.Logf("Raw API Response:\n%s", string(rawJSON))

	t.Logf("Point Details:")
	t.Logf("  CWA: %s", resp.Properties.Cwa)
	t.Logf("  Grid ID: %s", resp.Properties.GridId)
	t.Logf("  Time Zone: %s", resp.Properties.TimeZone)

	if resp.Properties.Cwa == "" {
		t.Error("CWA is empty")
	}
	if resp.Properties.Forecast == "" {
		t.Fatal("Forecast URL is empty")
	}
	if resp.Properties.ForecastHourly == "" {
		t.Error("ForecastHourly URL is empty")
	}

	forecast, err := client.GetForecast(context.Background(), resp.Properties.Forecast, "forecast")
	if err != nil {
		t.Fatalf("Failed to get forecast: %v", err)
	}
	if len(forecast.Properties.Periods) == 0 {
		t.Error("Forecast has no periods")
	} else {
		p := forecast.Properties.Periods[0]
		t.Logf("  First period: %s %s°%s %s", p.Name, p.Temperature, p.TemperatureUnit, p.ShortForecast)
	}

	t.Log("✓ GetPoint/GetForecast API calls successful, response structure valid")
}

func TestClient_GetActiveAlerts_Integration(t *testing.T) {
	client := integrationClient()

	resp, err := client.GetActiveAlerts(context.Background(), types.NewCoords(39.11539, -107.65840))
	if err != nil {
		t.Fatalf("Failed to get alerts: %v", err)
	}

	t.Logf("Active alerts: %d", len(resp.Features))
	for _, f := range resp.Features {
		t.Logf("  %s (%s): %s", f.Properties.Event, f.Properties.Severity, f.Properties.AreaDesc)
	}

	t.Log("✓ GetActiveAlerts API call successful")
}
