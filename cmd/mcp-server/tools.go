package main

import (
	"context"

	"github.com/localrivet/gomcp/server"
	"github.com/tkhongsap/mcp-concept/internal/tools"
)

// WeatherTools is the facade the MCP handlers delegate to
type WeatherTools interface {
	GetWeather(ctx context.Context, location string, includeAlerts bool) string
	GetWeatherAlertsOnly(ctx context.Context, location string) string
}

// GetWeatherArgs are the arguments of get_weather
type GetWeatherArgs struct {
	Location      string `json:"location" description:"City and state (e.g. \"Seattle, WA\") or coordinates (e.g. \"47.6062,-122.3321\")" required:"true"`
	IncludeAlerts bool   `json:"include_alerts" description:"Whether to include active weather alerts"`
}

// GetWeatherAlertsOnlyArgs are the arguments of get_weather_alerts_only
type GetWeatherAlertsOnlyArgs struct {
	Location string `json:"location" description:"City and state (e.g. \"Seattle, WA\") or coordinates (e.g. \"47.6062,-122.3321\")" required:"true"`
}

func registerTools(srv server.Server, weatherTools WeatherTools) {
	srv.Tool(tools.ToolGetWeather,
		"Get the weather forecast for a US location using the National Weather Service API",
		func(ctx *server.Context, args GetWeatherArgs) (string, error) {
			reqCtx, cancel := requestContext(ctx)
			defer cancel()
			return getWeather(reqCtx, weatherTools, args), nil
		})

	srv.Tool(tools.ToolGetWeatherAlertsOnly,
		"Get active weather alerts for a US location",
		func(ctx *server.Context, args GetWeatherAlertsOnlyArgs) (string, error) {
			reqCtx, cancel := requestContext(ctx)
			defer cancel()
			return getWeatherAlertsOnly(reqCtx, weatherTools, args), nil
		})
}

func getWeather(ctx context.Context, weatherTools WeatherTools, args GetWeatherArgs) string {
	return weatherTools.GetWeather(ctx, args.Location, args.IncludeAlerts)
}

func getWeatherAlertsOnly(ctx context.Context, weatherTools WeatherTools, args GetWeatherAlertsOnlyArgs) string {
	return weatherTools.GetWeatherAlertsOnly(ctx, args.Location)
}

// requestContext bridges the tool call's cancellation into a context.Context,
// since server.Context does not implement it
func requestContext(ctx *server.Context) (context.Context, context.CancelFunc) {
	reqCtx, cancel := context.WithCancel(context.Background())
	if ctx == nil {
		return reqCtx, cancel
	}

	done := ctx.Done()
	go func() {
		select {
		case <-done:
			cancel()
		case <-reqCtx.Done():
		}
	}()
	return reqCtx, cancel
}
