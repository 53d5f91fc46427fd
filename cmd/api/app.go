package main

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/tkhongsap/mcp-concept/internal/config"
	"github.com/tkhongsap/mcp-concept/internal/observability"
	"github.com/tkhongsap/mcp-concept/internal/tools"

	_ "github.com/tkhongsap/mcp-concept/docs" // Ensure docs are imported
)

// WeatherTools is the tool facade the HTTP handlers delegate to
type WeatherTools interface {
	GetWeatherWithProfile(ctx context.Context, location string, includeAlerts bool, profile string) string
	GetWeatherAlertsOnly(ctx context.Context, location string) string
}

// App encapsulates application dependencies
type App struct {
	router *gin.Engine
	logger *slog.Logger
	tools  WeatherTools
	cfg    *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	metrics := observability.NewMetrics()

	toolSvc, err := tools.NewFromConfig(cfg, metrics, logger)
	if err != nil {
		return nil, err
	}

	return newAppWithTools(cfg, toolSvc, logger), nil
}

func newAppWithTools(cfg *config.Config, weatherTools WeatherTools, logger *slog.Logger) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	app := &App{
		router: router,
		logger: logger,
		tools:  weatherTools,
		cfg:    cfg,
	}

	// Register routes
	app.registerRoutes()

	logger.Info("application initialized", "profile", cfg.Tools.Profile)

	return app
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}
