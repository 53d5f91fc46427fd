package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/localrivet/gomcp/server"
	"github.com/tkhongsap/mcp-concept/internal/config"
	"github.com/tkhongsap/mcp-concept/internal/observability"
	"github.com/tkhongsap/mcp-concept/internal/tools"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// stdout carries the protocol, so logs go to stderr or a file
	logOut, closeLog, err := logWriter(cfg.Log.File)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()

	logger := cfg.NewLoggerTo(logOut)
	slog.SetDefault(logger)

	toolSvc, err := tools.NewFromConfig(cfg, observability.NewMetrics(), logger)
	if err != nil {
		log.Fatalf("Failed to create tools: %v", err)
	}

	srv := server.NewServer("nws-weather", server.WithLogger(logger)).
		AsStdio(cfg.Log.File)
	registerTools(srv, toolSvc)

	logger.Info("starting MCP weather server", "profile", cfg.Tools.Profile)
	if err := srv.Run(); err != nil {
		logger.Error("server failed", "error", err)
		_, _ = fmt.Fprintf(os.Stderr, "Failed to run server: %v\n", err)
		os.Exit(1)
	}
}

func logWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
