package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Profile names accepted by tools.profile
const (
	ProfileExtended = "extended"
	ProfileSimple   = "simple"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	NWS       UpstreamConfig
	Geocoder  UpstreamConfig
	UserAgent string
	Tools     ToolsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	File   string // optional log file; empty means the process default stream
}

// UpstreamConfig describes one external HTTP provider
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ToolsConfig holds tool facade configuration
type ToolsConfig struct {
	Profile string // extended, simple
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.nws-weather")

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("nws.baseurl", "https://api.weather.gov")
	v.SetDefault("nws.timeout", "30s")
	v.SetDefault("geocoder.baseurl", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoder.timeout", "10s")
	v.SetDefault("useragent", "mcp-weather-server/1.0")
	v.SetDefault("tools.profile", ProfileExtended)

	// Read from environment variables, e.g. NWS_WEATHER_LOG_LEVEL
	v.SetEnvPrefix("NWS_WEATHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.NWS.Timeout <= 0 {
		return errors.New("nws.timeout must be positive")
	}
	if c.Geocoder.Timeout <= 0 {
		return errors.New("geocoder.timeout must be positive")
	}
	if c.UserAgent == "" {
		return errors.New("useragent is required by both upstream providers")
	}
	switch strings.ToLower(c.Tools.Profile) {
	case ProfileExtended, ProfileSimple:
	default:
		return fmt.Errorf("unknown tools.profile %q", c.Tools.Profile)
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger writing to stdout
func (c *Config) NewLogger() *slog.Logger {
	return c.NewLoggerTo(os.Stdout)
}

// NewLoggerTo creates a new slog.Logger based on the configuration, writing to w
func (c *Config) NewLoggerTo(w io.Writer) *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
