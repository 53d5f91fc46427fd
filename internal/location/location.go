package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/tkhongsap/mcp-concept/internal/types"
)

var (
	// ErrInvalidCoordinateFormat is returned for input that looks like a coordinate pair
	// but does not parse as one.
	ErrInvalidCoordinateFormat = errors.New("invalid coordinate format")
	// ErrNotFound is returned when free text could not be geocoded.
	ErrNotFound = errors.New("location not found")
)

var (
	// "lat,lon" with optional signs and decimals, nothing else
	coordinatePairPattern = regexp.MustCompile(`^[+-]?\d+(\.\d*)?,[+-]?\d+(\.\d*)?$`)

	leadingPairPattern   = regexp.MustCompile(`^[+-]?\d+(\.\d*)?\s*,\s*[+-]?\d`)
	numericCharsPattern  = regexp.MustCompile(`^[0-9+\-.,\s]+$`)
)

// Resolver turns a user supplied location into coordinates
type Resolver interface {
	Resolve(ctx context.Context, input string) (types.Coords, error)
}

// Geocoder looks up free text place names
type Geocoder interface {
	Search(ctx context.Context, query string) (types.Coords, error)
}

type resolver struct {
	geocoder Geocoder
	logger   *slog.Logger
}

// NewResolver creates a resolver that falls back to geocoder for anything that
// is not a numeric pair
func NewResolver(geocoder Geocoder, logger *slog.Logger) Resolver {
	return &resolver{
		geocoder: geocoder,
		logger:   logger.With("component", "location-resolver"),
	}
}

func (r *resolver) Resolve(ctx context.Context, input string) (types.Coords, error) {
	input = strings.TrimSpace(input)

	if coordinatePairPattern.MatchString(input) {
		return parseCoordinatePair(input)
	}

	if looksNumeric(input) {
		r.logger.Debug("rejected malformed coordinate pair", "input", input)
		return types.Coords{}, fmt.Errorf("%w: %q", ErrInvalidCoordinateFormat, input)
	}

	coords, err := r.geocoder.Search(ctx, input)
	if err != nil {
		r.logger.Warn("failed to geocode location", "input", input, "error", err)
		return types.Coords{}, fmt.Errorf("%w: %q: %w", ErrNotFound, input, err)
	}

	r.logger.Debug("resolved location",
		"input", input,
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
	)
	return coords, nil
}

func parseCoordinatePair(input string) (types.Coords, error) {
	latText, lonText, _ := strings.Cut(input, ",")

	lat, err := strconv.ParseFloat(latText, 64)
	if err != nil {
		return types.Coords{}, fmt.Errorf("%w: latitude %q: %v", ErrInvalidCoordinateFormat, latText, err)
	}
	lon, err := strconv.ParseFloat(lonText, 64)
	if err != nil {
		return types.Coords{}, fmt.Errorf("%w: longitude %q: %v", ErrInvalidCoordinateFormat, lonText, err)
	}

	coords := types.NewCoords(lat, lon)
	if err := coords.Validate(); err != nil {
		return types.Coords{}, fmt.Errorf("%w: %v", ErrInvalidCoordinateFormat, err)
	}
	return coords, nil
}

// looksNumeric reports whether input was probably meant as a coordinate pair,
// e.g. "47.6, -122.3" or "47.6,-122.3abc". "90210, CA" is a place, not a pair.
func looksNumeric(input string) bool {
	if leadingPairPattern.MatchString(input) {
		return true
	}
	return numericCharsPattern.MatchString(input) &&
		strings.Contains(input, ",") &&
		strings.ContainsAny(input, "0123456789")
}
