package timezone

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // LoadLocation must work on hosts without zoneinfo

	"github.com/ringsaturn/tzf"
	"github.com/tkhongsap/mcp-concept/internal/types"
)

// Service provides timezone lookup functionality
type Service interface {
	GetTimezone(coords types.Coords) (string, error)
	// Location resolves name when it is a valid IANA zone, otherwise looks up coords
	Location(name string, coords types.Coords) (*time.Location, error)
}

// service implements timezone lookup using tzf
type service struct {
	finder tzf.F
	mu     sync.RWMutex
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService creates or returns the singleton timezone service
// Uses singleton pattern because tzf.Finder loads timezone data into memory
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{
			finder: finder,
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns the IANA timezone name for the given coordinates
// Returns timezone names like "America/Denver", "Pacific/Honolulu", etc.
func (s *service) GetTimezone(coords types.Coords) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	timezone := s.finder.GetTimezoneName(coords.Longitude, coords.Latitude)
	if timezone == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", coords.Latitude, coords.Longitude)
	}

	return timezone, nil
}

func (s *service) Location(name string, coords types.Coords) (*time.Location, error) {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc, nil
		}
	}

	tz, err := s.GetTimezone(coords)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone location %s: %w", tz, err)
	}
	return loc, nil
}
