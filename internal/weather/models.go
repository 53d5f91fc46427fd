package weather

import (
	"strings"
	"time"

	"github.com/tkhongsap/mcp-concept/internal/types"
)

const (
	// DefaultAlertLimit is how many alerts a report renders before truncating
	DefaultAlertLimit = 3

	SimplePeriodCount   = 6
	ExtendedPeriodCount = 8

	unknown = "Unknown"
)

// Options selects how much of the pipeline runs and how the result is rendered.
type Options struct {
	PeriodCount    int
	IncludeAlerts  bool
	IncludeCurrent bool // fetch the hourly forecast for a current conditions block
	IncludeOffice  bool // office code and elevation in the header
	IncludeSun     bool
	LabelCurrent   bool // label the first forecast period "Current"
	AlertLimit     int
}

// SimpleOptions is the compact profile: six periods, first one labeled current.
func SimpleOptions(includeAlerts bool) Options {
	return Options{
		PeriodCount:   SimplePeriodCount,
		IncludeAlerts: includeAlerts,
		LabelCurrent:  true,
		AlertLimit:    DefaultAlertLimit,
	}
}

// ExtendedOptions is the full profile: current conditions, office and almanac header, eight periods.
func ExtendedOptions(includeAlerts bool) Options {
	return Options{
		PeriodCount:    ExtendedPeriodCount,
		IncludeAlerts:  includeAlerts,
		IncludeCurrent: true,
		IncludeOffice:  true,
		IncludeSun:     true,
		AlertLimit:     DefaultAlertLimit,
	}
}

// PointMetadata is what NWS knows about a coordinate
type PointMetadata struct {
	City              string
	State             string
	Office            string
	GridID            string
	GridX             int
	GridY             int
	ForecastURL       string
	ForecastHourlyURL string
	TimeZone          string
}

// LocationName returns "City, State" with Unknown for missing parts
func (p PointMetadata) LocationName() string {
	return orDefault(p.City, unknown) + ", " + orDefault(p.State, unknown)
}

func (p PointMetadata) OfficeCode() string {
	if p.Office != "" {
		return p.Office
	}
	return orDefault(p.GridID, unknown)
}

// Period is one forecast time segment, e.g. "Tonight"
type Period struct {
	Name             string
	StartTime        time.Time
	IsDaytime        bool
	Temperature      string
	TemperatureUnit  string
	WindSpeed        string
	WindDirection    string
	ShortForecast    string
	DetailedForecast string
}

func (p Period) DisplayName() string {
	return orDefault(p.Name, unknown)
}

func (p Period) DisplayTemperature() string {
	return orDefault(p.Temperature, "?")
}

func (p Period) DisplayUnit() string {
	return orDefault(p.TemperatureUnit, "F")
}

func (p Period) DisplayShortForecast() string {
	return orDefault(p.ShortForecast, "No forecast available")
}

// DisplayWind returns "10 mph SW", or just the speed when the direction is missing
func (p Period) DisplayWind() string {
	speed := orDefault(p.WindSpeed, unknown)
	if p.WindDirection == "" {
		return speed
	}
	return speed + " " + p.WindDirection
}

// Details returns the detailed forecast when it adds something to the short one
func (p Period) Details() string {
	detailed := strings.TrimSpace(p.DetailedForecast)
	if detailed == "" || detailed == strings.TrimSpace(p.ShortForecast) {
		return ""
	}
	return detailed
}

// Alert is an active hazard advisory
type Alert struct {
	Event           string
	AreaDescription string
	Severity        string
	Urgency         string
	Headline        string
	Description     string
	Instruction     string
	Expires         time.Time
}

func (a Alert) DisplayEvent() string {
	return orDefault(a.Event, "Weather Alert")
}

func (a Alert) DisplayArea() string {
	return orDefault(a.AreaDescription, unknown)
}

func (a Alert) DisplaySeverity() string {
	return orDefault(a.Severity, unknown)
}

func (a Alert) DisplayDescription() string {
	return orDefault(a.Description, "No description available")
}

func (a Alert) DisplayInstruction() string {
	return orDefault(a.Instruction, "No specific instructions provided")
}

// AlertStatus tells apart "not asked", "asked and got a list" and "asked but the fetch failed"
type AlertStatus int

const (
	AlertsNotRequested AlertStatus = iota
	AlertsFetched
	AlertsUnavailable
)

// SunTimes holds today's sunrise and sunset in the point's local zone
type SunTimes struct {
	Sunrise  time.Time
	Sunset   time.Time
	TimeZone string
}

// Report is everything gathered for one query
type Report struct {
	Coords      types.Coords
	Point       PointMetadata
	Periods     []Period
	Current     *Period
	Elevation   *types.Elevation
	Sun         *SunTimes
	AlertStatus AlertStatus
	Alerts      []Alert
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
