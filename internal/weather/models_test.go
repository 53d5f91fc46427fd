package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointMetadata_Defaults(t *testing.T) {
	tests := []struct {
		name       string
		point      PointMetadata
		wantName   string
		wantOffice string
	}{
		{name: "complete", point: PointMetadata{City: "Seattle", State: "WA", Office: "SEW"}, wantName: "Seattle, WA", wantOffice: "SEW"},
		{name: "grid id fallback", point: PointMetadata{City: "Aspen", State: "CO", GridID: "GJT"}, wantName: "Aspen, CO", wantOffice: "GJT"},
		{name: "empty", point: PointMetadata{}, wantName: "Unknown, Unknown", wantOffice: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.point.LocationName())
			assert.Equal(t, tt.wantOffice, tt.point.OfficeCode())
		})
	}
}

func TestPeriod_Defaults(t *testing.T) {
	var p Period
	assert.Equal(t, "Unknown", p.DisplayName())
	assert.Equal(t, "?", p.DisplayTemperature())
	assert.Equal(t, "F", p.DisplayUnit())
	assert.Equal(t, "No forecast available", p.DisplayShortForecast())
	assert.Equal(t, "Unknown", p.DisplayWind())
	assert.Empty(t, p.Details())
}

func TestPeriod_Details(t *testing.T) {
	tests := []struct {
		name     string
		short    string
		detailed string
		want     string
	}{
		{name: "differs", short: "Rain", detailed: "Rain. Low around 45.", want: "Rain. Low around 45."},
		{name: "same as short", short: "Sunny", detailed: "Sunny", want: ""},
		{name: "empty", short: "Sunny", detailed: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Period{ShortForecast: tt.short, DetailedForecast: tt.detailed}
			assert.Equal(t, tt.want, p.Details())
		})
	}
}

func TestAlert_Defaults(t *testing.T) {
	var a Alert
	assert.Equal(t, "Weather Alert", a.DisplayEvent())
	assert.Equal(t, "Unknown", a.DisplayArea())
	assert.Equal(t, "Unknown", a.DisplaySeverity())
	assert.Equal(t, "No description available", a.DisplayDescription())
	assert.Equal(t, "No specific instructions provided", a.DisplayInstruction())
}

func TestOptions_Profiles(t *testing.T) {
	simple := SimpleOptions(true)
	assert.Equal(t, 6, simple.PeriodCount)
	assert.True(t, simple.LabelCurrent)
	assert.False(t, simple.IncludeCurrent)
	assert.False(t, simple.IncludeOffice)
	assert.True(t, simple.IncludeAlerts)
	assert.Equal(t, 3, simple.AlertLimit)

	extended := ExtendedOptions(false)
	assert.Equal(t, 8, extended.PeriodCount)
	assert.False(t, extended.LabelCurrent)
	assert.True(t, extended.IncludeCurrent)
	assert.True(t, extended.IncludeOffice)
	assert.True(t, extended.IncludeSun)
	assert.False(t, extended.IncludeAlerts)
	assert.Equal(t, 3, extended.AlertLimit)
}
