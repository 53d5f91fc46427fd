// Package report renders weather reports and alert lists as the text blocks
// returned to tool callers. Everything here is pure: equal input gives
// byte-identical output.
package report

import (
	"fmt"
	"strings"

	"github.com/tkhongsap/mcp-concept/internal/types"
	"github.com/tkhongsap/mcp-concept/internal/weather"
)

const (
	coordinatePrecision = 4
	sunTimeLayout       = "3:04 PM"

	NoAlertsLine          = "✅ No active weather alerts for this area."
	AlertsUnavailableLine = "⚠️ Could not retrieve weather alerts for this area."
)

// Weather renders a full report according to opts
func Weather(r *weather.Report, opts weather.Options) string {
	var b strings.Builder

	writeHeader(&b, r, opts)

	if r.Current != nil {
		writeCurrent(&b, *r.Current)
	}

	writeForecast(&b, r.Periods, opts)

	if r.AlertStatus != weather.AlertsNotRequested {
		b.WriteString("\n")
		switch {
		case r.AlertStatus == weather.AlertsUnavailable:
			b.WriteString(AlertsUnavailableLine + "\n")
		case len(r.Alerts) == 0:
			b.WriteString(NoAlertsLine + "\n")
		default:
			b.WriteString("**🚨 Active Weather Alerts:**\n")
			writeAlerts(&b, r.Alerts, alertLimit(opts), false)
		}
	}

	return strings.TrimSpace(b.String())
}

// Alerts renders the alerts-only answer for a location as the user typed it
func Alerts(location string, coords types.Coords, alerts []weather.Alert) string {
	if len(alerts) == 0 {
		return fmt.Sprintf("✅ No active weather alerts for %s.", location)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚨 **Active Weather Alerts for %s**\n", location)
	fmt.Fprintf(&b, "📍 Coordinates: %s\n", coords.Format(coordinatePrecision))
	writeAlerts(&b, alerts, weather.DefaultAlertLimit, true)

	return strings.TrimSpace(b.String())
}

func writeHeader(b *strings.Builder, r *weather.Report, opts weather.Options) {
	fmt.Fprintf(b, "🌤️ **Weather Forecast for %s**\n", r.Point.LocationName())
	fmt.Fprintf(b, "📍 Coordinates: %s\n", r.Coords.Format(coordinatePrecision))

	if opts.IncludeOffice {
		fmt.Fprintf(b, "🏢 NWS Office: %s\n", r.Point.OfficeCode())
		if r.Elevation != nil {
			fmt.Fprintf(b, "⛰️ Elevation: %.0f ft (%.0f m)\n", r.Elevation.Feet, r.Elevation.Meters)
		}
	}

	if r.Sun != nil {
		fmt.Fprintf(b, "🌅 Sunrise: %s | 🌇 Sunset: %s (%s)\n",
			r.Sun.Sunrise.Format(sunTimeLayout),
			r.Sun.Sunset.Format(sunTimeLayout),
			r.Sun.TimeZone,
		)
	}

	b.WriteString("\n")
}

func writeCurrent(b *strings.Builder, p weather.Period) {
	b.WriteString("**Current Conditions:**\n")
	fmt.Fprintf(b, "🌡️ Temperature: %s°%s\n", p.DisplayTemperature(), p.DisplayUnit())
	fmt.Fprintf(b, "🌤️ Conditions: %s\n", p.DisplayShortForecast())
	fmt.Fprintf(b, "💨 Wind: %s\n\n", p.DisplayWind())
}

func writeForecast(b *strings.Builder, periods []weather.Period, opts weather.Options) {
	n := min(len(periods), opts.PeriodCount)
	if n <= 0 {
		return
	}

	b.WriteString("**Forecast:**\n")
	for i, p := range periods[:n] {
		name := p.DisplayName()
		if i == 0 && opts.LabelCurrent {
			name = "Current: " + name
		}
		fmt.Fprintf(b, "**%s**: %s°%s - %s\n", name, p.DisplayTemperature(), p.DisplayUnit(), p.DisplayShortForecast())
		if details := p.Details(); details != "" {
			fmt.Fprintf(b, "   Details: %s\n", details)
		}
	}
}

func writeAlerts(b *strings.Builder, alerts []weather.Alert, limit int, numbered bool) {
	shown := min(len(alerts), limit)
	for i, a := range alerts[:shown] {
		b.WriteString("\n")
		if numbered {
			fmt.Fprintf(b, "**Alert %d:**\n", i+1)
		}
		fmt.Fprintf(b, "🚨 **%s**\n", a.DisplayEvent())
		fmt.Fprintf(b, "📍 Area: %s\n", a.DisplayArea())
		fmt.Fprintf(b, "⚠️ Severity: %s\n", a.DisplaySeverity())
		fmt.Fprintf(b, "📝 Description: %s\n", a.DisplayDescription())
		fmt.Fprintf(b, "📋 Instructions: %s\n", a.DisplayInstruction())
	}

	if remaining := len(alerts) - shown; remaining > 0 {
		fmt.Fprintf(b, "\n…and %d more active alert(s) not shown.\n", remaining)
	}
}

func alertLimit(opts weather.Options) int {
	if opts.AlertLimit > 0 {
		return opts.AlertLimit
	}
	return weather.DefaultAlertLimit
}
