package weather

import (
	"strings"

	"github.com/tkhongsap/mcp-concept/internal/providers/nws"
	"github.com/tkhongsap/mcp-concept/internal/types"
)

func mapPoint(resp *nws.PointAPIResponse) PointMetadata {
	props := resp.Properties
	return PointMetadata{
		City:              props.RelativeLocation.Properties.City,
		State:             props.RelativeLocation.Properties.State,
		Office:            props.Cwa,
		GridID:            props.GridId,
		GridX:             props.GridX,
		GridY:             props.GridY,
		ForecastURL:       props.Forecast,
		ForecastHourlyURL: props.ForecastHourly,
		TimeZone:          props.TimeZone,
	}
}

func mapPeriods(periods []nws.ForecastPeriod) []Period {
	result := make([]Period, 0, len(periods))
	for _, p := range periods {
		result = append(result, mapPeriod(p))
	}
	return result
}

func mapPeriod(p nws.ForecastPeriod) Period {
	return Period{
		Name:             p.Name,
		StartTime:        p.StartTime,
		IsDaytime:        p.IsDaytime,
		Temperature:      p.Temperature.String(),
		TemperatureUnit:  temperatureUnit(p),
		WindSpeed:        p.WindSpeed.String(),
		WindDirection:    p.WindDirection,
		ShortForecast:    p.ShortForecast,
		DetailedForecast: p.DetailedForecast,
	}
}

// temperatureUnit prefers the explicit unit, then the unit code of a quantitative temperature
func temperatureUnit(p nws.ForecastPeriod) string {
	if p.TemperatureUnit != "" {
		return p.TemperatureUnit
	}
	switch p.Temperature.UnitCode {
	case "wmoUnit:degC":
		return "C"
	case "wmoUnit:degF":
		return "F"
	}
	return ""
}

func mapElevation(v *nws.QuantitativeValue) *types.Elevation {
	if v == nil || v.Value == nil {
		return nil
	}

	var elevation types.Elevation
	if strings.HasSuffix(v.UnitCode, ":ft") {
		elevation = types.NewElevationFromFeet(*v.Value)
	} else {
		// NWS reports "wmoUnit:m"
		elevation = types.NewElevationFromMeters(*v.Value)
	}
	return &elevation
}

func mapAlerts(features []nws.AlertFeature) []Alert {
	alerts := make([]Alert, 0, len(features))
	for _, f := range features {
		props := f.Properties
		alerts = append(alerts, Alert{
			Event:           props.Event,
			AreaDescription: props.AreaDesc,
			Severity:        props.Severity,
			Urgency:         props.Urgency,
			Headline:        props.Headline,
			Description:     props.Description,
			Instruction:     props.Instruction,
			Expires:         props.Expires,
		})
	}
	return alerts
}
