package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetWeatherInput defines the query parameters for the weather endpoint
type GetWeatherInput struct {
	Location      string `form:"location" binding:"required"`                       // City and state, zip code, or "lat,lon"
	IncludeAlerts bool   `form:"include_alerts"`                                    // Append active alerts
	Profile       string `form:"profile" binding:"omitempty,oneof=simple extended"` // Overrides the configured profile
}

// GetAlertsInput defines the query parameters for the alerts endpoint
type GetAlertsInput struct {
	Location string `form:"location" binding:"required"`
}

// ToolResponse wraps the text a tool produced
type ToolResponse struct {
	Result string `json:"result" example:"🌤️ **Weather Forecast for Seattle, WA**"`
}

// handleGetWeather godoc
// @Summary Get weather forecast
// @Description Resolve a US location and render its NWS forecast. Lookup failures are reported inside the result text.
// @Tags weather
// @Produce json
// @Param location query string true "City and state, zip code, or coordinates" example(Seattle, WA)
// @Param include_alerts query bool false "Include active weather alerts"
// @Param profile query string false "Output profile" Enums(simple, extended)
// @Success 200 {object} ToolResponse
// @Failure 400 {object} map[string]string
// @Router /weather [get]
func (app *App) handleGetWeather(c *gin.Context) {
	var input GetWeatherInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := input.Profile
	if profile == "" {
		profile = app.cfg.Tools.Profile
	}

	result := app.tools.GetWeatherWithProfile(c.Request.Context(), input.Location, input.IncludeAlerts, profile)
	c.JSON(http.StatusOK, ToolResponse{Result: result})
}

// handleGetAlerts godoc
// @Summary Get active weather alerts
// @Description Resolve a US location and list the NWS alerts in effect there
// @Tags weather
// @Produce json
// @Param location query string true "City and state, zip code, or coordinates" example(47.6062,-122.3321)
// @Success 200 {object} ToolResponse
// @Failure 400 {object} map[string]string
// @Router /alerts [get]
func (app *App) handleGetAlerts(c *gin.Context) {
	var input GetAlertsInput

	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := app.tools.GetWeatherAlertsOnly(c.Request.Context(), input.Location)
	c.JSON(http.StatusOK, ToolResponse{Result: result})
}
