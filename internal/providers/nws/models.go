package nws

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// PointAPIResponse is the GeoJSON feature returned by /points/{lat},{lon}
type PointAPIResponse struct {
	Id       string `json:"id"`
	Type     string `json:"type"`
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties PointProperties `json:"properties"`
}

type PointProperties struct {
	Id                  string `json:"@id"`
	Cwa                 string `json:"cwa"`
	ForecastOffice      string `json:"forecastOffice"`
	GridId              string `json:"gridId"`
	GridX               int    `json:"gridX"`
	GridY               int    `json:"gridY"`
	Forecast            string `json:"forecast"`
	ForecastHourly      string `json:"forecastHourly"`
	ForecastGridData    string `json:"forecastGridData"`
	ObservationStations string `json:"observationStations"`
	RelativeLocation    struct {
		Type       string `json:"type"`
		Properties struct {
			City  string `json:"city"`
			State string `json:"state"`
		} `json:"properties"`
	} `json:"relativeLocation"`
	ForecastZone string `json:"forecastZone"`
	County       string `json:"county"`
	TimeZone     string `json:"timeZone"`
	RadarStation string `json:"radarStation"`
}

// ForecastAPIResponse is returned by both the forecast and forecastHourly URLs
type ForecastAPIResponse struct {
	Type       string             `json:"type"`
	Properties ForecastProperties `json:"properties"`
}

type ForecastProperties struct {
	Units             string             `json:"units"`
	ForecastGenerator string             `json:"forecastGenerator"`
	GeneratedAt       time.Time          `json:"generatedAt"`
	UpdateTime        time.Time          `json:"updateTime"`
	Elevation         *QuantitativeValue `json:"elevation"`
	// Periods stays nil when the payload has no "periods" key
	Periods []ForecastPeriod `json:"periods"`
}

type ForecastPeriod struct {
	Number           int       `json:"number"`
	Name             string    `json:"name"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	IsDaytime        bool      `json:"isDaytime"`
	Temperature      Quantity  `json:"temperature"`
	TemperatureUnit  string    `json:"temperatureUnit"`
	WindSpeed        Quantity  `json:"windSpeed"`
	WindDirection    string    `json:"windDirection"`
	Icon             string    `json:"icon"`
	ShortForecast    string    `json:"shortForecast"`
	DetailedForecast string    `json:"detailedForecast"`
}

// QuantitativeValue is the NWS {"unitCode": "wmoUnit:m", "value": 12.3} shape
type QuantitativeValue struct {
	UnitCode string   `json:"unitCode"`
	Value    *float64 `json:"value"`
}

// Quantity decodes fields NWS serves either as a bare number, a string
// ("5 to 10 mph") or a QuantitativeValue object, depending on feature flags.
type Quantity struct {
	Value    *float64
	Text     string
	UnitCode string
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*q = Quantity{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &q.Text)
	case '{':
		var qv QuantitativeValue
		if err := json.Unmarshal(data, &qv); err != nil {
			return err
		}
		q.Value = qv.Value
		q.UnitCode = qv.UnitCode
		return nil
	default:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		q.Value = &v
		return nil
	}
}

// String renders the value without trailing zeros, or the text form
func (q Quantity) String() string {
	if q.Value != nil {
		return strconv.FormatFloat(*q.Value, 'f', -1, 64)
	}
	return q.Text
}

// AlertsAPIResponse is the GeoJSON feature collection from /alerts/active
type AlertsAPIResponse struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Updated  time.Time      `json:"updated"`
	Features []AlertFeature `json:"features"`
}

type AlertFeature struct {
	Id         string          `json:"id"`
	Type       string          `json:"type"`
	Properties AlertProperties `json:"properties"`
}

type AlertProperties struct {
	Id          string    `json:"id"`
	AreaDesc    string    `json:"areaDesc"`
	Sent        time.Time `json:"sent"`
	Effective   time.Time `json:"effective"`
	Expires     time.Time `json:"expires"`
	Status      string    `json:"status"`
	MessageType string    `json:"messageType"`
	Category    string    `json:"category"`
	Severity    string    `json:"severity"`
	Certainty   string    `json:"certainty"`
	Urgency     string    `json:"urgency"`
	Event       string    `json:"event"`
	SenderName  string    `json:"senderName"`
	Headline    string    `json:"headline"`
	Description string    `json:"description"`
	Instruction string    `json:"instruction"`
	Response    string    `json:"response"`
}
