package types

import (
	"fmt"
	"strconv"
)

// Coords is a WGS84 latitude/longitude pair in decimal degrees
type Coords struct {
	Latitude  float64
	Longitude float64
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// Validate checks that latitude is within [-90, 90] and longitude within [-180, 180]
func (c Coords) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// PathValue renders the pair as "lat,lon" with the shortest exact decimal form,
// which is what NWS expects in /points and ?point= parameters.
func (c Coords) PathValue() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// Format renders the pair at a fixed number of decimals
func (c Coords) Format(precision int) string {
	return fmt.Sprintf("%.*f, %.*f", precision, c.Latitude, precision, c.Longitude)
}
