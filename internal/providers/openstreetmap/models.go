package openstreetmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// SearchAPIResponse is the /search payload: candidates ordered best match first
type SearchAPIResponse []SearchResult

type SearchResult struct {
	PlaceId     int        `json:"place_id"`
	Licence     string     `json:"licence"`
	OsmType     string     `json:"osm_type"`
	OsmId       int        `json:"osm_id"`
	Lat         Coordinate `json:"lat"`
	Lon         Coordinate `json:"lon"`
	Class       string     `json:"class"`
	Type        string     `json:"type"`
	PlaceRank   int        `json:"place_rank"`
	Importance  float64    `json:"importance"`
	Addresstype string     `json:"addresstype"`
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	Boundingbox []string   `json:"boundingbox"`
}

// Coordinate accepts Nominatim's quoted decimal strings as well as bare JSON numbers
type Coordinate struct {
	Value float64
	Valid bool
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = Coordinate{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q: %w", raw, err)
	}
	*c = Coordinate{Value: v, Valid: true}
	return nil
}
