package entities

import "strconv"

// Coordinate is a device position as reported by geolocation.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LatString and LonString format the axes the way they are embedded in upstream URLs.
func (c Coordinate) LatString() string { return strconv.FormatFloat(c.Latitude, 'f', -1, 64) }
func (c Coordinate) LonString() string { return strconv.FormatFloat(c.Longitude, 'f', -1, 64) }
