// Package geo provides coordinate validation and great-circle distance.
package geo

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// ErrInvalidCoordinate reports a latitude or longitude outside valid ranges.
var ErrInvalidCoordinate = fmt.Errorf("invalid coordinate")

// Coordinate is a WGS-84 geographic position.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is a real position: latitude in
// [-90,90], longitude in [-180,180], neither NaN.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Validate returns ErrInvalidCoordinate (with the offending values) for
// coordinates outside valid ranges.
func (c Coordinate) Validate() error {
	if !c.Valid() {
		return fmt.Errorf("%w: lat=%v lng=%v", ErrInvalidCoordinate, c.Lat, c.Lng)
	}
	return nil
}

// Distance computes the haversine great-circle distance between two
// coordinates in kilometers. Both arguments are assumed valid; callers
// validate with Coordinate.Valid first.
func Distance(a, b Coordinate) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
