// Package geo provides the planar geometry primitives the zone engine
// resolves against: WGS84 points, bounded polygons with a ray-cast
// containment test, and haversine distances. Coordinates are treated as
// planar degrees; rings crossing the antimeridian are not supported.
package geo

import (
	"errors"
	"fmt"
)

// ErrInvalidCoordinate reports a latitude or longitude outside the WGS84
// range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Point is a WGS84 position in decimal degrees.
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// NewPoint validates the coordinate ranges and returns the point.
// Latitude must lie in [-90, 90] and longitude in [-180, 180].
func NewPoint(lat, lon float64) (Point, error) {
	if lat < -90 || lat > 90 {
		return Point{}, fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidCoordinate, lat)
	}
	if lon < -180 || lon > 180 {
		return Point{}, fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidCoordinate, lon)
	}
	return Point{Lat: lat, Lon: lon}, nil
}

// IsZero reports whether the point is the unset origin value. Null Island is
// used as the "no coordinate" marker throughout the zone data.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lon == 0
}

func (p Point) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lat, p.Lon)
}
