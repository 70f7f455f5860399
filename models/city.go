package models

import (
	"geozone/geo"

	"github.com/google/uuid"
)

// CityBoundary is the coarse administrative outline used to answer "which
// city is this point in". City boundaries are independent of delivery
// zones and are not expected to overlap each other.
type CityBoundary struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	State    string      `json:"state"`
	Country  string      `json:"country"`
	Boundary geo.Polygon `json:"boundary"`
	IsActive bool        `json:"is_active"`
}

// Contains reports whether the point lies inside the city outline, boundary
// included.
func (c CityBoundary) Contains(p geo.Point) bool {
	return c.Boundary.Contains(p)
}
