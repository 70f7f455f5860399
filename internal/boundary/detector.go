// Package boundary answers coarse "which city is this point in" lookups
// against administrative outlines. Detection is independent of delivery
// zones: a point can sit inside a city yet outside every zone, and the
// other way around.
package boundary

import (
	"sync/atomic"

	"geozone/geo"
	"geozone/models"
)

// Detector scans active city outlines in registration order. Like the zone
// registry it swaps immutable snapshots, so refreshes never tear a lookup.
type Detector struct {
	cities atomic.Pointer[[]models.CityBoundary]
}

// NewDetector builds a detector over the given outlines. Inactive entries
// and entries without a usable ring are dropped up front.
func NewDetector(cities []models.CityBoundary) *Detector {
	d := &Detector{}
	d.Swap(cities)
	return d
}

// Swap replaces the outline set.
func (d *Detector) Swap(cities []models.CityBoundary) {
	kept := make([]models.CityBoundary, 0, len(cities))
	for _, c := range cities {
		if c.IsActive && c.Boundary.VertexCount() >= 3 {
			kept = append(kept, c)
		}
	}
	d.cities.Store(&kept)
}

// DetectCity returns the first active outline containing the point.
// Outlines are not expected to overlap; when they do, registration order
// keeps the answer deterministic. ok=false means the point is outside every
// known city, which is a normal answer.
func (d *Detector) DetectCity(p geo.Point) (models.CityBoundary, bool) {
	for _, c := range *d.cities.Load() {
		if c.Contains(p) {
			return c, true
		}
	}
	return models.CityBoundary{}, false
}

// Cities returns the active outlines in detection order.
func (d *Detector) Cities() []models.CityBoundary {
	cs := *d.cities.Load()
	out := make([]models.CityBoundary, len(cs))
	copy(out, cs)
	return out
}
