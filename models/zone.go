// Package models defines the delivery-domain entities shared across the
// engine: towns, their delivery zones, city boundaries and resolution
// results.
package models

import (
	"bytes"
	"errors"
	"sort"

	"geozone/geo"

	"github.com/google/uuid"
)

// ErrZoneNotFound reports a lookup for a zone ID that no data source knows.
var ErrZoneNotFound = errors.New("zone not found")

// ZoneKind distinguishes how a zone's service area is described.
type ZoneKind string

const (
	ZoneKindPolygon ZoneKind = "polygon"
	ZoneKindCircle  ZoneKind = "circle"
)

// Zone is a fine-grained delivery service area belonging to a town. Polygon
// zones carry a boundary ring; circle zones carry a center and radius.
type Zone struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	TownID     uuid.UUID   `json:"town_id"`
	ZoneNumber int         `json:"zone_number"`
	Kind       ZoneKind    `json:"kind"`
	Boundary   geo.Polygon `json:"boundary"`
	Center     geo.Point   `json:"center"`
	RadiusKm   float64     `json:"radius_km"`
	Priority   int         `json:"priority"`
	IsActive   bool        `json:"is_active"`
}

// Contains reports whether the point falls inside the zone's service area.
// Polygon zones use the ray-cast containment test, circle zones compare the
// haversine distance against the radius. Both are boundary inclusive.
// Malformed geometry never matches.
func (z Zone) Contains(p geo.Point) bool {
	switch z.Kind {
	case ZoneKindPolygon:
		return z.Boundary.Contains(p)
	case ZoneKindCircle:
		if z.RadiusKm <= 0 || z.Center.IsZero() {
			return false
		}
		return geo.Haversine(p, z.Center) <= z.RadiusKm
	}
	return false
}

// Resolvable reports whether the zone's geometry is usable for containment
// tests.
func (z Zone) Resolvable() bool {
	switch z.Kind {
	case ZoneKindPolygon:
		return z.Boundary.VertexCount() >= 3
	case ZoneKindCircle:
		return z.RadiusKm > 0 && !z.Center.IsZero()
	}
	return false
}

// Centroid approximates the zone's position: the vertex mean for polygons,
// the configured center for circles.
func (z Zone) Centroid() geo.Point {
	if z.Kind == ZoneKindCircle {
		return z.Center
	}
	return z.Boundary.Centroid()
}

// SortZonesByPriority orders zones for resolution: priority descending, then
// zone number ascending, then ID ascending so ordering stays stable across
// towns and restarts.
func SortZonesByPriority(zones []Zone) {
	sort.Slice(zones, func(i, j int) bool {
		a, b := zones[i], zones[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.ZoneNumber != b.ZoneNumber {
			return a.ZoneNumber < b.ZoneNumber
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}
