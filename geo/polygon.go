package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrDegeneratePolygon reports a ring with fewer than three distinct
// vertices.
var ErrDegeneratePolygon = errors.New("degenerate polygon")

// onEdgeEps is the tolerance for the boundary-inclusion test. Boundary data
// carries at most six decimal places, so anything this close to an edge is
// the edge.
const onEdgeEps = 1e-9

// onEdgeScan, when non-nil, observes every containment test that reaches the
// edge-scanning phase, with the number of ring vertices visited. Tests assign
// it to verify the bounding-box fast path; production code leaves it nil.
var onEdgeScan func(vertices int)

// Rect is an axis-aligned bounding box in degrees.
type Rect struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether the point lies inside the box, borders included.
func (r Rect) Contains(p Point) bool {
	return p.Lat >= r.MinLat && p.Lat <= r.MaxLat &&
		p.Lon >= r.MinLon && p.Lon <= r.MaxLon
}

// Intersects reports whether the two boxes share any area or border.
func (r Rect) Intersects(o Rect) bool {
	return r.MinLat <= o.MaxLat && o.MinLat <= r.MaxLat &&
		r.MinLon <= o.MaxLon && o.MinLon <= r.MaxLon
}

// LonSpan returns the longitudinal extent of the box in degrees.
func (r Rect) LonSpan() float64 {
	return r.MaxLon - r.MinLon
}

// Polygon is a simple closed ring of vertices with a precomputed bounding
// box. The ring is stored without the closing vertex; construction accepts
// input either way. A zero Polygon contains nothing.
type Polygon struct {
	ring []Point
	bbox Rect
}

// NewPolygon builds a polygon from a vertex ring. A duplicated closing
// vertex is dropped. Rings with fewer than three distinct vertices are
// rejected with ErrDegeneratePolygon.
func NewPolygon(vertices []Point) (Polygon, error) {
	if n := len(vertices); n > 1 && vertices[0] == vertices[n-1] {
		vertices = vertices[:n-1]
	}
	if n := countDistinct(vertices); n < 3 {
		return Polygon{}, fmt.Errorf("%w: %d distinct vertices, need at least 3", ErrDegeneratePolygon, n)
	}
	ring := make([]Point, len(vertices))
	copy(ring, vertices)
	return Polygon{ring: ring, bbox: boundsOf(ring)}, nil
}

func countDistinct(vertices []Point) int {
	n := 0
	for i, v := range vertices {
		seen := false
		for _, u := range vertices[:i] {
			if u == v {
				seen = true
				break
			}
		}
		if !seen {
			n++
		}
	}
	return n
}

func boundsOf(ring []Point) Rect {
	b := Rect{
		MinLat: math.Inf(1), MinLon: math.Inf(1),
		MaxLat: math.Inf(-1), MaxLon: math.Inf(-1),
	}
	for _, v := range ring {
		b.MinLat = math.Min(b.MinLat, v.Lat)
		b.MinLon = math.Min(b.MinLon, v.Lon)
		b.MaxLat = math.Max(b.MaxLat, v.Lat)
		b.MaxLon = math.Max(b.MaxLon, v.Lon)
	}
	return b
}

// VertexCount returns the number of ring vertices, closing vertex excluded.
func (pg Polygon) VertexCount() int {
	return len(pg.ring)
}

// Vertices returns a copy of the ring, without the closing vertex.
func (pg Polygon) Vertices() []Point {
	out := make([]Point, len(pg.ring))
	copy(out, pg.ring)
	return out
}

// Bounds returns the precomputed bounding box. The zero polygon returns the
// zero Rect.
func (pg Polygon) Bounds() Rect {
	if len(pg.ring) == 0 {
		return Rect{}
	}
	return pg.bbox
}

// Centroid returns the vertex mean. It is a positional approximation used
// for nearest-zone ranking, not an area-weighted centroid.
func (pg Polygon) Centroid() Point {
	if len(pg.ring) == 0 {
		return Point{}
	}
	var lat, lon float64
	for _, v := range pg.ring {
		lat += v.Lat
		lon += v.Lon
	}
	n := float64(len(pg.ring))
	return Point{Lat: lat / n, Lon: lon / n}
}

// Contains reports whether the point lies inside the ring or on its
// boundary. Points outside the bounding box are rejected before any edge is
// visited; the interior test casts a ray from the point toward +infinity
// longitude and counts edge crossings.
func (pg Polygon) Contains(p Point) bool {
	if len(pg.ring) == 0 || !pg.bbox.Contains(p) {
		return false
	}
	if onEdgeScan != nil {
		onEdgeScan(len(pg.ring))
	}
	if pg.onBoundary(p) {
		return true
	}
	return pg.rayCast(p)
}

func (pg Polygon) onBoundary(p Point) bool {
	n := len(pg.ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pg.ring[j], pg.ring[i]
		if p.Lat < math.Min(a.Lat, b.Lat)-onEdgeEps || p.Lat > math.Max(a.Lat, b.Lat)+onEdgeEps {
			continue
		}
		if p.Lon < math.Min(a.Lon, b.Lon)-onEdgeEps || p.Lon > math.Max(a.Lon, b.Lon)+onEdgeEps {
			continue
		}
		cross := (b.Lon-a.Lon)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lon-a.Lon)
		if math.Abs(cross) <= onEdgeEps {
			return true
		}
	}
	return false
}

func (pg Polygon) rayCast(p Point) bool {
	n := len(pg.ring)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pg.ring[j], pg.ring[i]
		if (a.Lat > p.Lat) == (b.Lat > p.Lat) {
			continue
		}
		crossLon := a.Lon + (p.Lat-a.Lat)/(b.Lat-a.Lat)*(b.Lon-a.Lon)
		if p.Lon < crossLon {
			inside = !inside
		}
	}
	return inside
}

// MarshalJSON emits the ring as a closed vertex array: the first vertex is
// repeated at the end, matching the stored boundary format. The zero polygon
// marshals to null.
func (pg Polygon) MarshalJSON() ([]byte, error) {
	if len(pg.ring) == 0 {
		return []byte("null"), nil
	}
	closed := make([]Point, 0, len(pg.ring)+1)
	closed = append(closed, pg.ring...)
	closed = append(closed, pg.ring[0])
	return json.Marshal(closed)
}

// UnmarshalJSON decodes a vertex array, closed or not. Null and degenerate
// rings decode to the zero polygon rather than failing: a single bad
// boundary must not poison a whole dataset, and the validator reports it.
func (pg *Polygon) UnmarshalJSON(data []byte) error {
	var vertices []Point
	if err := json.Unmarshal(data, &vertices); err != nil {
		return fmt.Errorf("polygon ring: %w", err)
	}
	built, err := NewPolygon(vertices)
	if err != nil {
		*pg = Polygon{}
		return nil
	}
	*pg = built
	return nil
}
