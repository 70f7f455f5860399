package geo

import (
	"math"
	"testing"
)

func TestHaversine(t *testing.T) {
	cases := []struct {
		name   string
		a, b   Point
		wantKm float64
		tolKm  float64
	}{
		{"same point", Point{Lat: 25.514, Lon: 90.2067}, Point{Lat: 25.514, Lon: 90.2067}, 0, 0.001},
		{"one degree along equator", Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 1}, 111.195, 0.01},
		{"one degree of latitude", Point{Lat: 10, Lon: 20}, Point{Lat: 11, Lon: 20}, 111.195, 0.01},
		{"delhi to mumbai", Point{Lat: 28.6139, Lon: 77.2090}, Point{Lat: 19.0760, Lon: 72.8777}, 1148, 5},
	}
	for _, c := range cases {
		got := Haversine(c.a, c.b)
		if math.Abs(got-c.wantKm) > c.tolKm {
			t.Fatalf("%s: Haversine(%v, %v) = %.3f km; want %.3f±%.3f", c.name, c.a, c.b, got, c.wantKm, c.tolKm)
		}
		if back := Haversine(c.b, c.a); math.Abs(back-got) > 1e-9 {
			t.Fatalf("%s: Haversine not symmetric: %v vs %v", c.name, got, back)
		}
	}
}
