package geo

import (
	"errors"
	"testing"
)

func TestNewPointValidatesRanges(t *testing.T) {
	cases := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"interior", 25.514, 90.2067, false},
		{"lat low edge", -90, 0, false},
		{"lat high edge", 90, 0, false},
		{"lon low edge", 0, -180, false},
		{"lon high edge", 0, 180, false},
		{"lat too low", -90.0001, 0, true},
		{"lat too high", 90.0001, 0, true},
		{"lon too low", 0, -180.0001, true},
		{"lon too high", 0, 180.0001, true},
	}
	for _, c := range cases {
		p, err := NewPoint(c.lat, c.lon)
		if c.wantErr {
			if err == nil {
				t.Fatalf("%s: NewPoint(%v, %v) accepted an out-of-range coordinate", c.name, c.lat, c.lon)
			}
			if !errors.Is(err, ErrInvalidCoordinate) {
				t.Fatalf("%s: error = %v; want ErrInvalidCoordinate", c.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: NewPoint(%v, %v) = %v; want nil error", c.name, c.lat, c.lon, err)
		}
		if p.Lat != c.lat || p.Lon != c.lon {
			t.Fatalf("%s: NewPoint kept %v; want (%v, %v)", c.name, p, c.lat, c.lon)
		}
	}
}

func TestPointIsZero(t *testing.T) {
	if !(Point{}).IsZero() {
		t.Fatal("zero point not reported as zero")
	}
	if (Point{Lat: 25.514, Lon: 90.2067}).IsZero() {
		t.Fatal("non-zero point reported as zero")
	}
}
