package boundary

import (
	"testing"

	"geozone/geo"
	"geozone/internal/dataset"
	"geozone/models"

	"github.com/google/uuid"
)

func outline(t *testing.T, name string, lat, lon, size float64, active bool) models.CityBoundary {
	t.Helper()
	pg, err := geo.NewPolygon([]geo.Point{
		{Lat: lat, Lon: lon},
		{Lat: lat, Lon: lon + size},
		{Lat: lat + size, Lon: lon + size},
		{Lat: lat + size, Lon: lon},
	})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	return models.CityBoundary{
		ID:       uuid.New(),
		Name:     name,
		Boundary: pg,
		IsActive: active,
	}
}

func TestDetectCity(t *testing.T) {
	d := NewDetector([]models.CityBoundary{
		outline(t, "Alpha", 0, 0, 10, true),
		outline(t, "Beta", 20, 20, 10, true),
	})

	cases := []struct {
		name string
		p    geo.Point
		want string
		ok   bool
	}{
		{"inside first", geo.Point{Lat: 5, Lon: 5}, "Alpha", true},
		{"inside second", geo.Point{Lat: 25, Lon: 25}, "Beta", true},
		{"on a border", geo.Point{Lat: 0, Lon: 5}, "Alpha", true},
		{"outside all", geo.Point{Lat: 50, Lon: 50}, "", false},
	}
	for _, c := range cases {
		city, ok := d.DetectCity(c.p)
		if ok != c.ok || city.Name != c.want {
			t.Fatalf("%s: DetectCity(%v) = %q, %v; want %q, %v", c.name, c.p, city.Name, ok, c.want, c.ok)
		}
	}
}

func TestDetectCitySkipsInactiveAndEmpty(t *testing.T) {
	inactive := outline(t, "Ghost", 0, 0, 10, false)
	hollow := models.CityBoundary{ID: uuid.New(), Name: "Hollow", IsActive: true}
	d := NewDetector([]models.CityBoundary{inactive, hollow})

	if city, ok := d.DetectCity(geo.Point{Lat: 5, Lon: 5}); ok {
		t.Fatalf("detected %q; inactive and hollow outlines must not match", city.Name)
	}
	if n := len(d.Cities()); n != 0 {
		t.Fatalf("Cities() kept %d outlines; want 0", n)
	}
}

func TestDetectCityOverlapIsDeterministic(t *testing.T) {
	first := outline(t, "First", 0, 0, 10, true)
	second := outline(t, "Second", 0, 0, 10, true)
	d := NewDetector([]models.CityBoundary{first, second})

	for i := 0; i < 10; i++ {
		city, ok := d.DetectCity(geo.Point{Lat: 5, Lon: 5})
		if !ok || city.Name != "First" {
			t.Fatalf("run %d: DetectCity = %q, %v; want the first registered outline", i, city.Name, ok)
		}
	}
}

func TestDetectCityBundledFixtures(t *testing.T) {
	d := NewDetector(dataset.Bundled().Cities)

	if city, ok := d.DetectCity(geo.Point{Lat: 25.5200, Lon: 90.2100}); !ok || city.ID != dataset.CityTuraID {
		t.Fatalf("DetectCity(Tura point) = %q, %v; want the Tura outline", city.Name, ok)
	}
	if city, ok := d.DetectCity(geo.Point{Lat: 26.1500, Lon: 91.7400}); !ok || city.ID != dataset.CityGuwahatiID {
		t.Fatalf("DetectCity(Guwahati point) = %q, %v; want the Guwahati outline", city.Name, ok)
	}
	if city, ok := d.DetectCity(geo.Point{Lat: 0, Lon: 0}); ok {
		t.Fatalf("DetectCity(null island) = %q; want no city", city.Name)
	}
}

func TestSwapReplacesOutlines(t *testing.T) {
	d := NewDetector([]models.CityBoundary{outline(t, "Old", 0, 0, 10, true)})
	d.Swap([]models.CityBoundary{outline(t, "New", 20, 20, 10, true)})

	if _, ok := d.DetectCity(geo.Point{Lat: 5, Lon: 5}); ok {
		t.Fatal("old outline still detected after swap")
	}
	if city, ok := d.DetectCity(geo.Point{Lat: 25, Lon: 25}); !ok || city.Name != "New" {
		t.Fatalf("new outline not detected after swap: %q, %v", city.Name, ok)
	}
}
