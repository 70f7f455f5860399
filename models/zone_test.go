package models

import (
	"testing"

	"geozone/geo"

	"github.com/google/uuid"
)

func testRing(t *testing.T) geo.Polygon {
	t.Helper()
	pg, err := geo.NewPolygon([]geo.Point{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 1, Lon: 1},
		{Lat: 1, Lon: 0},
	})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	return pg
}

func TestZoneContains(t *testing.T) {
	ring := testRing(t)
	cases := []struct {
		name string
		zone Zone
		p    geo.Point
		want bool
	}{
		{
			"polygon hit",
			Zone{Kind: ZoneKindPolygon, Boundary: ring},
			geo.Point{Lat: 0.5, Lon: 0.5},
			true,
		},
		{
			"polygon miss",
			Zone{Kind: ZoneKindPolygon, Boundary: ring},
			geo.Point{Lat: 2, Lon: 2},
			false,
		},
		{
			"polygon without ring",
			Zone{Kind: ZoneKindPolygon},
			geo.Point{Lat: 0.5, Lon: 0.5},
			false,
		},
		{
			"circle hit",
			Zone{Kind: ZoneKindCircle, Center: geo.Point{Lat: 10, Lon: 10}, RadiusKm: 5},
			geo.Point{Lat: 10.01, Lon: 10.01},
			true,
		},
		{
			"circle miss",
			Zone{Kind: ZoneKindCircle, Center: geo.Point{Lat: 10, Lon: 10}, RadiusKm: 5},
			geo.Point{Lat: 11, Lon: 11},
			false,
		},
		{
			"circle zero radius",
			Zone{Kind: ZoneKindCircle, Center: geo.Point{Lat: 10, Lon: 10}},
			geo.Point{Lat: 10, Lon: 10},
			false,
		},
		{
			"circle unset center",
			Zone{Kind: ZoneKindCircle, RadiusKm: 5},
			geo.Point{Lat: 0.1, Lon: 0.1},
			false,
		},
		{
			"unknown kind",
			Zone{Kind: ZoneKind("blob"), Boundary: ring},
			geo.Point{Lat: 0.5, Lon: 0.5},
			false,
		},
	}
	for _, c := range cases {
		if got := c.zone.Contains(c.p); got != c.want {
			t.Fatalf("%s: Contains(%v) = %v; want %v", c.name, c.p, got, c.want)
		}
	}
}

func TestZoneResolvable(t *testing.T) {
	ring := testRing(t)
	cases := []struct {
		name string
		zone Zone
		want bool
	}{
		{"valid polygon", Zone{Kind: ZoneKindPolygon, Boundary: ring}, true},
		{"empty polygon", Zone{Kind: ZoneKindPolygon}, false},
		{"valid circle", Zone{Kind: ZoneKindCircle, Center: geo.Point{Lat: 1, Lon: 1}, RadiusKm: 2}, true},
		{"circle without radius", Zone{Kind: ZoneKindCircle, Center: geo.Point{Lat: 1, Lon: 1}}, false},
		{"circle without center", Zone{Kind: ZoneKindCircle, RadiusKm: 2}, false},
		{"unknown kind", Zone{Kind: ZoneKind("blob")}, false},
	}
	for _, c := range cases {
		if got := c.zone.Resolvable(); got != c.want {
			t.Fatalf("%s: Resolvable() = %v; want %v", c.name, got, c.want)
		}
	}
}

func TestSortZonesByPriority(t *testing.T) {
	idA := uuid.MustParse("11111111-1111-4111-8111-111111111111")
	idB := uuid.MustParse("22222222-2222-4222-8222-222222222222")
	zones := []Zone{
		{ID: idB, Name: "low priority", Priority: 10, ZoneNumber: 1},
		{ID: idA, Name: "tied number tiebreak", Priority: 50, ZoneNumber: 2},
		{ID: idB, Name: "tied id tiebreak", Priority: 50, ZoneNumber: 2},
		{ID: idA, Name: "top", Priority: 90, ZoneNumber: 3},
		{ID: idA, Name: "tied lower number", Priority: 50, ZoneNumber: 1},
	}
	SortZonesByPriority(zones)

	wantNames := []string{"top", "tied lower number", "tied number tiebreak", "tied id tiebreak", "low priority"}
	for i, want := range wantNames {
		if zones[i].Name != want {
			t.Fatalf("zones[%d] = %q; want %q (full order %v)", i, zones[i].Name, want, zoneNames(zones))
		}
	}
}

func zoneNames(zones []Zone) []string {
	names := make([]string, len(zones))
	for i, z := range zones {
		names[i] = z.Name
	}
	return names
}
