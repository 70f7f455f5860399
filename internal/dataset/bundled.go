package dataset

import (
	"time"

	"geozone/geo"
	"geozone/models"

	"github.com/google/uuid"
)

// Version identifies the bundled snapshot. Bump it whenever the data below
// changes; published snapshots carry the same string.
const Version = "2026.06.1"

// Entity IDs of the bundled dataset, fixed so snapshots, caches and tests
// agree across releases.
var (
	TownTuraID     = uuid.MustParse("a3c1fe0c-2e9d-4e86-9d31-5f0c7c1f24b8")
	TownGuwahatiID = uuid.MustParse("b7d02c44-91af-4c0b-bb4e-2d6a93c05c21")

	ZoneTuraOneID     = uuid.MustParse("0e6fb3a1-57c4-4b8a-8f2d-c1a5390b7e64")
	ZoneTuraTwoID     = uuid.MustParse("1a9d5c2e-86f0-4f3b-9c77-4d2e8a61b590")
	ZoneTuraThreeID   = uuid.MustParse("2c41e7f8-b36a-4a15-8e90-7b9f05d3c6a2")
	ZoneGuwahatiOneID = uuid.MustParse("3f82a9d0-14cb-4277-b6e5-9a0c21d84f73")
	ZoneGuwahatiTwoID = uuid.MustParse("4b5c80e2-d97f-4d44-a1b8-03e6f7a2c915")

	CityTuraID     = uuid.MustParse("5d93b1f4-62e8-409c-8c5a-e7f10b248d36")
	CityGuwahatiID = uuid.MustParse("6e04c2a6-73f9-4b1d-9d6b-f8021c359e47")
)

// Bundled returns the snapshot compiled into the binary. It is the fallback
// when no remote backend is reachable, so resolution works offline out of
// the box. Callers get a fresh copy on every call.
func Bundled() *Dataset {
	return &Dataset{
		Version:     Version,
		GeneratedAt: time.Date(2026, time.June, 9, 0, 0, 0, 0, time.UTC),
		Towns: []models.Town{
			{
				ID:             TownTuraID,
				Name:           "Tura",
				State:          "Meghalaya",
				Country:        "India",
				DeliveryFee:    25,
				MinOrderAmount: 99,
				IsActive:       true,
			},
			{
				ID:             TownGuwahatiID,
				Name:           "Guwahati",
				State:          "Assam",
				Country:        "India",
				DeliveryFee:    30,
				MinOrderAmount: 149,
				IsActive:       true,
			},
		},
		Zones: []models.Zone{
			{
				ID:         ZoneTuraOneID,
				Name:       "Zone-1",
				TownID:     TownTuraID,
				ZoneNumber: 1,
				Kind:       models.ZoneKindPolygon,
				Boundary: mustRing(
					geo.Point{Lat: 25.5185, Lon: 90.2010},
					geo.Point{Lat: 25.5178, Lon: 90.2065},
					geo.Point{Lat: 25.5160, Lon: 90.2095},
					geo.Point{Lat: 25.5128, Lon: 90.2092},
					geo.Point{Lat: 25.5100, Lon: 90.2078},
					geo.Point{Lat: 25.5078, Lon: 90.2052},
					geo.Point{Lat: 25.5066, Lon: 90.2018},
					geo.Point{Lat: 25.5072, Lon: 90.1985},
					geo.Point{Lat: 25.5095, Lon: 90.1962},
					geo.Point{Lat: 25.5130, Lon: 90.1955},
					geo.Point{Lat: 25.5162, Lon: 90.1972},
				),
				Priority: 100,
				IsActive: true,
			},
			{
				ID:         ZoneTuraTwoID,
				Name:       "Zone-2",
				TownID:     TownTuraID,
				ZoneNumber: 2,
				Kind:       models.ZoneKindPolygon,
				Boundary: mustRing(
					geo.Point{Lat: 25.5180, Lon: 90.2098},
					geo.Point{Lat: 25.5175, Lon: 90.2160},
					geo.Point{Lat: 25.5150, Lon: 90.2230},
					geo.Point{Lat: 25.5095, Lon: 90.2250},
					geo.Point{Lat: 25.5040, Lon: 90.2205},
					geo.Point{Lat: 25.5030, Lon: 90.2130},
					geo.Point{Lat: 25.5060, Lon: 90.2100},
					geo.Point{Lat: 25.5120, Lon: 90.2096},
				),
				Priority: 100,
				IsActive: true,
			},
			{
				ID:         ZoneTuraThreeID,
				Name:       "Zone-3",
				TownID:     TownTuraID,
				ZoneNumber: 3,
				Kind:       models.ZoneKindCircle,
				Center:     geo.Point{Lat: 25.5390, Lon: 90.2215},
				RadiusKm:   1.0,
				Priority:   90,
				IsActive:   true,
			},
			{
				ID:         ZoneGuwahatiOneID,
				Name:       "Zone-1",
				TownID:     TownGuwahatiID,
				ZoneNumber: 1,
				Kind:       models.ZoneKindPolygon,
				Boundary: mustRing(
					geo.Point{Lat: 26.2000, Lon: 91.7200},
					geo.Point{Lat: 26.1950, Lon: 91.7600},
					geo.Point{Lat: 26.1820, Lon: 91.7850},
					geo.Point{Lat: 26.1600, Lon: 91.7900},
					geo.Point{Lat: 26.1380, Lon: 91.7800},
					geo.Point{Lat: 26.1280, Lon: 91.7550},
					geo.Point{Lat: 26.1300, Lon: 91.7250},
					geo.Point{Lat: 26.1450, Lon: 91.7050},
					geo.Point{Lat: 26.1700, Lon: 91.7000},
					geo.Point{Lat: 26.1900, Lon: 91.7050},
				),
				Priority: 100,
				IsActive: true,
			},
			{
				ID:         ZoneGuwahatiTwoID,
				Name:       "Zone-2",
				TownID:     TownGuwahatiID,
				ZoneNumber: 2,
				Kind:       models.ZoneKindCircle,
				Center:     geo.Point{Lat: 26.1061, Lon: 91.5859},
				RadiusKm:   4.0,
				Priority:   80,
				IsActive:   true,
			},
		},
		Cities: []models.CityBoundary{
			{
				ID:      CityTuraID,
				Name:    "Tura",
				State:   "Meghalaya",
				Country: "India",
				Boundary: mustRing(
					geo.Point{Lat: 25.5600, Lon: 90.2000},
					geo.Point{Lat: 25.5565, Lon: 90.2280},
					geo.Point{Lat: 25.5450, Lon: 90.2480},
					geo.Point{Lat: 25.5280, Lon: 90.2590},
					geo.Point{Lat: 25.5050, Lon: 90.2600},
					geo.Point{Lat: 25.4870, Lon: 90.2500},
					geo.Point{Lat: 25.4800, Lon: 90.2300},
					geo.Point{Lat: 25.4810, Lon: 90.2080},
					geo.Point{Lat: 25.4900, Lon: 90.1850},
					geo.Point{Lat: 25.5080, Lon: 90.1700},
					geo.Point{Lat: 25.5300, Lon: 90.1650},
					geo.Point{Lat: 25.5480, Lon: 90.1700},
					geo.Point{Lat: 25.5570, Lon: 90.1830},
				),
				IsActive: true,
			},
			{
				ID:      CityGuwahatiID,
				Name:    "Guwahati",
				State:   "Assam",
				Country: "India",
				Boundary: mustRing(
					geo.Point{Lat: 26.2350, Lon: 91.6600},
					geo.Point{Lat: 26.2280, Lon: 91.7500},
					geo.Point{Lat: 26.2100, Lon: 91.8300},
					geo.Point{Lat: 26.1750, Lon: 91.8750},
					geo.Point{Lat: 26.1300, Lon: 91.8800},
					geo.Point{Lat: 26.0900, Lon: 91.8500},
					geo.Point{Lat: 26.0650, Lon: 91.7900},
					geo.Point{Lat: 26.0600, Lon: 91.7100},
					geo.Point{Lat: 26.0750, Lon: 91.6300},
					geo.Point{Lat: 26.1100, Lon: 91.5600},
					geo.Point{Lat: 26.1600, Lon: 91.5400},
					geo.Point{Lat: 26.2100, Lon: 91.5800},
				),
				IsActive: true,
			},
		},
	}
}

// mustRing builds a boundary from bundled vertices. The data is fixed at
// compile time, so a bad ring is a programming error.
func mustRing(vertices ...geo.Point) geo.Polygon {
	pg, err := geo.NewPolygon(vertices)
	if err != nil {
		panic(err)
	}
	return pg
}
