package resolver

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"geozone/geo"
	"geozone/internal/boundary"
	"geozone/internal/dataset"
	"geozone/internal/registry"
	"geozone/internal/validate"
	"geozone/models"

	"github.com/google/uuid"
)

// LocalResolver resolves zones and city boundaries from in-memory data. All
// methods tolerate a nil receiver and answer as if no data were loaded, so
// the orchestrator can treat "no local data" and "local miss" uniformly.
type LocalResolver struct {
	registry *registry.Registry
	detector *boundary.Detector

	// applied flips once a dataset has passed validation and been swapped
	// in. Until then a zone miss means "no data", not "no coverage", and
	// must not be cached or reported as authoritative.
	applied atomic.Bool
}

// NewLocal returns a resolver with no data. Feed it datasets through Apply.
func NewLocal() *LocalResolver {
	return &LocalResolver{
		registry: registry.New(nil, nil),
		detector: boundary.NewDetector(nil),
	}
}

// BuildLocal builds a resolver and applies the given dataset. The report
// tells the caller whether the dataset was accepted.
func BuildLocal(ctx context.Context, ds *dataset.Dataset) (*LocalResolver, validate.Report) {
	l := NewLocal()
	report := l.Apply(ctx, ds)
	return l, report
}

// Apply validates the dataset and swaps it in. Datasets with issues are
// rejected wholesale and the previous snapshot keeps serving; warnings are
// logged and do not block. Lookups in flight finish against the snapshot
// they started with.
func (l *LocalResolver) Apply(ctx context.Context, ds *dataset.Dataset) validate.Report {
	report := validate.Run(ctx, ds)
	if report.HasIssues() {
		log.Printf("Rejecting dataset %s: %d validation issues", ds.Version, len(report.Issues))
		return report
	}
	for _, w := range report.Warnings {
		log.Printf("Dataset %s warning: %s", ds.Version, w)
	}
	l.registry.Swap(ds.Towns, ds.Zones)
	l.detector.Swap(ds.Cities)
	l.applied.Store(true)
	log.Printf("Successfully applied dataset %s: %d towns, %d zones, %d cities",
		ds.Version, len(ds.Towns), len(ds.Zones), len(ds.Cities))
	return report
}

// CanResolveZones reports whether zone answers are backed by an accepted
// dataset.
func (l *LocalResolver) CanResolveZones() bool {
	return l != nil && l.applied.Load()
}

// ResolveZone returns the highest-priority zone containing the point.
func (l *LocalResolver) ResolveZone(p geo.Point) (models.Zone, bool) {
	if l == nil {
		return models.Zone{}, false
	}
	return l.registry.ResolveZone(p)
}

// ResolveZoneInTown restricts resolution to one town's zones.
func (l *LocalResolver) ResolveZoneInTown(p geo.Point, townID uuid.UUID) (models.Zone, bool) {
	if l == nil {
		return models.Zone{}, false
	}
	return l.registry.ResolveZoneInTown(p, townID)
}

// ZoneByID returns any known zone, active or not.
func (l *LocalResolver) ZoneByID(id uuid.UUID) (models.Zone, error) {
	if l == nil {
		return models.Zone{}, fmt.Errorf("no local data: %w: %s", models.ErrZoneNotFound, id)
	}
	return l.registry.ZoneByID(id)
}

// ZonesForTown returns the town's active zones in resolution order.
func (l *LocalResolver) ZonesForTown(townID uuid.UUID) []models.Zone {
	if l == nil {
		return nil
	}
	return l.registry.ZonesForTown(townID)
}

// TownByID returns the town if the current dataset knows it.
func (l *LocalResolver) TownByID(id uuid.UUID) (models.Town, bool) {
	if l == nil {
		return models.Town{}, false
	}
	return l.registry.TownByID(id)
}

// DetectCity returns the city boundary containing the point.
func (l *LocalResolver) DetectCity(p geo.Point) (models.CityBoundary, bool) {
	if l == nil {
		return models.CityBoundary{}, false
	}
	return l.detector.DetectCity(p)
}

// NearestZone returns the closest zone by centroid distance, in kilometers.
// When a city boundary contains the point, the scan is limited to that
// city's town so suggestions stay where the caller already is.
func (l *LocalResolver) NearestZone(p geo.Point) (models.Zone, float64, bool) {
	if !l.CanResolveZones() {
		return models.Zone{}, 0, false
	}
	candidates := l.registry.ActiveZones()
	if city, ok := l.detector.DetectCity(p); ok {
		if scoped := l.zonesForCity(city); len(scoped) > 0 {
			candidates = scoped
		}
	}

	var (
		best   models.Zone
		bestKm float64
		found  bool
	)
	for _, z := range candidates {
		if !z.Resolvable() {
			continue
		}
		km := geo.Haversine(p, z.Centroid())
		if !found || km < bestKm {
			best, bestKm, found = z, km, true
		}
	}
	return best, bestKm, found
}

// zonesForCity maps a city boundary to its town's zones. Towns and city
// boundaries are separate records linked only by name and state.
func (l *LocalResolver) zonesForCity(city models.CityBoundary) []models.Zone {
	for _, t := range l.registry.Towns() {
		if t.Name == city.Name && t.State == city.State {
			return l.registry.ZonesForTown(t.ID)
		}
	}
	return nil
}
