// Package registry holds the in-memory zone set used for local resolution.
// Reads run against an immutable snapshot swapped atomically on refresh, so
// a resolution in flight never observes a half-updated dataset.
package registry

import (
	"fmt"
	"log"
	"sync/atomic"

	"geozone/geo"
	"geozone/models"

	"github.com/google/uuid"
)

type snapshot struct {
	towns    []models.Town
	townByID map[uuid.UUID]models.Town
	zoneByID map[uuid.UUID]models.Zone

	// ordered holds the active, resolvable zones in resolution order:
	// priority descending, zone number ascending, ID as the final tiebreak.
	ordered []models.Zone
	byTown  map[uuid.UUID][]models.Zone
}

// Registry answers zone lookups against the current snapshot.
type Registry struct {
	snap atomic.Pointer[snapshot]
}

// New builds a registry over the given towns and zones.
func New(towns []models.Town, zones []models.Zone) *Registry {
	r := &Registry{}
	r.Swap(towns, zones)
	return r
}

// Swap replaces the registry contents. Readers holding the previous snapshot
// finish against it; new reads see the new data.
func (r *Registry) Swap(towns []models.Town, zones []models.Zone) {
	r.snap.Store(build(towns, zones))
}

func build(towns []models.Town, zones []models.Zone) *snapshot {
	s := &snapshot{
		towns:    make([]models.Town, len(towns)),
		townByID: make(map[uuid.UUID]models.Town, len(towns)),
		zoneByID: make(map[uuid.UUID]models.Zone, len(zones)),
		byTown:   make(map[uuid.UUID][]models.Zone),
	}
	copy(s.towns, towns)
	for _, t := range towns {
		s.townByID[t.ID] = t
	}
	for _, z := range zones {
		s.zoneByID[z.ID] = z
		if !z.IsActive {
			continue
		}
		s.byTown[z.TownID] = append(s.byTown[z.TownID], z)
		if !z.Resolvable() {
			log.Printf("Registry excluding zone %q (%s): unusable geometry", z.Name, z.ID)
			continue
		}
		s.ordered = append(s.ordered, z)
	}
	models.SortZonesByPriority(s.ordered)
	for id := range s.byTown {
		models.SortZonesByPriority(s.byTown[id])
	}
	return s
}

// ResolveZone returns the first zone containing the point in resolution
// order. A miss is an expected outcome, reported by ok=false rather than an
// error.
func (r *Registry) ResolveZone(p geo.Point) (models.Zone, bool) {
	for _, z := range r.snap.Load().ordered {
		if z.Contains(p) {
			return z, true
		}
	}
	return models.Zone{}, false
}

// ResolveZoneInTown restricts resolution to a single town's active zones.
func (r *Registry) ResolveZoneInTown(p geo.Point, townID uuid.UUID) (models.Zone, bool) {
	for _, z := range r.snap.Load().byTown[townID] {
		if z.Contains(p) {
			return z, true
		}
	}
	return models.Zone{}, false
}

// ZoneByID returns any known zone, active or not.
func (r *Registry) ZoneByID(id uuid.UUID) (models.Zone, error) {
	if z, ok := r.snap.Load().zoneByID[id]; ok {
		return z, nil
	}
	return models.Zone{}, fmt.Errorf("registry: %w: %s", models.ErrZoneNotFound, id)
}

// ZonesForTown returns the town's active zones in resolution order.
func (r *Registry) ZonesForTown(townID uuid.UUID) []models.Zone {
	zs := r.snap.Load().byTown[townID]
	out := make([]models.Zone, len(zs))
	copy(out, zs)
	return out
}

// ActiveZones returns every active, resolvable zone in resolution order.
func (r *Registry) ActiveZones() []models.Zone {
	zs := r.snap.Load().ordered
	out := make([]models.Zone, len(zs))
	copy(out, zs)
	return out
}

// Towns returns all towns in registration order.
func (r *Registry) Towns() []models.Town {
	ts := r.snap.Load().towns
	out := make([]models.Town, len(ts))
	copy(out, ts)
	return out
}

// TownByID returns the town if the registry knows it.
func (r *Registry) TownByID(id uuid.UUID) (models.Town, bool) {
	t, ok := r.snap.Load().townByID[id]
	return t, ok
}
