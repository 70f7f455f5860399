package resolver

import (
	"context"
	"log"
	"time"

	"geozone/geo"
	"geozone/internal/cache"
	"geozone/internal/stream"
	"geozone/models"

	"github.com/google/uuid"
)

// defaultRemoteTimeout bounds each remote lookup. A backend slower than
// this serves callers worse than the local fallback would.
const defaultRemoteTimeout = 5 * time.Second

// Config wires an Orchestrator. Only Local is ordinarily required; Remote,
// Cache and Events degrade to disabled when absent.
type Config struct {
	Remote  RemoteStore
	Local   *LocalResolver
	Cache   *cache.ResolutionCache
	Events  EventSink
	Timeout time.Duration
}

// Orchestrator runs the remote-first resolution flow: cache, then backend,
// then local data, tagging every answer with its source.
type Orchestrator struct {
	remote  RemoteStore
	local   *LocalResolver
	cache   *cache.ResolutionCache
	events  EventSink
	timeout time.Duration
}

// New builds an Orchestrator from the config.
func New(cfg Config) *Orchestrator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &Orchestrator{
		remote:  cfg.Remote,
		local:   cfg.Local,
		cache:   cfg.Cache,
		events:  cfg.Events,
		timeout: timeout,
	}
}

// Resolve answers which zone and city serve the point. A result with a nil
// Zone is a valid "outside coverage" answer; errors are reserved for inputs
// that cannot be resolved at all, such as out-of-range coordinates.
func (o *Orchestrator) Resolve(ctx context.Context, p geo.Point) (models.ResolutionResult, error) {
	start := time.Now()
	res, err := o.resolve(ctx, p)
	if err != nil {
		return models.ResolutionResult{}, err
	}
	o.publish(ctx, p, res, time.Since(start))
	return res, nil
}

func (o *Orchestrator) resolve(ctx context.Context, p geo.Point) (models.ResolutionResult, error) {
	if _, err := geo.NewPoint(p.Lat, p.Lon); err != nil {
		return models.ResolutionResult{}, err
	}

	res := models.ResolutionResult{Source: models.SourceLocal, MatchedAt: time.Now().UTC()}
	if city, ok := o.local.DetectCity(p); ok {
		res.City = &city
	}

	if entry, ok := o.cache.Get(ctx, p); ok {
		res.Zone = entry.Zone
		res.Source = entry.Source
		return res, nil
	}

	if zone, ok := o.remoteZone(ctx, p); ok {
		res.Zone = &zone
		res.Source = models.SourceRemote
		o.cache.Put(ctx, p, cache.Entry{Zone: res.Zone, Source: res.Source})
		return res, nil
	}

	if zone, ok := o.local.ResolveZone(p); ok {
		res.Zone = &zone
		o.cache.Put(ctx, p, cache.Entry{Zone: res.Zone, Source: res.Source})
		return res, nil
	}

	// A miss is only worth remembering when backed by an accepted dataset.
	if o.local.CanResolveZones() {
		o.cache.Put(ctx, p, cache.Entry{Source: res.Source})
	}
	return res, nil
}

// remoteZone runs the two-step backend lookup: point to zone ID, then ID to
// full zone. Any failure is logged and reported as a miss so resolution
// falls through to local data.
func (o *Orchestrator) remoteZone(ctx context.Context, p geo.Point) (models.Zone, bool) {
	if o.remote == nil {
		return models.Zone{}, false
	}
	rctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	id, ok, err := o.remote.GetZoneForPoint(rctx, p)
	if err != nil {
		log.Printf("Remote zone lookup failed, using local data: %v", err)
		return models.Zone{}, false
	}
	if !ok {
		return models.Zone{}, false
	}
	zone, err := o.remote.GetZoneByID(rctx, id)
	if err != nil {
		log.Printf("Failed to fetch remote zone %s, using local data: %v", id, err)
		return models.Zone{}, false
	}
	return zone, true
}

// IsServiceable reports whether any zone covers the point.
func (o *Orchestrator) IsServiceable(ctx context.Context, p geo.Point) (bool, error) {
	res, err := o.Resolve(ctx, p)
	if err != nil {
		return false, err
	}
	return res.Serviceable(), nil
}

// NearestZone suggests the closest zone to an uncovered point, with its
// distance in kilometers. The backend answer wins when available.
func (o *Orchestrator) NearestZone(ctx context.Context, p geo.Point) (models.Zone, float64, bool) {
	if zone, ok := o.remoteNearest(ctx, p); ok {
		return zone, geo.Haversine(p, zone.Centroid()), true
	}
	return o.local.NearestZone(p)
}

func (o *Orchestrator) remoteNearest(ctx context.Context, p geo.Point) (models.Zone, bool) {
	if o.remote == nil {
		return models.Zone{}, false
	}
	rctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	id, ok, err := o.remote.FindNearestZone(rctx, p)
	if err != nil {
		log.Printf("Remote nearest-zone lookup failed, using local data: %v", err)
		return models.Zone{}, false
	}
	if !ok {
		return models.Zone{}, false
	}
	zone, err := o.remote.GetZoneByID(rctx, id)
	if err != nil {
		log.Printf("Failed to fetch remote zone %s, using local data: %v", id, err)
		return models.Zone{}, false
	}
	return zone, true
}

// ListActiveZones returns a town's zones, remote-first with local fallback.
func (o *Orchestrator) ListActiveZones(ctx context.Context, townID uuid.UUID) []models.Zone {
	if o.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, o.timeout)
		zones, err := o.remote.ListActiveZones(rctx, townID)
		cancel()
		if err != nil {
			log.Printf("Remote zone list failed, using local data: %v", err)
		} else if len(zones) > 0 {
			return zones
		}
	}
	return o.local.ZonesForTown(townID)
}

// DetectCity reports the city boundary containing the point. City outlines
// ship with the dataset, so this never needs the backend.
func (o *Orchestrator) DetectCity(p geo.Point) (models.CityBoundary, bool) {
	return o.local.DetectCity(p)
}

func (o *Orchestrator) publish(ctx context.Context, p geo.Point, res models.ResolutionResult, took time.Duration) {
	if o.events == nil {
		return
	}
	event := stream.ResolutionEvent{
		Latitude:   p.Lat,
		Longitude:  p.Lon,
		Source:     string(res.Source),
		MatchedAt:  res.MatchedAt,
		DurationMs: took.Milliseconds(),
	}
	if res.Zone != nil {
		event.ZoneID = &res.Zone.ID
		event.TownID = &res.Zone.TownID
	}
	if res.City != nil {
		event.CityID = &res.City.ID
	}
	if err := o.events.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish resolution event: %v", err)
	}
}
