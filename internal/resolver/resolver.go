// Package resolver answers the question "which delivery zone serves this
// point". It combines a remote zone store with the in-memory registry:
// remote answers win when the backend is reachable, local data keeps every
// lookup working when it is not, and each result is tagged with the data
// source that produced it.
package resolver

import (
	"context"

	"geozone/geo"
	"geozone/internal/stream"
	"geozone/models"

	"github.com/google/uuid"
)

// RemoteStore is the backend contract for zone lookups. Both store.Supabase
// and store.RESTClient satisfy it, so the orchestrator does not care whether
// it talks Postgres wire or PostgREST.
type RemoteStore interface {
	// GetZoneForPoint returns the ID of the zone covering the point.
	// ok=false means the backend answered and no zone matched.
	GetZoneForPoint(ctx context.Context, p geo.Point) (uuid.UUID, bool, error)

	// FindNearestZone returns the ID of the closest active zone.
	FindNearestZone(ctx context.Context, p geo.Point) (uuid.UUID, bool, error)

	// GetZoneByID fetches one zone. Unknown IDs yield models.ErrZoneNotFound.
	GetZoneByID(ctx context.Context, id uuid.UUID) (models.Zone, error)

	// ListActiveZones returns a town's active zones in resolution order.
	ListActiveZones(ctx context.Context, townID uuid.UUID) ([]models.Zone, error)
}

// EventSink receives resolution audit events. stream.Publisher satisfies it;
// a nil sink disables publishing.
type EventSink interface {
	Publish(ctx context.Context, event stream.ResolutionEvent) error
}
