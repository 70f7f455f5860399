package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"geozone/geo"
	"geozone/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// zoneColumns matches the scan order of scanZone. Boundaries travel as jsonb
// text; uuids travel as text so the driver stays out of type mapping.
const zoneColumns = `id::text, name, town_id::text, zone_number, kind,
	COALESCE(boundary::text, ''), COALESCE(center_lat, 0), COALESCE(center_lng, 0),
	COALESCE(radius_km, 0), priority, is_active`

// Supabase talks to the project's Postgres database directly through a pgx
// pool. The spatial work happens server side in the get_zone_for_point and
// find_nearest_zone functions; this client only ships coordinates and reads
// rows.
type Supabase struct {
	pool *pgxpool.Pool
}

// NewSupabase connects using SUPABASE_DB_URL and verifies the connection.
func NewSupabase(ctx context.Context) (*Supabase, error) {
	url := os.Getenv("SUPABASE_DB_URL")
	if url == "" {
		return nil, fmt.Errorf("missing required environment variable SUPABASE_DB_URL")
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach Supabase Postgres: %w", err)
	}
	log.Println("Successfully connected to Supabase Postgres")
	return &Supabase{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Supabase) Close() {
	s.pool.Close()
}

// GetZoneForPoint runs the point-in-zone lookup. ok=false means no zone
// covers the point, which is an answer, not an error.
func (s *Supabase) GetZoneForPoint(ctx context.Context, p geo.Point) (uuid.UUID, bool, error) {
	return s.pointLookup(ctx, `SELECT get_zone_for_point($1, $2)::text`, p)
}

// FindNearestZone asks for the closest active zone to the point.
func (s *Supabase) FindNearestZone(ctx context.Context, p geo.Point) (uuid.UUID, bool, error) {
	return s.pointLookup(ctx, `SELECT find_nearest_zone($1, $2)::text`, p)
}

func (s *Supabase) pointLookup(ctx context.Context, sql string, p geo.Point) (uuid.UUID, bool, error) {
	var raw *string
	if err := s.pool.QueryRow(ctx, sql, p.Lat, p.Lon).Scan(&raw); err != nil {
		return uuid.Nil, false, fmt.Errorf("point lookup failed: %w", err)
	}
	if raw == nil || *raw == "" {
		return uuid.Nil, false, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("point lookup returned %q: %w", *raw, err)
	}
	return id, true, nil
}

// GetZoneByID fetches one zone row. Unknown IDs yield
// models.ErrZoneNotFound.
func (s *Supabase) GetZoneByID(ctx context.Context, id uuid.UUID) (models.Zone, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+zoneColumns+` FROM zones WHERE id = $1`, id.String())
	z, err := scanZone(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Zone{}, fmt.Errorf("zone %s: %w", id, models.ErrZoneNotFound)
	}
	if err != nil {
		return models.Zone{}, fmt.Errorf("failed to fetch zone %s: %w", id, err)
	}
	return z, nil
}

// ListActiveZones returns a town's active zones in resolution order.
func (s *Supabase) ListActiveZones(ctx context.Context, townID uuid.UUID) ([]models.Zone, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+zoneColumns+` FROM zones WHERE town_id = $1 AND is_active ORDER BY priority DESC, zone_number ASC, id ASC`,
		townID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list zones for town %s: %w", townID, err)
	}
	defer rows.Close()

	var zones []models.Zone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan zone row: %w", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read zone rows: %w", err)
	}
	return zones, nil
}

// rowScanner covers pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanZone(row rowScanner) (models.Zone, error) {
	var (
		z         models.Zone
		idRaw     string
		townRaw   string
		kind      string
		boundary  string
		centerLat float64
		centerLng float64
	)
	if err := row.Scan(&idRaw, &z.Name, &townRaw, &z.ZoneNumber, &kind, &boundary,
		&centerLat, &centerLng, &z.RadiusKm, &z.Priority, &z.IsActive); err != nil {
		return models.Zone{}, err
	}

	var err error
	if z.ID, err = uuid.Parse(idRaw); err != nil {
		return models.Zone{}, fmt.Errorf("bad zone id %q: %w", idRaw, err)
	}
	if z.TownID, err = uuid.Parse(townRaw); err != nil {
		return models.Zone{}, fmt.Errorf("bad town id %q on zone %s: %w", townRaw, z.ID, err)
	}
	z.Kind = models.ZoneKind(kind)
	z.Boundary = decodeBoundary([]byte(boundary))
	z.Center = geo.Point{Lat: centerLat, Lon: centerLng}
	return z, nil
}
