package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"geozone/geo"
	"geozone/models"

	"github.com/google/uuid"
)

// restPageSize caps one PostgREST response; larger result sets page through
// offset windows until a short page arrives.
const restPageSize = 100

// RESTClient talks to the Supabase PostgREST endpoint with the project's
// anon key. It covers the same lookups as the direct Postgres client for
// deployments that cannot hold a database URL.
type RESTClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewRESTClient builds a client for the given project URL and API key.
func NewRESTClient(baseURL, apiKey string) *RESTClient {
	return &RESTClient{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// NewRESTClientFromEnv reads SUPABASE_URL and SUPABASE_ANON_KEY.
func NewRESTClientFromEnv() (*RESTClient, error) {
	baseURL := os.Getenv("SUPABASE_URL")
	apiKey := os.Getenv("SUPABASE_ANON_KEY")
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("missing required Supabase environment variables")
	}
	return NewRESTClient(baseURL, apiKey), nil
}

// GetZoneForPoint calls the point-in-zone function through the rpc endpoint.
func (c *RESTClient) GetZoneForPoint(ctx context.Context, p geo.Point) (uuid.UUID, bool, error) {
	return c.pointRPC(ctx, "get_zone_for_point", p)
}

// FindNearestZone calls the nearest-zone function through the rpc endpoint.
func (c *RESTClient) FindNearestZone(ctx context.Context, p geo.Point) (uuid.UUID, bool, error) {
	return c.pointRPC(ctx, "find_nearest_zone", p)
}

func (c *RESTClient) pointRPC(ctx context.Context, fn string, p geo.Point) (uuid.UUID, bool, error) {
	var raw *string
	if err := c.rpc(ctx, fn, map[string]any{"lat": p.Lat, "lng": p.Lon}, &raw); err != nil {
		return uuid.Nil, false, err
	}
	if raw == nil || *raw == "" {
		return uuid.Nil, false, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("rpc %s returned %q: %w", fn, *raw, err)
	}
	return id, true, nil
}

// GetZoneByID fetches one zone row through the table endpoint.
func (c *RESTClient) GetZoneByID(ctx context.Context, id uuid.UUID) (models.Zone, error) {
	query := url.Values{}
	query.Set("id", "eq."+id.String())
	query.Set("limit", "1")

	var page []zoneRecord
	if err := c.get(ctx, "/rest/v1/zones", query, &page); err != nil {
		return models.Zone{}, fmt.Errorf("failed to fetch zone %s: %w", id, err)
	}
	if len(page) == 0 {
		return models.Zone{}, fmt.Errorf("zone %s: %w", id, models.ErrZoneNotFound)
	}
	return page[0].toZone()
}

// ListActiveZones pages through a town's active zones in resolution order.
func (c *RESTClient) ListActiveZones(ctx context.Context, townID uuid.UUID) ([]models.Zone, error) {
	var zones []models.Zone
	for offset := 0; ; offset += restPageSize {
		query := url.Values{}
		query.Set("town_id", "eq."+townID.String())
		query.Set("is_active", "eq.true")
		query.Set("order", "priority.desc,zone_number.asc,id.asc")
		query.Set("limit", fmt.Sprint(restPageSize))
		query.Set("offset", fmt.Sprint(offset))

		var page []zoneRecord
		if err := c.get(ctx, "/rest/v1/zones", query, &page); err != nil {
			return nil, fmt.Errorf("failed to list zones for town %s: %w", townID, err)
		}
		for _, rec := range page {
			z, err := rec.toZone()
			if err != nil {
				return nil, err
			}
			zones = append(zones, z)
		}
		if len(page) < restPageSize {
			return zones, nil
		}
	}
}

func (c *RESTClient) rpc(ctx context.Context, fn string, args map[string]any, out any) error {
	body, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode rpc %s arguments: %w", fn, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/v1/rpc/"+fn, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, fmt.Sprintf("rpc %s", fn), out)
}

func (c *RESTClient) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

func (c *RESTClient) do(req *http.Request, what string, out any) error {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned unexpected status %s", what, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", what, err)
	}
	return nil
}

// zoneRecord mirrors one zones-table row as PostgREST serves it.
type zoneRecord struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	TownID     string          `json:"town_id"`
	ZoneNumber int             `json:"zone_number"`
	Kind       string          `json:"kind"`
	Boundary   json.RawMessage `json:"boundary"`
	CenterLat  *float64        `json:"center_lat"`
	CenterLng  *float64        `json:"center_lng"`
	RadiusKm   *float64        `json:"radius_km"`
	Priority   int             `json:"priority"`
	IsActive   bool            `json:"is_active"`
}

func (rec zoneRecord) toZone() (models.Zone, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return models.Zone{}, fmt.Errorf("bad zone id %q: %w", rec.ID, err)
	}
	townID, err := uuid.Parse(rec.TownID)
	if err != nil {
		return models.Zone{}, fmt.Errorf("bad town id %q on zone %s: %w", rec.TownID, id, err)
	}
	z := models.Zone{
		ID:         id,
		Name:       rec.Name,
		TownID:     townID,
		ZoneNumber: rec.ZoneNumber,
		Kind:       models.ZoneKind(rec.Kind),
		Boundary:   decodeBoundary(rec.Boundary),
		Priority:   rec.Priority,
		IsActive:   rec.IsActive,
	}
	if rec.CenterLat != nil && rec.CenterLng != nil {
		z.Center = geo.Point{Lat: *rec.CenterLat, Lon: *rec.CenterLng}
	}
	if rec.RadiusKm != nil {
		z.RadiusKm = *rec.RadiusKm
	}
	return z, nil
}
