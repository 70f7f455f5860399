// Package store implements the remote zone lookups against the hosted
// Supabase project. Two transports exist for the same contract: a direct
// Postgres connection for deployments holding the database URL, and a
// PostgREST client for deployments that only hold the project's anon key.
package store

import (
	"encoding/json"
	"log"

	"geozone/geo"
)

// decodeBoundary parses the jsonb vertex array the zones table stores.
// Undecodable or degenerate rings come back as the zero polygon: one broken
// boundary must not fail a whole fetch, and zones without usable geometry
// simply never match.
func decodeBoundary(raw []byte) geo.Polygon {
	if len(raw) == 0 {
		return geo.Polygon{}
	}
	var pg geo.Polygon
	if err := json.Unmarshal(raw, &pg); err != nil {
		log.Printf("Undecodable zone boundary dropped: %v", err)
		return geo.Polygon{}
	}
	return pg
}
