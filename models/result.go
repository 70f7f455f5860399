package models

import "time"

// Source tags which data answered a resolution.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// ResolutionResult is the answer to "which zone and city cover this point".
// A nil Zone means the point is outside every service area; that is a valid
// outcome, not an error. City is resolved independently of the zone and may
// be present when Zone is nil, or absent when a zone matched.
type ResolutionResult struct {
	Zone      *Zone         `json:"zone"`
	City      *CityBoundary `json:"city"`
	Source    Source        `json:"source"`
	MatchedAt time.Time     `json:"matched_at"`
}

// Serviceable reports whether a delivery zone covers the resolved point.
func (r ResolutionResult) Serviceable() bool {
	return r.Zone != nil
}
