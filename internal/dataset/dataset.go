// Package dataset defines the zone dataset snapshot: the bundled copy
// compiled into the binary and the JSON format snapshots travel in through
// the object store.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"geozone/models"
)

// Dataset is one versioned snapshot of the full zone universe.
type Dataset struct {
	Version     string                `json:"version"`
	GeneratedAt time.Time             `json:"generated_at"`
	Towns       []models.Town         `json:"towns"`
	Zones       []models.Zone         `json:"zones"`
	Cities      []models.CityBoundary `json:"cities"`
}

// Encode writes the snapshot as JSON.
func (d *Dataset) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode dataset %s: %w", d.Version, err)
	}
	return nil
}

// Decode reads a snapshot produced by Encode. The version must be present;
// everything else is checked by the validator, not here.
func Decode(r io.Reader) (*Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if d.Version == "" {
		return nil, fmt.Errorf("dataset has no version")
	}
	return &d, nil
}
