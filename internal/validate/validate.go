// Package validate runs integrity checks over a dataset snapshot before it
// is trusted for local resolution. Issues mean the zone data cannot be
// relied on; warnings flag suspicious data that still resolves. Validation
// itself never fails: a broken dataset yields a report, not an error.
package validate

import (
	"context"
	"fmt"

	"geozone/internal/check"
	"geozone/internal/dataset"
	"geozone/models"

	"github.com/google/uuid"
)

// Report is the outcome of one validation run. Slices keep registration
// order of the checks, so identical datasets always produce identical
// reports.
type Report struct {
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// HasIssues reports whether the dataset is unfit for zone resolution.
func (r Report) HasIssues() bool {
	return len(r.Issues) > 0
}

// Clean reports a dataset with nothing to complain about.
func (r Report) Clean() bool {
	return len(r.Issues) == 0 && len(r.Warnings) == 0
}

func (r *Report) issue(format string, args ...any) {
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// scan is the pipeline item: the dataset under inspection plus one report
// slot per check, so concurrent checks never contend and the merged report
// keeps a stable order.
type scan struct {
	ds    *dataset.Dataset
	slots []Report
}

var checks = []struct {
	name string
	fn   func(ds *dataset.Dataset) Report
}{
	{"town references", checkTownRefs},
	{"zone geometry", checkZoneGeometry},
	{"delivery terms", checkDeliveryTerms},
	{"zone numbering", checkZoneNumbering},
	{"city overlap", checkCityOverlap},
	{"longitude span", checkLonSpan},
}

// Run executes every check concurrently and merges their reports in
// registration order.
func Run(ctx context.Context, ds *dataset.Dataset) Report {
	sc := &scan{ds: ds, slots: make([]Report, len(checks))}
	steps := make([]check.Step[scan], len(checks))
	for i := range checks {
		steps[i] = slotStep(i)
	}
	check.NewPipeline(check.NewStage(steps...)).Run(ctx, sc)

	var merged Report
	for _, slot := range sc.slots {
		merged.Issues = append(merged.Issues, slot.Issues...)
		merged.Warnings = append(merged.Warnings, slot.Warnings...)
	}
	return merged
}

func slotStep(i int) check.Step[scan] {
	return func(_ context.Context, sc *scan) error {
		sc.slots[i] = checks[i].fn(sc.ds)
		return nil
	}
}

// checkTownRefs flags zones pointing at towns the dataset does not contain.
// A dangling reference makes delivery terms unresolvable, so it blocks.
func checkTownRefs(ds *dataset.Dataset) Report {
	known := make(map[uuid.UUID]bool, len(ds.Towns))
	for _, t := range ds.Towns {
		known[t.ID] = true
	}
	var rep Report
	for _, z := range ds.Zones {
		if z.TownID == uuid.Nil {
			rep.issue("zone %q (%s) has no town reference", z.Name, z.ID)
			continue
		}
		if !known[z.TownID] {
			rep.issue("zone %q (%s) references missing town %s", z.Name, z.ID, z.TownID)
		}
	}
	return rep
}

// checkZoneGeometry flags geometry that can never contain a point.
func checkZoneGeometry(ds *dataset.Dataset) Report {
	var rep Report
	for _, z := range ds.Zones {
		switch z.Kind {
		case models.ZoneKindPolygon:
			if n := z.Boundary.VertexCount(); n < 3 {
				rep.issue("zone %q (%s) has a boundary of %d vertices, need at least 3", z.Name, z.ID, n)
			}
		case models.ZoneKindCircle:
			if z.RadiusKm <= 0 {
				rep.issue("zone %q (%s) has a non-positive radius %.3f km", z.Name, z.ID, z.RadiusKm)
			}
			if z.Center.IsZero() {
				rep.issue("zone %q (%s) has no circle center", z.Name, z.ID)
			}
		default:
			rep.issue("zone %q (%s) has unknown kind %q", z.Name, z.ID, z.Kind)
		}
	}
	return rep
}

// checkDeliveryTerms warns about towns whose fee or minimum order would
// break order pricing. Resolution still works, so these do not block.
func checkDeliveryTerms(ds *dataset.Dataset) Report {
	var rep Report
	for _, t := range ds.Towns {
		if t.DeliveryFee <= 0 {
			rep.warn("town %q (%s) has non-positive delivery fee %.2f", t.Name, t.ID, t.DeliveryFee)
		}
		if t.MinOrderAmount <= 0 {
			rep.warn("town %q (%s) has non-positive minimum order amount %.2f", t.Name, t.ID, t.MinOrderAmount)
		}
	}
	return rep
}

// checkZoneNumbering warns about zone numbers below 1 and duplicates among a
// town's active zones.
func checkZoneNumbering(ds *dataset.Dataset) Report {
	type slot struct {
		town   uuid.UUID
		number int
	}
	var rep Report
	seen := make(map[slot]string)
	for _, z := range ds.Zones {
		if !z.IsActive {
			continue
		}
		if z.ZoneNumber < 1 {
			rep.warn("zone %q (%s) has zone number %d, expected 1 or higher", z.Name, z.ID, z.ZoneNumber)
		}
		k := slot{z.TownID, z.ZoneNumber}
		if prev, dup := seen[k]; dup {
			rep.warn("zones %q and %q share zone number %d in town %s", prev, z.Name, z.ZoneNumber, z.TownID)
			continue
		}
		seen[k] = z.Name
	}
	return rep
}

// checkCityOverlap warns when two active city outlines cover common ground.
// The probe tests each ring's vertices and centroid against the other ring,
// after a bounding-box cut; an overlap whose intersection contains none of
// those points goes unnoticed, which is acceptable for a warning.
func checkCityOverlap(ds *dataset.Dataset) Report {
	var rep Report
	for i := 0; i < len(ds.Cities); i++ {
		a := ds.Cities[i]
		if !a.IsActive || a.Boundary.VertexCount() == 0 {
			continue
		}
		for j := i + 1; j < len(ds.Cities); j++ {
			b := ds.Cities[j]
			if !b.IsActive || b.Boundary.VertexCount() == 0 {
				continue
			}
			if !a.Boundary.Bounds().Intersects(b.Boundary.Bounds()) {
				continue
			}
			if ringsTouch(a, b) {
				rep.warn("city boundaries %q and %q overlap", a.Name, b.Name)
			}
		}
	}
	return rep
}

func ringsTouch(a, b models.CityBoundary) bool {
	for _, v := range a.Boundary.Vertices() {
		if b.Contains(v) {
			return true
		}
	}
	for _, v := range b.Boundary.Vertices() {
		if a.Contains(v) {
			return true
		}
	}
	return a.Contains(b.Boundary.Centroid()) || b.Contains(a.Boundary.Centroid())
}

// checkLonSpan warns about rings so wide they must wrap the antimeridian,
// which the planar ray cast cannot handle.
func checkLonSpan(ds *dataset.Dataset) Report {
	var rep Report
	for _, z := range ds.Zones {
		if z.Kind != models.ZoneKindPolygon || z.Boundary.VertexCount() == 0 {
			continue
		}
		if span := z.Boundary.Bounds().LonSpan(); span > 180 {
			rep.warn("zone %q (%s) spans %.1f degrees of longitude; rings crossing the antimeridian are not supported", z.Name, z.ID, span)
		}
	}
	for _, c := range ds.Cities {
		if c.Boundary.VertexCount() == 0 {
			continue
		}
		if span := c.Boundary.Bounds().LonSpan(); span > 180 {
			rep.warn("city boundary %q (%s) spans %.1f degrees of longitude; rings crossing the antimeridian are not supported", c.Name, c.ID, span)
		}
	}
	return rep
}
