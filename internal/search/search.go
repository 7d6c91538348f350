// Package search implements catalog filtering and proximity ranking.
package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/geo"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/model"
)

// DefaultRadiusKm applies when a search supplies an origin but no radius.
// Overridable per Searcher via config.
const DefaultRadiusKm = 10.0

// ErrInvalidCriteria reports request-level validation failures: an
// out-of-range origin or a negative radius.
var ErrInvalidCriteria = fmt.Errorf("invalid search criteria")

// CatalogProvider hands the searcher a point-in-time snapshot of the
// catalog. Implementations must return an internally consistent sequence
// for the duration of one Search call.
type CatalogProvider interface {
	Snapshot(ctx context.Context) ([]model.Temple, error)
}

// Criteria describes one search request.
type Criteria struct {
	// City is matched as a case-insensitive substring of each temple's
	// city field; empty means no restriction.
	City string
	// Categories restricts results to member categories; empty means no
	// restriction.
	Categories []model.Category
	// Origin, when set, turns the search into a radius-bounded,
	// distance-ranked one.
	Origin *geo.Coordinate
	// RadiusKm bounds a ranked search. Nil falls back to the searcher's
	// default; zero is a valid, deliberately empty-ish radius. Ignored
	// when Origin is nil.
	RadiusKm *float64
}

// Validate rejects criteria the core must not act on.
func (c Criteria) Validate() error {
	if c.Origin != nil {
		if err := c.Origin.Validate(); err != nil {
			return fmt.Errorf("%w: origin: %v", ErrInvalidCriteria, err)
		}
	}
	if c.RadiusKm != nil {
		// NaN compares false against everything, so a NaN radius would
		// sail past the d > radius cut and unbound the search.
		if math.IsNaN(*c.RadiusKm) || math.IsInf(*c.RadiusKm, 0) {
			return fmt.Errorf("%w: radius %v km is not a finite number", ErrInvalidCriteria, *c.RadiusKm)
		}
		if *c.RadiusKm < 0 {
			return fmt.Errorf("%w: radius %v km is negative", ErrInvalidCriteria, *c.RadiusKm)
		}
	}
	return nil
}

// Result is a temple, annotated with its distance from the origin when the
// search was ranked.
type Result struct {
	model.Temple
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// Filter applies the structural predicates of criteria to temples,
// preserving relative order. Malformed entries (empty city or category)
// simply fail the predicates; filtering never errors.
func Filter(temples []model.Temple, c Criteria) []model.Temple {
	city := strings.ToLower(strings.TrimSpace(c.City))

	var out []model.Temple
	for _, t := range temples {
		if city != "" && !strings.Contains(strings.ToLower(t.City), city) {
			continue
		}
		if len(c.Categories) > 0 && !containsCategory(c.Categories, t.Category) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Rank computes each temple's distance from origin, drops temples beyond
// radiusKm or without a usable location, and orders the rest by ascending
// distance. Ties keep their input order.
func Rank(temples []model.Temple, origin geo.Coordinate, radiusKm float64) []Result {
	var out []Result
	for _, t := range temples {
		if t.Location == nil || !t.Location.Valid() {
			continue // unrankable, not an error
		}
		d := geo.Distance(origin, *t.Location)
		if d > radiusKm {
			continue
		}
		dist := d
		out = append(out, Result{Temple: t, DistanceKm: &dist})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].DistanceKm < *out[j].DistanceKm
	})

	return out
}

// Searcher composes filtering and ranking over catalog snapshots.
type Searcher struct {
	Catalog CatalogProvider
	// DefaultRadiusKm applies to ranked searches that leave RadiusKm
	// unset. Zero means DefaultRadiusKm (the package constant).
	DefaultRadiusKm float64
}

// Search runs one query: validate, snapshot, filter, then rank when an
// origin is present. Without an origin the filtered set comes back in
// catalog order with no distance annotation.
func (s *Searcher) Search(ctx context.Context, c Criteria) ([]Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	temples, err := s.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	filtered := Filter(temples, c)

	if c.Origin == nil {
		results := make([]Result, 0, len(filtered))
		for _, t := range filtered {
			results = append(results, Result{Temple: t})
		}
		return results, nil
	}

	radius := s.DefaultRadiusKm
	if radius == 0 {
		radius = DefaultRadiusKm
	}
	if c.RadiusKm != nil {
		radius = *c.RadiusKm
	}

	return Rank(filtered, *c.Origin, radius), nil
}

func containsCategory(set []model.Category, c model.Category) bool {
	for _, m := range set {
		if m == c {
			return true
		}
	}
	return false
}
