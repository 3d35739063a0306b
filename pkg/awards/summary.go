// Package awards computes derived statistics ("awards") over QSO
// collections: normalized unique-value sets across calls, bands,
// modes, grids and countries, plus distinct grids worked per band.
//
// Summaries can be computed serially or in fixed-size chunks merged
// with Merge. The merge is union-based, associative and commutative,
// so chunking and merge order never change the outcome; in particular
// per-band grid counts are taken from merged grid sets, never by
// adding per-chunk counts, which would double-count a grid appearing
// in the same band across two chunks.
package awards

import (
	"strings"

	"github.com/qsopipe/qsopipe/pkg/models"
)

// Set is a set of normalized string values.
type Set map[string]struct{}

// NewSet builds a set from normalized values. Values that normalize to
// empty are excluded.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add normalizes v and inserts it; empty results are excluded.
func (s Set) Add(v string) {
	if nv := Norm(v); nv != "" {
		s[nv] = struct{}{}
	}
}

// Has reports membership of the normalized form of v.
func (s Set) Has(v string) bool {
	_, ok := s[Norm(v)]
	return ok
}

// Union inserts every member of other into s.
func (s Set) Union(other Set) {
	for v := range other {
		s[v] = struct{}{}
	}
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	out.Union(s)
	return out
}

// Norm trims surrounding whitespace and uppercases. The empty result
// means the value is excluded from any set. Norm is idempotent.
func Norm(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Summary aggregates award-relevant statistics over a QSO collection.
// A summary is built fresh per query and, once produced, is only ever
// combined through Merge; no two producers mutate one in place.
type Summary struct {
	TotalQSOs int

	Countries Set
	Grids     Set
	Calls     Set
	Bands     Set
	Modes     Set

	// GridsPerBand keeps the full per-band grid sets rather than
	// counts so chunk summaries stay mergeable without double-counting.
	GridsPerBand map[string]Set
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{
		Countries:    make(Set),
		Grids:        make(Set),
		Calls:        make(Set),
		Bands:        make(Set),
		Modes:        make(Set),
		GridsPerBand: make(map[string]Set),
	}
}

// Compute builds a summary over qsos in a single pass.
func Compute(qsos []models.QSO) *Summary {
	s := NewSummary()
	for i := range qsos {
		s.add(&qsos[i])
	}
	return s
}

func (s *Summary) add(q *models.QSO) {
	s.TotalQSOs++
	s.Countries.Add(q.Country)
	s.Grids.Add(q.Grid)
	s.Calls.Add(q.Call)
	s.Bands.Add(q.Band)
	s.Modes.Add(q.Mode)

	if grid := Norm(q.Grid); grid != "" {
		band := Norm(q.Band)
		set, ok := s.GridsPerBand[band]
		if !ok {
			set = make(Set)
			s.GridsPerBand[band] = set
		}
		set[grid] = struct{}{}
	}
}

// Report is the read-only consumer view of a summary: counts instead
// of sets. Consumers never mutate it.
type Report struct {
	TotalQSOs       int            `json:"total_qsos"`
	UniqueCountries int            `json:"unique_countries"`
	UniqueGrids     int            `json:"unique_grids"`
	UniqueCalls     int            `json:"unique_calls"`
	UniqueBands     int            `json:"unique_bands"`
	UniqueModes     int            `json:"unique_modes"`
	GridsPerBand    map[string]int `json:"grids_per_band"`
}

// Report reduces the summary's sets to counts. The per-band numbers
// count each band's grid set, so they are exact no matter how many
// chunk summaries were merged to get here.
func (s *Summary) Report() *Report {
	gpb := make(map[string]int, len(s.GridsPerBand))
	for band, grids := range s.GridsPerBand {
		gpb[band] = len(grids)
	}
	return &Report{
		TotalQSOs:       s.TotalQSOs,
		UniqueCountries: len(s.Countries),
		UniqueGrids:     len(s.Grids),
		UniqueCalls:     len(s.Calls),
		UniqueBands:     len(s.Bands),
		UniqueModes:     len(s.Modes),
		GridsPerBand:    gpb,
	}
}
