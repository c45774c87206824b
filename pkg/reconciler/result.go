package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/airportmap/pkg/provenance"
	"github.com/agentstation/airportmap/pkg/sources"
)

// Result represents the outcome of merging all sources.
type Result struct {
	// Index holds the merged canonical records
	Index *Index

	// Provenance is nil unless tracking was enabled
	Provenance provenance.Map

	// Metadata about the run
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the merge.
type ResultMetadata struct {
	// RunID identifies the run in logs
	RunID string

	// StartTime when merging started
	StartTime time.Time

	// EndTime when merging completed
	EndTime time.Time

	// Duration of the merge
	Duration time.Duration

	// Sources in the order they were merged
	Sources []sources.ID

	// Strategy used for merging
	Strategy StrategyType

	// Statistics about the merge
	Stats ResultStatistics
}

// ResultStatistics contains statistics about the merge.
type ResultStatistics struct {
	// Rows read per source
	Rows map[sources.ID]int

	// Partials folded into the index
	Merged int

	// Partials with neither code
	Skipped int

	// Records joined because a partial's codes hit two records
	CrossKeyMerges int

	// Distinct records reachable by IATA code
	Records int

	// Country names learned during the run
	CountriesAdded []string
}

// NewResult creates a new result with defaults.
func NewResult(runID string) *Result {
	return &Result{
		Metadata: ResultMetadata{
			RunID:     runID,
			StartTime: time.Now().UTC(),
			Sources:   []sources.ID{},
			Stats: ResultStatistics{
				Rows: make(map[sources.ID]int),
			},
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now().UTC()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	return fmt.Sprintf("Merged %d rows from %d sources into %d airports (%d skipped, %d cross-key merges)",
		s.Merged+s.Skipped, len(r.Metadata.Sources), s.Records, s.Skipped, s.CrossKeyMerges)
}
