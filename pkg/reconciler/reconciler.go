// Package reconciler merges partial airport records from several sources
// into one canonical record per physical airport.
//
// Sources are merged in precedence order: values from a source merged
// earlier are never overwritten by a later source. Records are found by
// IATA or ICAO code through a dual index, and a partial whose two codes
// reach two different records joins them.
package reconciler

import (
	"context"
	"iter"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/countries"
	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/logging"
	"github.com/agentstation/airportmap/pkg/provenance"
	"github.com/agentstation/airportmap/pkg/sources"
)

// Reconciler is the main interface for merging data from multiple sources.
type Reconciler interface {
	// Sources reads and merges every source in order; the first source has
	// the highest precedence. Any source error aborts the run.
	Sources(ctx context.Context, srcs []sources.Source) (*Result, error)

	// Merge folds one source's partial records into the index.
	Merge(ctx context.Context, id sources.ID, partials iter.Seq[airports.Record]) error

	// Index returns the merged index.
	Index() *Index
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	strategy   Strategy
	resolver   *countries.Resolver
	provenance provenance.Tracker
	tracking   bool
	logger     *zerolog.Logger
	index      *Index
	stats      ResultStatistics
}

// New creates a new Reconciler that resolves country names with resolver.
func New(resolver *countries.Resolver, opts ...Option) (Reconciler, error) {
	if resolver == nil {
		return nil, &errors.ValidationError{
			Field:   "resolver",
			Message: "cannot be nil",
		}
	}

	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		strategy:   options.strategy,
		resolver:   resolver,
		provenance: provenance.NewTracker(options.tracking),
		tracking:   options.tracking,
		logger:     options.logger,
		index:      NewIndex(),
		stats:      ResultStatistics{Rows: make(map[sources.ID]int)},
	}, nil
}

// Index returns the merged index.
func (r *reconciler) Index() *Index {
	return r.index
}

// Sources performs the merge with a clean step-by-step flow.
func (r *reconciler) Sources(ctx context.Context, srcs []sources.Source) (*Result, error) {
	// Step 1: Initialize run context
	runID := logging.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	result := NewResult(runID)
	result.Metadata.Strategy = r.strategy.Type()
	logger := r.log(ctx)

	if len(srcs) == 0 {
		return nil, &errors.ValidationError{
			Field:   "sources",
			Message: "at least one source is required",
		}
	}

	logger.Info().
		Int("source_count", len(srcs)).
		Str("strategy", r.strategy.Type().String()).
		Msg("Merging sources")

	// Step 2: Read and merge each source in precedence order
	for _, src := range srcs {
		rows, err := src.Rows(logging.WithSource(ctx, src.ID().String()))
		if err != nil {
			return nil, err
		}
		if err := r.Merge(ctx, src.ID(), sources.Adapt(rows, src.Spec())); err != nil {
			return nil, err
		}
		result.Metadata.Sources = append(result.Metadata.Sources, src.ID())
	}

	// Step 3: Build result
	return r.result(result), nil
}

// Merge folds one source's partials. Sources must be merged in precedence
// order.
func (r *reconciler) Merge(ctx context.Context, id sources.ID, partials iter.Seq[airports.Record]) error {
	if r.logger != nil {
		ctx = logging.WithLogger(ctx, r.logger)
	}
	ctx = logging.WithSource(ctx, id.String())
	logger := logging.FromContext(ctx)
	m := &merger{
		strategy: r.strategy,
		resolver: r.resolver,
		tracker:  r.provenance,
		index:    r.index,
		source:   id,
	}

	rows := 0
	for partial := range partials {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows++
		if err := m.merge(ctx, partial); err != nil {
			return err
		}
	}

	r.stats.Rows[id] += rows
	r.stats.Merged += m.merged
	r.stats.Skipped += m.skipped
	r.stats.CrossKeyMerges += m.crossKey

	logger.Info().
		Int("rows", rows).
		Int("skipped", m.skipped).
		Int("cross_key_merges", m.crossKey).
		Int("records", r.index.Len()).
		Msg("Merged source")

	return nil
}

// result builds the final result.
func (r *reconciler) result(result *Result) *Result {
	result.Index = r.index
	result.Metadata.Stats = r.stats
	result.Metadata.Stats.Records = len(r.index.Records())
	result.Metadata.Stats.CountriesAdded = r.resolver.Added()
	if r.tracking {
		result.Provenance = r.provenanceByCode()
	}
	result.Finalize()
	return result
}

// provenanceByCode re-keys tracked history from record IDs to each live
// record's code.
func (r *reconciler) provenanceByCode() provenance.Map {
	for id := range r.index.records {
		rec, _ := r.index.Record(id)
		if key := rec.Key(); key != "" {
			r.provenance.Rename(trackingID(id), key)
		}
	}
	return r.provenance.Map()
}

func (r *reconciler) log(ctx context.Context) *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.FromContext(ctx)
}

// trackingID is the provenance resource ID of a record while merging.
func trackingID(id RecordID) string {
	return "#" + strconv.Itoa(int(id))
}
