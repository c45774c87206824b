// Package airportmap builds a deduplicated, validated directory of airports
// by merging several open datasets.
//
// A build reads every source in precedence order, merges the partial
// records into one canonical record per airport, and validates the result:
//
//	result, err := airportmap.Build(ctx,
//	    airportmap.WithSources(openflights.New(), ourairports.New()),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, a := range result.Airports {
//	    fmt.Println(a.IATA, a.Name)
//	}
package airportmap

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agentstation/airportmap/internal/sources/registry"
	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/countries"
	"github.com/agentstation/airportmap/pkg/logging"
	"github.com/agentstation/airportmap/pkg/reconciler"
	"github.com/agentstation/airportmap/pkg/sources"
	"github.com/agentstation/airportmap/pkg/validation"
)

// Result is the outcome of a build.
type Result struct {
	// Airports in first-IATA-insertion order
	Airports airports.List

	// Merge holds the merged index, statistics and provenance
	Merge *reconciler.Result

	// Validation lists the records that were dropped
	Validation validation.Report
}

// Build merges and validates the configured sources. Without WithSources it
// reads every known source from its default path; without WithResolver
// unknown country names are fatal.
func Build(ctx context.Context, opts ...Option) (*Result, error) {
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	if err := cfg.defaults(); err != nil {
		return nil, err
	}

	if logging.RunID(ctx) == "" {
		ctx = logging.WithRunID(ctx, uuid.NewString())
	}
	logger := logging.FromContext(ctx)

	r, err := reconciler.New(cfg.resolver, reconciler.WithProvenance(cfg.provenance))
	if err != nil {
		return nil, err
	}
	merged, err := r.Sources(ctx, cfg.sources)
	if err != nil {
		return nil, err
	}

	validateCtx := logging.WithOperation(ctx, "validate")
	list, report := validation.Validate(merged.Index.Records())
	for _, drop := range report.Dropped {
		logging.FromContext(logging.WithAirport(validateCtx, drop.Code)).
			Debug().
			Msg("Dropped " + drop.String())
	}

	stats := merged.Metadata.Stats
	event := logger.Info().
		Int("records", stats.Records).
		Int("airports", len(list)).
		Int("dropped", len(report.Dropped)).
		Int("skipped", stats.Skipped).
		Int("cross_key_merges", stats.CrossKeyMerges).
		Strs("countries_added", stats.CountriesAdded).
		Dur("duration", merged.Metadata.Duration)
	for _, id := range merged.Metadata.Sources {
		event = event.Int("rows_"+id.String(), stats.Rows[id])
	}
	event.Msg("Built airport directory")

	return &Result{
		Airports:   list,
		Merge:      merged,
		Validation: report,
	}, nil
}

// defaults fills unset settings.
func (c *config) defaults() error {
	if len(c.sources) == 0 {
		paths := make(map[sources.ID]string)
		for _, id := range sources.IDs() {
			paths[id] = registry.DefaultPath(id)
		}
		srcs, err := registry.Build(sources.IDs(), paths)
		if err != nil {
			return err
		}
		c.sources = srcs
	}
	if c.resolver == nil {
		table, err := countries.Default()
		if err != nil {
			return fmt.Errorf("loading country table: %w", err)
		}
		c.resolver = countries.NewResolver(table, countries.Fail())
	}
	return nil
}
