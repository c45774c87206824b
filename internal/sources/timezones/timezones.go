// Package timezones reads a two-column IATA to IANA timezone mapping.
package timezones

import (
	"context"
	"iter"

	"github.com/agentstation/airportmap/internal/sources/csvfile"
	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/sources"
)

// DefaultPath is where the dataset is read from when no path is configured.
const DefaultPath = "data/timezones.tsv"

// Source reads a tab separated "IATA<TAB>timezone" file. Blank lines and
// lines starting with # are skipped.
type Source struct {
	path string
}

// Option configures a Source.
type Option func(*Source)

// WithPath sets the dataset path.
func WithPath(path string) Option {
	return func(s *Source) {
		s.path = path
	}
}

// New creates a new timezone mapping source.
func New(opts ...Option) *Source {
	s := &Source{path: DefaultPath}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source identifier.
func (s *Source) ID() sources.ID {
	return sources.TimezonesID
}

// Path returns the dataset path.
func (s *Source) Path() string {
	return s.path
}

// Spec returns the field mapping.
func (s *Source) Spec() sources.Spec {
	return Spec()
}

// Rows reads the dataset.
func (s *Source) Rows(ctx context.Context) (iter.Seq[sources.Row], error) {
	rows, err := csvfile.Read(ctx, s.ID(), s.path, csvfile.Options{
		Comma:   '\t',
		Comment: '#',
		Columns: []string{"iata", "timezone"},
	})
	if err != nil {
		return nil, err
	}
	return sources.Rows(rows), nil
}

// Spec returns the timezone mapping.
func Spec() sources.Spec {
	return sources.Spec{
		Fields: []sources.FieldMapping{
			{Field: airports.FieldIATA, Mapping: sources.Copy("iata")},
			{Field: airports.FieldTimezone, Mapping: sources.Copy("timezone")},
		},
	}
}
