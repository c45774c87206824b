// Package openflights reads the OpenFlights airports.dat dataset: a
// headerless CSV using \N as its null marker.
package openflights

import (
	"context"
	"iter"

	"github.com/agentstation/airportmap/internal/sources/csvfile"
	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/sources"
)

// DefaultPath is where the dataset is read from when no path is configured.
const DefaultPath = "data/airports.dat"

// NullMarker is the OpenFlights spelling of "no value".
const NullMarker = `\N`

// Columns is the fixed column layout of airports.dat. Newer dumps append
// type and source columns, which are ignored.
var Columns = []string{
	"id", "name", "city", "country", "iata", "icao",
	"latitude", "longitude", "altitude", "utcOffset", "dst", "timezone",
}

// Source reads an OpenFlights airports.dat file.
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

// New creates a new OpenFlights source.
func New(opts ...Option) *Source {
	s := &Source{path: DefaultPath}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source identifier.
func (s *Source) ID() sources.ID {
	return sources.OpenFlightsID
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
	rows, err := csvfile.Read(ctx, s.ID(), s.path, csvfile.Options{Columns: Columns})
	if err != nil {
		return nil, err
	}
	return sources.Rows(rows), nil
}

// Spec returns the OpenFlights field mapping. The country column carries a
// country name, not a code.
func Spec() sources.Spec {
	return sources.Spec{
		Fields: []sources.FieldMapping{
			{Field: airports.FieldName, Mapping: sources.Copy("name")},
			{Field: airports.FieldCity, Mapping: sources.Copy("city")},
			{Field: airports.FieldCountryName, Mapping: sources.Copy("country")},
			{Field: airports.FieldIATA, Mapping: sources.Copy("iata")},
			{Field: airports.FieldICAO, Mapping: sources.Copy("icao")},
			{Field: airports.FieldLatitude, Mapping: sources.Copy("latitude")},
			{Field: airports.FieldLongitude, Mapping: sources.Copy("longitude")},
			{Field: airports.FieldTimezone, Mapping: sources.Copy("timezone")},
		},
		NullMarker: NullMarker,
	}
}
