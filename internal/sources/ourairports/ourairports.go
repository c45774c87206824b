// Package ourairports reads the OurAirports airports.csv dataset.
package ourairports

import (
	"context"
	"iter"
	"regexp"
	"strings"

	"github.com/agentstation/airportmap/internal/sources/csvfile"
	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/sources"
)

// DefaultPath is where the dataset is read from when no path is configured.
const DefaultPath = "data/airports.csv"

// Raw column names.
const (
	ColumnIATA             = "iata_code"
	ColumnIdent            = "ident"
	ColumnName             = "name"
	ColumnMunicipality     = "municipality"
	ColumnCountry          = "iso_country"
	ColumnRegion           = "iso_region"
	ColumnLatitude         = "latitude_deg"
	ColumnLongitude        = "longitude_deg"
	ColumnScheduledService = "scheduled_service"
)

// Only these countries publish first-level subdivisions we keep as state.
var stateCountries = map[string]bool{"US": true, "CA": true}

var icaoPattern = regexp.MustCompile(`^[A-Z]{4}$`)

// Source reads an OurAirports CSV file.
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

// New creates a new OurAirports source.
func New(opts ...Option) *Source {
	s := &Source{path: DefaultPath}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source identifier.
func (s *Source) ID() sources.ID {
	return sources.OurAirportsID
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
	rows, err := csvfile.Read(ctx, s.ID(), s.path, csvfile.Options{})
	if err != nil {
		return nil, err
	}
	return sources.Rows(rows), nil
}

// Spec returns the OurAirports field mapping.
func Spec() sources.Spec {
	return sources.Spec{
		Fields: []sources.FieldMapping{
			{Field: airports.FieldIATA, Mapping: sources.Copy(ColumnIATA)},
			{Field: airports.FieldICAO, Mapping: sources.Derive(icao)},
			{Field: airports.FieldName, Mapping: sources.Copy(ColumnName)},
			{Field: airports.FieldCity, Mapping: sources.Copy(ColumnMunicipality)},
			{Field: airports.FieldCountry, Mapping: sources.Copy(ColumnCountry)},
			{Field: airports.FieldState, Mapping: sources.Derive(state)},
			{Field: airports.FieldLatitude, Mapping: sources.Copy(ColumnLatitude)},
			{Field: airports.FieldLongitude, Mapping: sources.Copy(ColumnLongitude)},
			{Field: airports.FieldHasScheduledService, Mapping: sources.Derive(scheduledService)},
		},
	}
}

// icao keeps ident only when it is a real ICAO location indicator; local
// identifiers such as "US-0001" or "00A" are dropped.
func icao(row sources.Row) (string, bool) {
	ident := strings.TrimSpace(row.Get(ColumnIdent))
	if !icaoPattern.MatchString(ident) {
		return "", false
	}
	return ident, true
}

// state is the subdivision suffix of iso_region ("US-CA" -> "ca").
func state(row sources.Row) (string, bool) {
	country := strings.ToUpper(strings.TrimSpace(row.Get(ColumnCountry)))
	if !stateCountries[country] {
		return "", false
	}
	region := strings.TrimSpace(row.Get(ColumnRegion))
	if len(region) <= 3 {
		return "", false
	}
	return strings.ToLower(region[3:]), true
}

func scheduledService(row sources.Row) (string, bool) {
	v, ok := row[ColumnScheduledService]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return airports.Bool(strings.TrimSpace(v) == "yes"), true
}
