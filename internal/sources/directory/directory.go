// Package directory reads a third-party airports.json directory: an array
// of objects whose values may be strings or numbers.
package directory

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/logging"
	"github.com/agentstation/airportmap/pkg/sources"
)

// DefaultPath is where the dataset is read from when no path is configured.
const DefaultPath = "data/airports.json"

// Source reads a JSON airport directory.
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

// New creates a new directory source.
func New(opts ...Option) *Source {
	s := &Source{path: DefaultPath}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source identifier.
func (s *Source) ID() sources.ID {
	return sources.DirectoryID
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
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.WrapSource(s.ID().String(), s.path, errors.WrapIO("open", s.path, err))
	}
	defer func() { _ = f.Close() }()

	rows, err := Decode(f)
	if err != nil {
		return nil, errors.WrapSource(s.ID().String(), s.path, errors.WrapParse("json", s.path, err))
	}

	logging.FromContext(ctx).Debug().
		Str("source", s.ID().String()).
		Str("path", s.path).
		Int("rows", len(rows)).
		Msg("Read source file")

	return sources.Rows(rows), nil
}

// Decode parses a JSON array of flat objects into rows. Scalars are
// rendered as strings; null and nested values are treated as absent.
func Decode(r io.Reader) ([]sources.Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, err
	}

	rows := make([]sources.Row, 0, len(objects))
	for _, obj := range objects {
		row := make(sources.Row, len(obj))
		for k, v := range obj {
			if s, ok := scalar(v); ok {
				row[k] = s
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func scalar(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// Spec returns the directory field mapping. The country key carries a
// country name, not a code.
func Spec() sources.Spec {
	return sources.Spec{
		Fields: []sources.FieldMapping{
			{Field: airports.FieldIATA, Mapping: sources.Copy("code")},
			{Field: airports.FieldName, Mapping: sources.Copy("name")},
			{Field: airports.FieldCity, Mapping: sources.Copy("city")},
			{Field: airports.FieldCountryName, Mapping: sources.Copy("country")},
			{Field: airports.FieldLatitude, Mapping: sources.Copy("lat")},
			{Field: airports.FieldLongitude, Mapping: sources.Copy("lon")},
			{Field: airports.FieldTimezone, Mapping: sources.Copy("tz")},
			{Field: airports.FieldHasScheduledService, Mapping: sources.Derive(scheduledService)},
		},
	}
}

// scheduledService is true unless the directory lists zero direct flights.
// Only a missing or null key is absence; any other value, including an empty
// string, counts as service.
func scheduledService(row sources.Row) (string, bool) {
	v, ok := row["direct_flights"]
	if !ok {
		return "", false
	}
	return airports.Bool(strings.TrimSpace(v) != "0"), true
}
