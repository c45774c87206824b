package sources

import (
	"iter"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/airportmap/pkg/airports"
)

// DeriveFunc computes a canonical value from a raw row. It must be pure and
// total: missing inputs yield ("", false), never a panic.
type DeriveFunc func(Row) (string, bool)

// mappingKind tags a Mapping variant.
type mappingKind uint8

const (
	kindCopy mappingKind = iota + 1
	kindDerive
)

// Mapping resolves one canonical field from a row: either by copying a named
// column or by a derivation function.
type Mapping struct {
	kind   mappingKind
	column string
	derive DeriveFunc
}

// Copy returns a Mapping that copies the named column verbatim.
func Copy(column string) Mapping {
	return Mapping{kind: kindCopy, column: column}
}

// Derive returns a Mapping computed by fn.
func Derive(fn DeriveFunc) Mapping {
	return Mapping{kind: kindDerive, derive: fn}
}

// Resolve evaluates the mapping against row.
func (m Mapping) Resolve(row Row) (string, bool) {
	switch m.kind {
	case kindCopy:
		v, ok := row[m.column]
		return v, ok
	case kindDerive:
		if m.derive == nil {
			return "", false
		}
		return m.derive(row)
	default:
		return "", false
	}
}

// FieldMapping binds a canonical field to its Mapping.
type FieldMapping struct {
	Field   airports.Field
	Mapping Mapping
}

// Spec is the static field mapping of one source.
type Spec struct {
	Fields []FieldMapping

	// NullMarker, when set, is a sentinel that means "absent" in any column.
	NullMarker string
}

// Apply produces the partial record for one row. Fields whose value is
// absent, empty, or the null marker are omitted.
func (s Spec) Apply(row Row) airports.Record {
	if s.NullMarker != "" {
		row = stripNulls(row, s.NullMarker)
	}

	rec := make(airports.Record, len(s.Fields))
	for _, fm := range s.Fields {
		v, ok := fm.Mapping.Resolve(row)
		if !ok {
			continue
		}
		v = clean(v)
		if v == "" || (s.NullMarker != "" && v == s.NullMarker) {
			continue
		}
		rec[fm.Field] = v
	}
	return rec
}

// Adapt lazily applies spec to every row, preserving source order.
func Adapt(rows iter.Seq[Row], spec Spec) iter.Seq[airports.Record] {
	return func(yield func(airports.Record) bool) {
		for row := range rows {
			if !yield(spec.Apply(row)) {
				return
			}
		}
	}
}

// Rows adapts a slice of rows into a sequence.
func Rows(rows []Row) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, row := range rows {
			if !yield(row) {
				return
			}
		}
	}
}

// clean trims surrounding whitespace and normalizes to NFC so the same name
// from two datasets compares equal regardless of accent encoding.
func clean(v string) string {
	return norm.NFC.String(strings.TrimSpace(v))
}

// stripNulls returns a copy of row without columns equal to marker, so
// derivations see the null marker as a missing column.
func stripNulls(row Row, marker string) Row {
	out := make(Row, len(row))
	for k, v := range row {
		if strings.TrimSpace(v) == marker {
			continue
		}
		out[k] = v
	}
	return out
}
