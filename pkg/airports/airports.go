// Package airports defines the canonical airport data model: the sparse
// field records that flow through the merge, and the typed Airport that
// comes out of validation.
package airports

import (
	"maps"
	"slices"
	"strings"
)

// Field is a canonical airport field name.
type Field string

// String returns the string representation of a field.
func (f Field) String() string {
	return string(f)
}

// Canonical fields.
const (
	FieldIATA                Field = "iata"
	FieldICAO                Field = "icao"
	FieldName                Field = "name"
	FieldCity                Field = "city"
	FieldState               Field = "state"
	FieldCountry             Field = "country"
	FieldCountryName         Field = "countryName"
	FieldLatitude            Field = "latitude"
	FieldLongitude           Field = "longitude"
	FieldTimezone            Field = "timezone"
	FieldHasScheduledService Field = "hasScheduledService"
)

// Fields returns every canonical field in serialization order.
func Fields() []Field {
	return []Field{
		FieldName,
		FieldCity,
		FieldState,
		FieldCountry,
		FieldCountryName,
		FieldIATA,
		FieldICAO,
		FieldLatitude,
		FieldLongitude,
		FieldTimezone,
		FieldHasScheduledService,
	}
}

// RequiredFields lists the fields a record must carry to survive validation.
// state and countryName are intentionally not required.
var RequiredFields = []Field{
	FieldName,
	FieldCity,
	FieldCountry,
	FieldIATA,
	FieldLatitude,
	FieldLongitude,
	FieldTimezone,
	FieldHasScheduledService,
	FieldICAO,
}

// Boolean values as stored in a Record.
const (
	True  = "true"
	False = "false"
)

// Bool returns the Record representation of b.
func Bool(b bool) string {
	if b {
		return True
	}
	return False
}

// Record is a sparse mapping of canonical field to value. A Record built
// from one source row is a partial record; the merge engine accumulates
// partials into one Record per physical airport. Empty values are never
// stored.
type Record map[Field]string

// Get returns the value of f, or "" when absent.
func (r Record) Get(f Field) string {
	return r[f]
}

// Has reports whether f carries a value.
func (r Record) Has(f Field) bool {
	return r[f] != ""
}

// Set stores v under f. An empty v removes the field.
func (r Record) Set(f Field, v string) {
	if v == "" {
		delete(r, f)
		return
	}
	r[f] = v
}

// IATA returns the IATA code, if any.
func (r Record) IATA() string {
	return r[FieldIATA]
}

// ICAO returns the ICAO code, if any.
func (r Record) ICAO() string {
	return r[FieldICAO]
}

// Clone returns a copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

// Overlay copies every field of other onto r, overwriting existing values.
func (r Record) Overlay(other Record) {
	for f, v := range other {
		r.Set(f, v)
	}
}

// Missing returns the fields of want that r does not carry, in order.
func (r Record) Missing(want []Field) []Field {
	var missing []Field
	for _, f := range want {
		if !r.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Key returns the code used to identify r in logs and reports: the IATA code
// when present, otherwise the ICAO code.
func (r Record) Key() string {
	if iata := r.IATA(); iata != "" {
		return iata
	}
	return r.ICAO()
}

// String renders r with fields sorted, for logs and test failures.
func (r Record) String() string {
	keys := slices.Sorted(maps.Keys(r))
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(k))
		sb.WriteByte(':')
		sb.WriteString(r[k])
	}
	sb.WriteByte('}')
	return sb.String()
}
