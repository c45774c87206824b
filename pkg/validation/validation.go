// Package validation turns merged records into typed airports, dropping any
// record that lacks a required field. A coordinate or flag with no usable
// value counts as missing.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agentstation/airportmap/internal/utils/ptr"
	"github.com/agentstation/airportmap/pkg/airports"
)

// Places is the number of decimal places kept for coordinates.
const Places = 5

// numberPrefix is the leading decimal number of a coordinate; trailing text
// such as a hemisphere letter is ignored.
var numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)

// Drop explains why one record was left out.
type Drop struct {
	Code    string
	Missing []airports.Field
}

// String formats the drop for logs.
func (d Drop) String() string {
	names := make([]string, len(d.Missing))
	for i, f := range d.Missing {
		names[i] = f.String()
	}
	return fmt.Sprintf("%s: missing %s", d.Code, strings.Join(names, ", "))
}

// Report summarizes a validation pass.
type Report struct {
	Checked int
	Valid   int
	Dropped []Drop
}

// Validate checks every record, in order. Records missing a required field
// are dropped and reported; they are not errors.
func Validate(records []airports.Record) (airports.List, Report) {
	list := make(airports.List, 0, len(records))
	report := Report{Checked: len(records)}

	for _, rec := range records {
		a, drop, ok := validate(rec)
		if !ok {
			report.Dropped = append(report.Dropped, drop)
			continue
		}
		list = append(list, a)
	}

	report.Valid = len(list)
	return list, report
}

func validate(rec airports.Record) (airports.Airport, Drop, bool) {
	lat, latErr := RoundString(rec.Get(airports.FieldLatitude))
	lon, lonErr := RoundString(rec.Get(airports.FieldLongitude))
	scheduled, flagErr := strconv.ParseBool(rec.Get(airports.FieldHasScheduledService))
	unusable := map[airports.Field]bool{
		airports.FieldLatitude:            latErr != nil,
		airports.FieldLongitude:           lonErr != nil,
		airports.FieldHasScheduledService: flagErr != nil,
	}

	var missing []airports.Field
	for _, f := range airports.RequiredFields {
		if !rec.Has(f) || unusable[f] {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return airports.Airport{}, Drop{Code: rec.Key(), Missing: missing}, false
	}

	a := airports.Airport{
		Name:                rec.Get(airports.FieldName),
		City:                rec.Get(airports.FieldCity),
		Country:             rec.Get(airports.FieldCountry),
		CountryName:         rec.Get(airports.FieldCountryName),
		IATA:                rec.IATA(),
		ICAO:                rec.ICAO(),
		Latitude:            lat,
		Longitude:           lon,
		Timezone:            rec.Get(airports.FieldTimezone),
		HasScheduledService: scheduled,
		State:               ptr.String(rec.Get(airports.FieldState)),
	}
	return a, Drop{}, true
}

// RoundString parses the leading decimal number of a coordinate and rounds
// it to Places, ties away from zero. Rounding happens on the decimal text, so
// a value such as "0.000015" rounds up even though its nearest float64 lies
// below the tie. Text with no leading number is an error.
func RoundString(s string) (float64, error) {
	num := numberPrefix.FindString(strings.TrimSpace(s))
	if num == "" {
		return 0, fmt.Errorf("no number in %q", s)
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return 0, err
	}
	return d.Round(Places).InexactFloat64(), nil
}

// Round rounds v to Places, ties away from zero. It is idempotent.
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(Places).InexactFloat64()
}
