package sources

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/errors"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{"ourairports", OurAirportsID, false},
		{" OpenFlights ", OpenFlightsID, false},
		{"directory", DirectoryID, false},
		{"timezones", TimezonesID, false},
		{"wikipedia", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrder(t *testing.T) {
	order, err := ParseOrder([]string{"timezones, directory", "openflights"})
	require.NoError(t, err)
	assert.Equal(t, []ID{TimezonesID, DirectoryID, OpenFlightsID}, order)

	_, err = ParseOrder([]string{"directory,directory"})
	assert.Error(t, err)
}

func TestIDsDefaultOrder(t *testing.T) {
	assert.Equal(t, []ID{OpenFlightsID, OurAirportsID, DirectoryID, TimezonesID}, IDs())
}

func TestMappingResolve(t *testing.T) {
	row := Row{"code": "LAX", "direct_flights": "0"}

	v, ok := Copy("code").Resolve(row)
	assert.True(t, ok)
	assert.Equal(t, "LAX", v)

	_, ok = Copy("missing").Resolve(row)
	assert.False(t, ok)

	derived := Derive(func(r Row) (string, bool) {
		df, ok := r["direct_flights"]
		if !ok {
			return "", false
		}
		return airports.Bool(df != "0"), true
	})
	v, ok = derived.Resolve(row)
	assert.True(t, ok)
	assert.Equal(t, airports.False, v)

	_, ok = Mapping{}.Resolve(row)
	assert.False(t, ok)
}

func TestSpecApply(t *testing.T) {
	spec := Spec{
		Fields: []FieldMapping{
			{Field: airports.FieldIATA, Mapping: Copy("iata")},
			{Field: airports.FieldName, Mapping: Copy("name")},
			{Field: airports.FieldCity, Mapping: Copy("city")},
			{Field: airports.FieldICAO, Mapping: Copy("icao")},
		},
		NullMarker: `\N`,
	}

	t.Run("trims and drops empty values", func(t *testing.T) {
		rec := spec.Apply(Row{"iata": " LAX ", "name": "Los Angeles Intl", "city": "   "})
		assert.Equal(t, airports.Record{
			airports.FieldIATA: "LAX",
			airports.FieldName: "Los Angeles Intl",
		}, rec)
	})

	t.Run("null marker is absence", func(t *testing.T) {
		rec := spec.Apply(Row{"iata": `\N`, "icao": "KLAX", "name": "Los Angeles Intl"})
		assert.False(t, rec.Has(airports.FieldIATA))
		assert.Equal(t, "KLAX", rec.ICAO())
	})

	t.Run("normalizes to NFC", func(t *testing.T) {
		decomposed := "Zu\u0308rich"
		rec := spec.Apply(Row{"iata": "ZRH", "city": decomposed})
		assert.Equal(t, "Z\u00fcrich", rec.Get(airports.FieldCity))
	})

	t.Run("empty row yields empty record", func(t *testing.T) {
		assert.Empty(t, spec.Apply(Row{}))
	})
}

func TestAdaptPreservesOrder(t *testing.T) {
	spec := Spec{Fields: []FieldMapping{{Field: airports.FieldIATA, Mapping: Copy("iata")}}}
	rows := Rows([]Row{{"iata": "LAX"}, {"iata": ""}, {"iata": "JFK"}})

	var got []airports.Record
	for rec := range Adapt(rows, spec) {
		got = append(got, rec)
	}
	require.Len(t, got, 3)
	assert.Equal(t, "LAX", got[0].IATA())
	assert.Empty(t, got[1])
	assert.Equal(t, "JFK", got[2].IATA())
}

func TestAdaptStopsEarly(t *testing.T) {
	spec := Spec{Fields: []FieldMapping{{Field: airports.FieldIATA, Mapping: Copy("iata")}}}
	rows := Rows([]Row{{"iata": "LAX"}, {"iata": "JFK"}, {"iata": "SFO"}})

	var seen []string
	for rec := range Adapt(rows, spec) {
		seen = append(seen, rec.IATA())
		if len(seen) == 2 {
			break
		}
	}
	assert.True(t, slices.Equal([]string{"LAX", "JFK"}, seen))
}
