package openflights

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/sources"
)

const fixture = `3484,"Los Angeles International Airport","Los Angeles","United States","LAX","KLAX",33.94250107,-118.4079971,125,-8,"A","America/Los_Angeles","airport","OurAirports"
5,"Port Moresby Jacksons International Airport","Port Moresby","Papua New Guinea","POM","AYPY",-9.443380355834961,147.22000122070312,146,10,"U","Pacific/Port_Moresby"
13,"Akureyri Airport","Akureyri","Iceland",\N,"BIAR",65.66000366,-18.07270050,6,0,"N",\N
`

func readAll(t *testing.T, path string) []airports.Record {
	t.Helper()
	src := New(WithPath(path))
	rows, err := src.Rows(context.Background())
	require.NoError(t, err)
	return slices.Collect(sources.Adapt(rows, src.Spec()))
}

func TestAdapt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.dat")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	recs := readAll(t, path)
	require.Len(t, recs, 3)

	assert.Equal(t, airports.Record{
		airports.FieldName:        "Los Angeles International Airport",
		airports.FieldCity:        "Los Angeles",
		airports.FieldCountryName: "United States",
		airports.FieldIATA:        "LAX",
		airports.FieldICAO:        "KLAX",
		airports.FieldLatitude:    "33.94250107",
		airports.FieldLongitude:   "-118.4079971",
		airports.FieldTimezone:    "America/Los_Angeles",
	}, recs[0])

	assert.Equal(t, "POM", recs[1].IATA())
	assert.False(t, recs[1].Has(airports.FieldCountry), "country column is a name")

	t.Run("null marker", func(t *testing.T) {
		assert.False(t, recs[2].Has(airports.FieldIATA))
		assert.False(t, recs[2].Has(airports.FieldTimezone))
		assert.Equal(t, "BIAR", recs[2].ICAO())
	})
}

func TestSourceDefaults(t *testing.T) {
	src := New()
	assert.Equal(t, sources.OpenFlightsID, src.ID())
	assert.Equal(t, DefaultPath, src.Path())
	assert.Equal(t, NullMarker, src.Spec().NullMarker)
}

func TestRowsMissingFile(t *testing.T) {
	_, err := New(WithPath(filepath.Join(t.TempDir(), "airports.dat"))).Rows(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsSourceError(err))
	assert.Contains(t, err.Error(), "openflights")
}
