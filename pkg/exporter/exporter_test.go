package exporter

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/airportmap/internal/utils/ptr"
	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/logging"
)

func fixture() airports.List {
	return airports.List{
		{
			Name: "Los Angeles Intl", City: "Los Angeles", State: ptr.String("ca"),
			Country: "us", CountryName: "United States", IATA: "LAX", ICAO: "KLAX",
			Latitude: 33.9425, Longitude: -118.408, Timezone: "America/Los_Angeles",
			HasScheduledService: true,
		},
		{
			Name: "Akureyri", City: "Akureyri", Country: "is", IATA: "AEY", ICAO: "BIAR",
			Latitude: 65.66, Longitude: -18.0727, Timezone: "Atlantic/Reykjavik",
		},
	}
}

const laxJSON = `{
    "name": "Los Angeles Intl",
    "city": "Los Angeles",
    "state": "ca",
    "country": "us",
    "countryName": "United States",
    "iata": "LAX",
    "icao": "KLAX",
    "latitude": 33.9425,
    "longitude": -118.408,
    "timezone": "America/Los_Angeles",
    "hasScheduledService": true
  }`

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(strings.ToUpper(f.String()))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("xml")
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, FormatSQLite.Stream())
	assert.True(t, FormatYAML.Stream())
}

func TestOptions(t *testing.T) {
	o := Defaults().Apply(WithObject(true), WithFormat(FormatJSON), WithPath("out.json"))
	assert.Equal(t, ModeObject, o.Mode())
	assert.Equal(t, FormatJSON, o.Format())
	assert.Equal(t, "out.json", o.Path())
	assert.Nil(t, o.Writer())

	o = Defaults().Apply(WithObject(true), WithObject(false))
	assert.Equal(t, ModeList, o.Mode())
	assert.Equal(t, FormatModule, o.Format())
}

func TestModuleList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(context.Background(), fixture()[:1], WithWriter(&buf)))

	want := "/* eslint-disable */\nmodule.exports = [\n  " + laxJSON + "\n]\n"
	assert.Equal(t, want, buf.String())
}

func TestModuleObject(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(context.Background(), fixture()[:1], WithWriter(&buf), WithMode(ModeObject)))

	want := "/* eslint-disable */\nmodule.exports = {\n  \"LAX\": " + laxJSON + "\n}\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONObjectKeepsInsertionOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(context.Background(), fixture(), WithWriter(&buf), WithFormat(FormatJSON), WithObject(true)))

	out := buf.String()
	assert.Less(t, strings.Index(out, `"LAX"`), strings.Index(out, `"AEY"`))
	assert.Contains(t, out, `"state": null`)
	assert.NotContains(t, out, "module.exports")

	var decoded map[string]airports.Airport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "BIAR", decoded["AEY"].ICAO)
}

func TestJSONEmpty(t *testing.T) {
	for _, mode := range []Mode{ModeList, ModeObject} {
		var buf bytes.Buffer
		require.NoError(t, Write(context.Background(), &buf, nil, FormatJSON, mode))
		if mode == ModeList {
			assert.Equal(t, "[]\n", buf.String())
		} else {
			assert.Equal(t, "{}\n", buf.String())
		}
	}
}

func TestJSONDoesNotEscapeHTML(t *testing.T) {
	list := fixture()[:1]
	list[0].Name = "A & B <Intl>"
	var buf bytes.Buffer
	require.NoError(t, Write(context.Background(), &buf, list, FormatJSON, ModeList))
	assert.Contains(t, buf.String(), `"A & B <Intl>"`)
}

func TestKeyedSkipsDuplicates(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	list := fixture()
	dup := list[0]
	dup.Name = "Second LAX"
	list = append(list, dup)

	keyed := Keyed(ctx, list)
	require.Len(t, keyed, 2)
	assert.Equal(t, "Los Angeles Intl", keyed[0].Name)
	tl.AssertContains(t, "Skipping duplicate IATA code")
	tl.AssertContains(t, "Second LAX")
}

func TestYAML(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(context.Background(), &buf, fixture(), FormatYAML, ModeList))

		var decoded []airports.Airport
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, []airports.Airport(fixture()), decoded)
	})

	t.Run("object", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(context.Background(), &buf, fixture(), FormatYAML, ModeObject))
		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "LAX:"), out)
		assert.Less(t, strings.Index(out, "LAX:"), strings.Index(out, "AEY:"))
	})
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.json")
	require.NoError(t, Export(context.Background(), fixture(), WithPath(path), WithFormat(FormatJSON)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []airports.Airport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 2)
}

func TestExportValidation(t *testing.T) {
	ctx := context.Background()

	err := Export(ctx, fixture(), WithFormat("xml"))
	assert.True(t, errors.IsValidationError(err))

	err = Export(ctx, fixture(), WithMode("tree"))
	assert.True(t, errors.IsValidationError(err))

	err = Export(ctx, fixture(), WithFormat(FormatSQLite), WithPath("-"))
	assert.True(t, errors.IsValidationError(err))

	err = Write(ctx, &bytes.Buffer{}, fixture(), FormatSQLite, ModeList)
	assert.True(t, errors.IsValidationError(err))
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.db")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	list := append(fixture(), fixture()[0])
	require.NoError(t, Export(context.Background(), list, WithPath(path), WithFormat(FormatSQLite), WithObject(true)))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query("SELECT iata, icao, state, country_name, latitude, has_scheduled_service FROM airports ORDER BY position")
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		iata, icao  string
		state, name sql.NullString
		lat         float64
		scheduled   bool
	}
	var got []row
	for rows.Next() {
		var r row
		require.NoError(t, rows.Scan(&r.iata, &r.icao, &r.state, &r.name, &r.lat, &r.scheduled))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())

	require.Len(t, got, 2, "object mode drops the duplicate")
	assert.Equal(t, "LAX", got[0].iata)
	assert.Equal(t, "ca", got[0].state.String)
	assert.Equal(t, "United States", got[0].name.String)
	assert.Equal(t, 33.9425, got[0].lat)
	assert.True(t, got[0].scheduled)

	assert.Equal(t, "AEY", got[1].iata)
	assert.False(t, got[1].state.Valid)
	assert.False(t, got[1].name.Valid)
	assert.False(t, got[1].scheduled)
}
