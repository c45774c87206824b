package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/provenance"
	"github.com/agentstation/airportmap/pkg/sources"
)

func TestProvenanceToTableData(t *testing.T) {
	resource := provenance.ResourceProvenance{
		ID: "LAX",
		Fields: map[airports.Field]provenance.Field{
			airports.FieldName: {History: []provenance.Provenance{
				{Source: sources.OpenFlightsID, Value: "Los Angeles International Airport", Selected: true, Reason: provenance.ReasonFilled},
				{Source: sources.OurAirportsID, Value: "Los Angeles Intl", Reason: provenance.ReasonKept},
			}},
			airports.FieldIATA: {History: []provenance.Provenance{
				{Source: sources.OpenFlightsID, Value: "LAX", Selected: true, Reason: provenance.ReasonFilled},
			}},
			airports.FieldCity: {History: []provenance.Provenance{
				{Source: sources.DirectoryID, Value: "", Selected: true},
			}},
		},
	}

	data := ProvenanceToTableData(resource, nil)
	assert.Equal(t, []string{"Field", "Curr", "Value", "Source", "Reason"}, data.Headers)
	assert.Len(t, data.ColumnAlignment, len(data.Headers))
	require.Len(t, data.Rows, 4)

	// canonical field order: name, city, then iata
	assert.Equal(t, []string{"name", "→", "Los Angeles International Airport", "openflights", "filled"}, data.Rows[0])
	assert.Equal(t, []string{"", "", "Los Angeles Intl", "ourairports", "kept existing"}, data.Rows[1])
	assert.Equal(t, "<empty>", data.Rows[2][2])
	assert.Equal(t, []string{"iata", "→", "LAX", "openflights", "filled"}, data.Rows[3])

	filtered := ProvenanceToTableData(resource, only("name"))
	assert.Len(t, filtered.Rows, 2)
}

type only string

func (o only) Match(field string) bool { return field == string(o) }
