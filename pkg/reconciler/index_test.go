package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/airportmap/pkg/airports"
)

func rec(fields ...string) airports.Record {
	r := airports.Record{}
	for i := 0; i+1 < len(fields); i += 2 {
		r.Set(airports.Field(fields[i]), fields[i+1])
	}
	return r
}

func TestIndexStoreAndLookup(t *testing.T) {
	idx := NewIndex()
	id := idx.store(0, rec("iata", "LAX", "icao", "KLAX"), "LAX", "KLAX")
	require.NotZero(t, id)

	_, byIATA, ok := idx.LookupIATA("LAX")
	require.True(t, ok)
	_, byICAO, ok := idx.LookupICAO("KLAX")
	require.True(t, ok)
	assert.Equal(t, id, byIATA)
	assert.Equal(t, id, byICAO)

	_, _, ok = idx.LookupIATA("")
	assert.False(t, ok)
	_, _, ok = idx.LookupICAO("EGLL")
	assert.False(t, ok)
}

func TestIndexRecordsOrder(t *testing.T) {
	idx := NewIndex()
	idx.store(0, rec("iata", "JFK"), "JFK", "")
	idx.store(0, rec("icao", "BIAR"), "", "BIAR")
	lax := idx.store(0, rec("iata", "LAX"), "LAX", "")
	idx.store(lax, rec("iata", "LAX", "icao", "KLAX"), "LAX", "KLAX")

	records := idx.Records()
	require.Len(t, records, 2, "ICAO-only records are not reachable by IATA")
	assert.Equal(t, "JFK", records[0].IATA())
	assert.Equal(t, "KLAX", records[1].ICAO())
	assert.Equal(t, 3, idx.Len())
}

func TestIndexAbsorb(t *testing.T) {
	idx := NewIndex()
	a := idx.store(0, rec("iata", "LAX", "name", "A"), "LAX", "")
	b := idx.store(0, rec("icao", "KLAX", "name", "B"), "", "KLAX")

	idx.absorb(b, a, rec("iata", "LAX", "icao", "KLAX", "name", "B"))

	assert.Equal(t, 1, idx.Len())
	_, id, ok := idx.LookupICAO("KLAX")
	require.True(t, ok)
	assert.Equal(t, a, id)

	iatas, icaos := idx.Codes(a)
	assert.Equal(t, []string{"LAX"}, iatas)
	assert.Equal(t, []string{"KLAX"}, icaos)

	_, ok = idx.Record(b)
	assert.False(t, ok)
	iatas, icaos = idx.Codes(b)
	assert.Nil(t, iatas)
	assert.Nil(t, icaos)
}

func TestIndexDeduplicatesAliases(t *testing.T) {
	idx := NewIndex()
	id := idx.store(0, rec("iata", "LAX"), "LAX", "KLAX")
	idx.store(id, rec("iata", "LAX"), "LAX", "KLAX")

	iatas, icaos := idx.Codes(id)
	assert.Equal(t, []string{"LAX"}, iatas)
	assert.Equal(t, []string{"KLAX"}, icaos)
	assert.Len(t, idx.Records(), 1)
}

func TestStrategy(t *testing.T) {
	s := NewSourceOrderStrategy()
	assert.Equal(t, StrategyTypeSourceOrder, s.Type())
	assert.Equal(t, "Source Order", s.Type().Name())
	assert.NotEmpty(t, s.Description())

	merged := s.Combine(rec("name", "Old", "city", "Here"), rec("name", "New", "timezone", "UTC"))
	assert.Equal(t, rec("name", "Old", "city", "Here", "timezone", "UTC"), merged)

	assert.Equal(t, rec("name", "New"), s.Combine(nil, rec("name", "New")))

	joined := s.Collide(rec("name", "Iata", "city", "A"), rec("name", "Icao"))
	assert.Equal(t, rec("name", "Icao", "city", "A"), joined)
}
