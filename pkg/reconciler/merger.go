package reconciler

import (
	"context"
	"strings"

	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/countries"
	"github.com/agentstation/airportmap/pkg/logging"
	"github.com/agentstation/airportmap/pkg/provenance"
	"github.com/agentstation/airportmap/pkg/sources"
)

// merger folds the partials of one source into the index.
type merger struct {
	strategy Strategy
	resolver *countries.Resolver
	tracker  provenance.Tracker
	index    *Index
	source   sources.ID

	merged   int
	skipped  int
	crossKey int
}

// merge folds one partial record.
func (m *merger) merge(ctx context.Context, partial airports.Record) error {
	iata, icao := partial.IATA(), partial.ICAO()
	if iata == "" && icao == "" {
		m.skipped++
		return nil
	}

	// Find the existing record, joining two records when the partial's
	// codes reach different ones.
	_, iataID, iataOK := m.index.LookupIATA(iata)
	_, icaoID, icaoOK := m.index.LookupICAO(icao)

	var id RecordID
	switch {
	case iataOK && icaoOK && iataID != icaoID:
		id = m.collide(ctx, iataID, icaoID, iata, icao)
	case iataOK:
		id = iataID
	case icaoOK:
		id = icaoID
	}
	existing, _ := m.index.Record(id)

	merged := m.strategy.Combine(existing, partial)
	if id != 0 {
		m.track(id, existing, partial)
	}

	if err := m.normalizeCountry(ctx, merged); err != nil {
		return err
	}

	stored := m.index.store(id, merged, iata, icao)
	if id == 0 {
		m.track(stored, nil, partial)
	}
	m.trackCountry(stored, partial, merged)
	m.merged++
	return nil
}

// collide joins the record reached by icao into the record reached by iata.
// The surviving ID is the IATA side so output order stays stable.
func (m *merger) collide(ctx context.Context, iataID, icaoID RecordID, iata, icao string) RecordID {
	iataSide, _ := m.index.Record(iataID)
	icaoSide, _ := m.index.Record(icaoID)

	m.index.absorb(icaoID, iataID, m.strategy.Collide(iataSide, icaoSide))
	m.tracker.Absorb(trackingID(icaoID), trackingID(iataID))
	m.crossKey++

	logging.FromContext(logging.WithAirport(ctx, iata)).Debug().
		Str("icao", icao).
		Msg("Joined records reached by different codes")

	return iataID
}

// normalizeCountry lower-cases the country code, resolves it from the
// country name when missing, and recomputes the display name from the code.
func (m *merger) normalizeCountry(ctx context.Context, rec airports.Record) error {
	rec.Set(airports.FieldCountry, strings.ToLower(rec.Get(airports.FieldCountry)))

	if name := rec.Get(airports.FieldCountryName); name != "" && !rec.Has(airports.FieldCountry) {
		code, err := m.resolver.Resolve(ctx, name)
		if err != nil {
			return err
		}
		rec.Set(airports.FieldCountry, code)
	}

	if code := rec.Get(airports.FieldCountry); code != "" {
		name, _ := m.resolver.Name(code)
		rec.Set(airports.FieldCountryName, name)
	} else {
		rec.Set(airports.FieldCountryName, "")
	}

	rec.Set(airports.FieldCountry, strings.ToLower(rec.Get(airports.FieldCountry)))
	return nil
}

// track records each field the partial offered; a field is selected when
// the existing record did not carry it.
func (m *merger) track(id RecordID, existing, partial airports.Record) {
	for _, f := range airports.Fields() {
		v := partial.Get(f)
		if v == "" {
			continue
		}
		selected := !existing.Has(f)
		reason := provenance.ReasonFilled
		if !selected {
			reason = provenance.ReasonKept
		}
		m.tracker.Track(trackingID(id), provenance.Provenance{
			Source:   m.source,
			Field:    f,
			Value:    v,
			Selected: selected,
			Reason:   reason,
		})
	}
}

// trackCountry records country values that the merge derived rather than
// copied from the partial.
func (m *merger) trackCountry(id RecordID, partial, merged airports.Record) {
	for _, f := range []airports.Field{airports.FieldCountry, airports.FieldCountryName} {
		v := merged.Get(f)
		if v == "" || strings.EqualFold(v, partial.Get(f)) {
			continue
		}
		if last := lastSelected(m.tracker.FindByField(trackingID(id), f)); last != nil && strings.EqualFold(last.Value, v) {
			continue
		}
		m.tracker.Track(trackingID(id), provenance.Provenance{
			Source:   m.source,
			Field:    f,
			Value:    v,
			Selected: true,
			Reason:   provenance.ReasonDerived,
		})
	}
}

func lastSelected(history []provenance.Provenance) *provenance.Provenance {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Selected {
			return &history[i]
		}
	}
	return nil
}
