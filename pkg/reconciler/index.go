package reconciler

import (
	"iter"

	"github.com/agentstation/airportmap/pkg/airports"
)

// RecordID identifies a canonical record inside an Index. IDs are never
// reused within one Index.
type RecordID int

// entry is one live canonical record and the codes that reach it.
type entry struct {
	record airports.Record
	iatas  []string
	icaos  []string
}

// Index is the dual IATA/ICAO index of canonical records. Both maps point
// at record IDs, so no two distinct records are reachable by the same IATA
// code or the same ICAO code.
type Index struct {
	records   map[RecordID]*entry
	byIATA    map[string]RecordID
	byICAO    map[string]RecordID
	iataOrder []string
	next      RecordID
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		records: make(map[RecordID]*entry),
		byIATA:  make(map[string]RecordID),
		byICAO:  make(map[string]RecordID),
		next:    1,
	}
}

// LookupIATA returns the record reachable by an IATA code.
func (idx *Index) LookupIATA(code string) (airports.Record, RecordID, bool) {
	return idx.lookup(idx.byIATA, code)
}

// LookupICAO returns the record reachable by an ICAO code.
func (idx *Index) LookupICAO(code string) (airports.Record, RecordID, bool) {
	return idx.lookup(idx.byICAO, code)
}

func (idx *Index) lookup(codes map[string]RecordID, code string) (airports.Record, RecordID, bool) {
	if code == "" {
		return nil, 0, false
	}
	id, ok := codes[code]
	if !ok {
		return nil, 0, false
	}
	return idx.records[id].record, id, true
}

// Record returns the record stored under id.
func (idx *Index) Record(id RecordID) (airports.Record, bool) {
	e, ok := idx.records[id]
	if !ok {
		return nil, false
	}
	return e.record, true
}

// Len returns the number of distinct live records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Records returns the distinct records reachable by an IATA code, in the
// order their first IATA code was inserted. Records known only by ICAO
// code are not included.
func (idx *Index) Records() []airports.Record {
	out := make([]airports.Record, 0, len(idx.records))
	for _, rec := range idx.All() {
		out = append(out, rec)
	}
	return out
}

// All iterates the records returned by Records together with their IDs.
func (idx *Index) All() iter.Seq2[RecordID, airports.Record] {
	return func(yield func(RecordID, airports.Record) bool) {
		seen := make(map[RecordID]bool, len(idx.records))
		for _, code := range idx.iataOrder {
			id := idx.byIATA[code]
			if seen[id] {
				continue
			}
			seen[id] = true
			if !yield(id, idx.records[id].record) {
				return
			}
		}
	}
}

// store saves rec under id, creating a new record when id is zero, and
// points the given codes at it. Empty codes are ignored.
func (idx *Index) store(id RecordID, rec airports.Record, iata, icao string) RecordID {
	e, ok := idx.records[id]
	if !ok {
		id = idx.next
		idx.next++
		e = &entry{}
		idx.records[id] = e
	}
	e.record = rec

	if iata != "" {
		if _, known := idx.byIATA[iata]; !known {
			idx.iataOrder = append(idx.iataOrder, iata)
		}
		if idx.byIATA[iata] != id {
			idx.byIATA[iata] = id
			e.iatas = append(e.iatas, iata)
		}
	}
	if icao != "" && idx.byICAO[icao] != id {
		idx.byICAO[icao] = id
		e.icaos = append(e.icaos, icao)
	}
	return id
}

// absorb folds record from into record into, with from's values winning
// for fields present in both. Every code that reached from now reaches
// into, and from is removed.
func (idx *Index) absorb(from, into RecordID, merged airports.Record) {
	src, dst := idx.records[from], idx.records[into]
	dst.record = merged
	for _, code := range src.iatas {
		idx.byIATA[code] = into
		dst.iatas = append(dst.iatas, code)
	}
	for _, code := range src.icaos {
		idx.byICAO[code] = into
		dst.icaos = append(dst.icaos, code)
	}
	delete(idx.records, from)
}

// Codes returns the IATA and ICAO codes that reach id.
func (idx *Index) Codes(id RecordID) (iatas, icaos []string) {
	e, ok := idx.records[id]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), e.iatas...), append([]string(nil), e.icaos...)
}
