package reconciler

import (
	"strings"

	"github.com/agentstation/airportmap/pkg/airports"
)

// StrategyType represents the type of merge strategy.
type StrategyType string

// String returns the string representation of a strategy type.
func (s StrategyType) String() string {
	return string(s)
}

// Name returns the name of the strategy type.
func (s StrategyType) Name() string {
	words := strings.Split(s.String(), "-")
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// StrategyTypeSourceOrder lets data merged earlier win.
const StrategyTypeSourceOrder StrategyType = "source-order"

// Strategy decides which values survive when records meet.
type Strategy interface {
	// Type returns the strategy type
	Type() StrategyType

	// Description returns a human-readable description
	Description() string

	// Combine merges an incoming partial into the existing record
	// (nil when the airport is new) and returns a new record.
	Combine(existing, partial airports.Record) airports.Record

	// Collide merges the record found by IATA code with a distinct record
	// found by ICAO code for the same partial.
	Collide(iataSide, icaoSide airports.Record) airports.Record
}

// SourceOrderStrategy keeps the first value seen for each field, so sources
// merged earlier take precedence. On a cross-key collision the ICAO-side
// record wins every field both records carry, regardless of source order.
type SourceOrderStrategy struct{}

// NewSourceOrderStrategy creates the default strategy.
func NewSourceOrderStrategy() Strategy {
	return SourceOrderStrategy{}
}

// Type returns the strategy type.
func (SourceOrderStrategy) Type() StrategyType {
	return StrategyTypeSourceOrder
}

// Description returns a human-readable description.
func (SourceOrderStrategy) Description() string {
	return "Earlier sources win; ICAO-side record wins cross-key collisions"
}

// Combine overlays existing onto partial: existing values win, the partial
// fills gaps.
func (SourceOrderStrategy) Combine(existing, partial airports.Record) airports.Record {
	merged := partial.Clone()
	merged.Overlay(existing)
	return merged
}

// Collide overlays the ICAO-side record onto the IATA-side record.
func (SourceOrderStrategy) Collide(iataSide, icaoSide airports.Record) airports.Record {
	merged := iataSide.Clone()
	merged.Overlay(icaoSide)
	return merged
}
