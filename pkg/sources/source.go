// Package sources defines the interfaces and field-mapping machinery that
// turn raw dataset rows into partial airport records.
//
// A Source yields Rows. A Spec maps each canonical airport field to either a
// raw column to copy or a pure derivation over the row. Adapt evaluates a
// Spec over a row sequence and yields one partial airports.Record per row.
//
// Example usage:
//
//	rows, err := src.Rows(ctx)
//	if err != nil {
//	    return err
//	}
//	for partial := range sources.Adapt(rows, src.Spec()) {
//	    // merge partial
//	}
package sources

import (
	"context"
	"iter"
	"slices"
	"strings"

	"github.com/agentstation/airportmap/pkg/errors"
)

// ID represents the identifier of a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Known source IDs.
const (
	OurAirportsID ID = "ourairports"
	OpenFlightsID ID = "openflights"
	DirectoryID   ID = "directory"
	TimezonesID   ID = "timezones"
)

// IDs returns all known source IDs in the default precedence order.
func IDs() []ID {
	return []ID{
		OpenFlightsID,
		OurAirportsID,
		DirectoryID,
		TimezonesID,
	}
}

// ParseID validates a source name.
func ParseID(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(IDs(), id) {
		return "", errors.NewValidationError("source", s, "unknown source")
	}
	return id, nil
}

// ParseOrder parses a precedence list such as "openflights,ourairports".
// A source listed twice is rejected.
func ParseOrder(names []string) ([]ID, error) {
	order := make([]ID, 0, len(names))
	for _, name := range names {
		for part := range strings.SplitSeq(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := ParseID(part)
			if err != nil {
				return nil, err
			}
			if slices.Contains(order, id) {
				return nil, errors.NewValidationError("source", part, "listed more than once")
			}
			order = append(order, id)
		}
	}
	return order, nil
}

// Source is one raw dataset.
type Source interface {
	// ID returns the source identifier.
	ID() ID

	// Spec returns the field mapping for this source's rows.
	Spec() Spec

	// Rows reads the dataset. Read and parse failures are returned as
	// *errors.SourceError naming the source.
	Rows(ctx context.Context) (iter.Seq[Row], error)
}

// Row is one raw record of a source: source field name to string value.
type Row map[string]string

// Get returns the value of the named column, or "" when absent.
func (r Row) Get(name string) string {
	return r[name]
}
