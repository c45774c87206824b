package table

import (
	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/provenance"
)

// Filter selects fields by name.
type Filter interface {
	Match(field string) bool
}

// ProvenanceToTableData converts one record's provenance to table format.
// Fields appear in canonical order with every offered value in merge
// order; the selected value is marked with an arrow. A nil filter keeps
// every field.
func ProvenanceToTableData(resource provenance.ResourceProvenance, filter Filter) Data {
	var rows [][]string

	for _, field := range airports.Fields() {
		fp, ok := resource.Fields[field]
		if !ok || len(fp.History) == 0 || (filter != nil && !filter.Match(string(field))) {
			continue
		}

		for i, entry := range fp.History {
			// Field name only on first row, blank for subsequent entries
			fieldName := ""
			if i == 0 {
				fieldName = string(field)
			}

			current := ""
			if entry.Selected {
				current = "→"
			}

			rows = append(rows, []string{
				fieldName,
				current,
				formatValue(entry.Value),
				entry.Source.String(),
				entry.Reason,
			})
		}
	}

	return Data{
		Headers: []string{"Field", "Curr", "Value", "Source", "Reason"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft,   // Field
			AlignCenter, // Curr
			AlignLeft,   // Value
			AlignLeft,   // Source
			AlignLeft,   // Reason
		},
	}
}

// formatValue makes empty values visible.
func formatValue(v string) string {
	if v == "" {
		return "<empty>"
	}
	return v
}
