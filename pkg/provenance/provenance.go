// Package provenance provides field-level tracking of which source supplied
// each value of a canonical airport record.
package provenance

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/sources"
)

// ResourceAirport is the only resource type tracked.
const ResourceAirport = "airport"

// Reasons recorded with a value.
const (
	ReasonFilled   = "filled"            // first value seen for the field
	ReasonKept     = "kept existing"     // offered but an earlier source won
	ReasonAbsorbed = "cross-key merge"   // taken from the ICAO-side record
	ReasonDerived  = "derived from code" // countryName recomputed from country
)

// Provenance tracks the origin of one offered field value.
type Provenance struct {
	Source   sources.ID     `yaml:"source"`
	Field    airports.Field `yaml:"-"`
	Value    string         `yaml:"value"`
	Selected bool           `yaml:"-"`
	Reason   string         `yaml:"reason,omitempty"`
}

// Map tracks provenance for multiple records.
type Map map[string][]Provenance // key is "airport:resourceID:field"

// Tracker manages provenance tracking during a merge.
type Tracker interface {
	// Track records an offered value for a field
	Track(resourceID string, history Provenance)

	// FindByField retrieves provenance for a specific field
	FindByField(resourceID string, field airports.Field) []Provenance

	// FindByResource retrieves all provenance for a record
	FindByResource(resourceID string) map[airports.Field][]Provenance

	// Absorb appends all history of from onto to and forgets from
	Absorb(from, to string)

	// Rename moves all history of from to the new resource ID
	Rename(from, to string)

	// Map returns the complete provenance map
	Map() Map
}

// tracker is the default implementation.
type tracker struct {
	provenance Map
	enabled    bool
}

// NewTracker creates a new provenance tracker. A disabled tracker records
// nothing.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		provenance: make(Map),
		enabled:    enabled,
	}
}

// Track records provenance for a field.
func (p *tracker) Track(resourceID string, history Provenance) {
	if !p.enabled {
		return
	}
	key := makeKey(resourceID, history.Field)
	p.provenance[key] = append(p.provenance[key], history)
}

// FindByField retrieves provenance for a specific field.
func (p *tracker) FindByField(resourceID string, field airports.Field) []Provenance {
	if !p.enabled {
		return nil
	}
	return p.provenance[makeKey(resourceID, field)]
}

// FindByResource retrieves all provenance for a record.
func (p *tracker) FindByResource(resourceID string) map[airports.Field][]Provenance {
	if !p.enabled {
		return nil
	}

	result := make(map[airports.Field][]Provenance)
	prefix := resourcePrefix(resourceID)
	for key, info := range p.provenance {
		if field, found := strings.CutPrefix(key, prefix); found {
			result[airports.Field(field)] = info
		}
	}
	return result
}

// Absorb appends the history of from onto to, so that from's values
// become current for every field it tracked.
func (p *tracker) Absorb(from, to string) {
	if !p.enabled || from == to {
		return
	}
	for field, info := range p.FindByResource(from) {
		key := makeKey(to, field)
		for _, h := range info {
			if h.Selected {
				h.Reason = ReasonAbsorbed
			}
			p.provenance[key] = append(p.provenance[key], h)
		}
		delete(p.provenance, makeKey(from, field))
	}
}

// Rename re-keys the history of from under to.
func (p *tracker) Rename(from, to string) {
	if !p.enabled || from == to {
		return
	}
	for field, info := range p.FindByResource(from) {
		delete(p.provenance, makeKey(from, field))
		key := makeKey(to, field)
		p.provenance[key] = append(p.provenance[key], info...)
	}
}

// Map returns the complete provenance map.
func (p *tracker) Map() Map {
	if !p.enabled {
		return nil
	}

	// Return a copy to prevent external modification
	result := make(Map, len(p.provenance))
	for k, v := range p.provenance {
		result[k] = slices.Clone(v)
	}
	return result
}

func resourcePrefix(resourceID string) string {
	return fmt.Sprintf("%s:%s:", ResourceAirport, resourceID)
}

// makeKey creates a unique key for provenance tracking.
func makeKey(resourceID string, field airports.Field) string {
	return resourcePrefix(resourceID) + string(field)
}

// Report is a per-record view of a Map.
type Report struct {
	Resources map[string]ResourceProvenance // key is the record code
}

// ResourceProvenance contains provenance for a single record.
type ResourceProvenance struct {
	ID     string
	Fields map[airports.Field]Field
}

// Field contains provenance history for a single field.
type Field struct {
	Current   Provenance   // Selected value and its source
	History   []Provenance // Every offered value, in merge order
	Conflicts []Provenance // Offered values that differ from Current
}

// GenerateReport creates a provenance report from a Map.
func GenerateReport(provenance Map) *Report {
	report := &Report{
		Resources: make(map[string]ResourceProvenance),
	}

	for key, infos := range provenance {
		parts := strings.SplitN(key, ":", 3)
		if len(parts) != 3 || parts[0] != ResourceAirport {
			continue
		}
		resourceID, field := parts[1], airports.Field(parts[2])

		resource, exists := report.Resources[resourceID]
		if !exists {
			resource = ResourceProvenance{
				ID:     resourceID,
				Fields: make(map[airports.Field]Field),
			}
		}

		fieldProv := Field{History: infos}
		for _, info := range infos {
			if info.Selected {
				fieldProv.Current = info
			}
		}
		for _, info := range infos {
			if !info.Selected && info.Value != fieldProv.Current.Value {
				fieldProv.Conflicts = append(fieldProv.Conflicts, info)
			}
		}

		resource.Fields[field] = fieldProv
		report.Resources[resourceID] = resource
	}

	return report
}

// reportEntry is the serialized form of one field.
type reportEntry struct {
	Source    sources.ID   `yaml:"source"`
	Value     string       `yaml:"value"`
	Reason    string       `yaml:"reason,omitempty"`
	Conflicts []Provenance `yaml:"conflicts,omitempty"`
}

// WriteYAML writes the report as YAML, with records sorted by code and
// fields in canonical order.
func (r *Report) WriteYAML(w io.Writer) error {
	ids := make([]string, 0, len(r.Resources))
	for id := range r.Resources {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	doc := make(yaml.MapSlice, 0, len(ids))
	for _, id := range ids {
		resource := r.Resources[id]
		fields := yaml.MapSlice{}
		for _, f := range airports.Fields() {
			fp, ok := resource.Fields[f]
			if !ok || !fp.Current.Selected {
				continue
			}
			fields = append(fields, yaml.MapItem{Key: string(f), Value: reportEntry{
				Source:    fp.Current.Source,
				Value:     fp.Current.Value,
				Reason:    fp.Current.Reason,
				Conflicts: fp.Conflicts,
			}})
		}
		doc = append(doc, yaml.MapItem{Key: id, Value: fields})
	}

	out, err := yaml.Marshal(yaml.MapSlice{{Key: "provenance", Value: doc}})
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
