// Package countries maps country names, as spelled by the source datasets,
// to ISO 3166-1 alpha-2 codes and back.
package countries

import (
	_ "embed"
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/airportmap/pkg/errors"
)

//go:embed countries.yaml
var seed []byte

// Table is an ordered name to code mapping. Order is significant: when two
// names share a code, the first one is the display name for that code.
type Table struct {
	names []string
	codes map[string]string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{codes: make(map[string]string)}
}

// Default returns a fresh copy of the embedded seed table.
func Default() (*Table, error) {
	return Parse(seed)
}

// LoadFile reads a seed table from a YAML mapping file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return t, nil
}

// Parse decodes a YAML mapping of country name to code, keeping document
// order.
func Parse(data []byte) (*Table, error) {
	var items yaml.MapSlice
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	t := NewTable()
	for _, item := range items {
		name := strings.TrimSpace(fmt.Sprint(item.Key))
		code, ok := item.Value.(string)
		if !ok {
			return nil, fmt.Errorf("country %q: code must be a string, got %T", name, item.Value)
		}
		if name == "" || strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("country %q: empty name or code", name)
		}
		t.Add(name, code)
	}
	return t, nil
}

// Add appends name with code. It never overwrites: adding a known name is a
// no-op and returns false.
func (t *Table) Add(name, code string) bool {
	if _, ok := t.codes[name]; ok {
		return false
	}
	t.names = append(t.names, name)
	t.codes[name] = strings.TrimSpace(code)
	return true
}

// Code returns the code for name.
func (t *Table) Code(name string) (string, bool) {
	code, ok := t.codes[name]
	return code, ok
}

// Len returns the number of names.
func (t *Table) Len() int {
	return len(t.names)
}

// All iterates names and codes in insertion order.
func (t *Table) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range t.names {
			if !yield(name, t.codes[name]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	c := NewTable()
	for name, code := range t.All() {
		c.Add(name, code)
	}
	return c
}

// MarshalYAML renders the table as an ordered mapping.
func (t *Table) MarshalYAML() (any, error) {
	items := make(yaml.MapSlice, 0, t.Len())
	for name, code := range t.All() {
		items = append(items, yaml.MapItem{Key: name, Value: code})
	}
	return items, nil
}
