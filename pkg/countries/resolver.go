package countries

import (
	"context"
	"strings"

	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/logging"
)

// Resolver resolves country names to codes, learning unknown names through
// a Lookup. The table only grows: a name, once resolved, keeps its code for
// the rest of the run. Resolver is not safe for concurrent use.
type Resolver struct {
	table   *Table
	reverse map[string]string
	lookup  Lookup
	failed  map[string]error
	added   []string
}

// NewResolver creates a resolver over a copy of table. A nil lookup fails
// every unknown name.
func NewResolver(table *Table, lookup Lookup) *Resolver {
	if table == nil {
		table = NewTable()
	}
	if lookup == nil {
		lookup = Fail()
	}
	r := &Resolver{
		table:   table.Clone(),
		reverse: make(map[string]string),
		lookup:  lookup,
		failed:  make(map[string]error),
	}
	for name, code := range r.table.All() {
		r.remember(name, code)
	}
	return r
}

// Resolve returns the code for name, asking the lookup once for unknown
// names. A lookup failure or an empty answer is a *errors.CountryError, and
// the same name fails again without asking.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	if code, ok := r.table.Code(name); ok {
		return code, nil
	}
	if err, ok := r.failed[name]; ok {
		return "", err
	}

	code, err := r.lookup.Lookup(ctx, name)
	code = strings.TrimSpace(code)
	if err == nil && code == "" {
		err = errors.ErrUnresolvedCountry
	}
	if err != nil {
		cerr := errors.NewCountryError(name, err)
		r.failed[name] = cerr
		return "", cerr
	}

	r.table.Add(name, code)
	r.remember(name, code)
	r.added = append(r.added, name)

	logging.FromContext(ctx).Info().
		Str("country", name).
		Str("code", code).
		Msg("Added country code")

	return code, nil
}

// Name returns the display name for code. Codes compare case-insensitively
// and the first name seen for a code wins.
func (r *Resolver) Name(code string) (string, bool) {
	name, ok := r.reverse[strings.ToLower(code)]
	return name, ok
}

// Len returns the number of known names.
func (r *Resolver) Len() int {
	return r.table.Len()
}

// Added returns the names learned during the run, in order.
func (r *Resolver) Added() []string {
	return append([]string(nil), r.added...)
}

// Table returns the resolver's table, including learned names.
func (r *Resolver) Table() *Table {
	return r.table
}

func (r *Resolver) remember(name, code string) {
	key := strings.ToLower(code)
	if _, ok := r.reverse[key]; !ok {
		r.reverse[key] = name
	}
}
