// Package registry constructs dataset sources by ID.
// This package is separate from the source packages to avoid import cycles.
package registry

import (
	"fmt"
	"slices"

	"github.com/agentstation/airportmap/internal/sources/directory"
	"github.com/agentstation/airportmap/internal/sources/openflights"
	"github.com/agentstation/airportmap/internal/sources/ourairports"
	"github.com/agentstation/airportmap/internal/sources/timezones"
	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/sources"
)

// registry maps source IDs to their constructors and default paths.
var registry = map[sources.ID]struct {
	defaultPath string
	create      func(path string) sources.Source
}{
	sources.OurAirportsID: {ourairports.DefaultPath, func(p string) sources.Source { return ourairports.New(ourairports.WithPath(p)) }},
	sources.OpenFlightsID: {openflights.DefaultPath, func(p string) sources.Source { return openflights.New(openflights.WithPath(p)) }},
	sources.DirectoryID:   {directory.DefaultPath, func(p string) sources.Source { return directory.New(directory.WithPath(p)) }},
	sources.TimezonesID:   {timezones.DefaultPath, func(p string) sources.Source { return timezones.New(timezones.WithPath(p)) }},
}

// Get creates the source for id reading from path.
func Get(id sources.ID, path string) (sources.Source, error) {
	entry, ok := registry[id]
	if !ok {
		return nil, &errors.ValidationError{
			Field:   "source",
			Value:   id,
			Message: fmt.Sprintf("unsupported source: %s", id),
		}
	}
	return entry.create(path), nil
}

// DefaultPath returns the default dataset path for id.
func DefaultPath(id sources.ID) string {
	return registry[id].defaultPath
}

// Build creates the sources named in order, reading each from paths[id].
// Sources whose path is empty are disabled and left out.
func Build(order []sources.ID, paths map[sources.ID]string) ([]sources.Source, error) {
	srcs := make([]sources.Source, 0, len(order))
	for _, id := range order {
		path := paths[id]
		if path == "" {
			continue
		}
		src, err := Get(id, path)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, src)
	}
	return srcs, nil
}

// List returns all source IDs with an implementation, in default order.
func List() []sources.ID {
	return slices.DeleteFunc(sources.IDs(), func(id sources.ID) bool {
		_, ok := registry[id]
		return !ok
	})
}
