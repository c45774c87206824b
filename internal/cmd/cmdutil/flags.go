// Package cmdutil provides the dataset and country flags shared by the
// commands that run a build.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/airportmap/internal/appcontext"
	"github.com/agentstation/airportmap/internal/sources/registry"
	"github.com/agentstation/airportmap/pkg/countries"
	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/sources"
)

// InputFlags holds the flags that select datasets and country handling.
type InputFlags struct {
	Paths     map[sources.ID]*string
	Order     string
	Countries string
	NoPrompt  bool
}

// AddInputFlags adds the dataset and country flags to a command.
func AddInputFlags(cmd *cobra.Command) *InputFlags {
	flags := &InputFlags{Paths: make(map[sources.ID]*string)}

	f := cmd.Flags()
	for _, id := range registry.List() {
		path := new(string)
		f.StringVar(path, id.String(), registry.DefaultPath(id),
			id.String()+" dataset path (empty disables the source)")
		flags.Paths[id] = path
	}
	f.StringVar(&flags.Order, "order", "",
		"source precedence, highest first (default openflights,ourairports,directory,timezones)")
	f.StringVar(&flags.Countries, "countries", "",
		"country table YAML replacing the built-in one")
	f.BoolVar(&flags.NoPrompt, "no-prompt", false,
		"fail on unknown country names instead of prompting")

	return flags
}

// Sources creates the enabled sources in precedence order. Flags that were
// given win over the app configuration. Sources left out of the order are
// not read.
func (f *InputFlags) Sources(cmd *cobra.Command, app appcontext.Interface) ([]sources.Source, error) {
	order := app.SourceOrder()
	if cmd.Flags().Changed("order") {
		order = f.Order
	}
	ids := sources.IDs()
	if order != "" {
		parsed, err := sources.ParseOrder([]string{order})
		if err != nil {
			return nil, err
		}
		if len(parsed) > 0 {
			ids = parsed
		}
	}

	paths := make(map[sources.ID]string, len(f.Paths))
	for id, path := range f.Paths {
		paths[id] = app.SourcePath(id)
		if cmd.Flags().Changed(id.String()) {
			paths[id] = *path
		}
	}

	srcs, err := registry.Build(ids, paths)
	if err != nil {
		return nil, err
	}
	if len(srcs) == 0 {
		return nil, errors.NewValidationError("sources", order, "every source is disabled")
	}
	return srcs, nil
}

// Resolver loads the country table and chains the configured overrides
// with the interactive prompt on the command's input and error streams.
func (f *InputFlags) Resolver(cmd *cobra.Command, app appcontext.Interface) (*countries.Resolver, error) {
	path := app.CountriesFile()
	if cmd.Flags().Changed("countries") {
		path = f.Countries
	}
	table, err := LoadCountries(path)
	if err != nil {
		return nil, err
	}

	lookups := []countries.Lookup{app.CountryOverrides()}
	if !f.NoPrompt {
		lookups = append(lookups, countries.Prompt(cmd.InOrStdin(), cmd.ErrOrStderr()))
	}
	return countries.NewResolver(table, countries.Chain(lookups...)), nil
}

// LoadCountries reads the table at path, or the built-in table when path
// is empty.
func LoadCountries(path string) (*countries.Table, error) {
	if path == "" {
		return countries.Default()
	}
	return countries.LoadFile(path)
}
