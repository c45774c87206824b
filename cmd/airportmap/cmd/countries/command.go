// Package countries provides the countries command, which prints the
// country table used to resolve names to ISO codes.
package countries

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/airportmap/internal/appcontext"
	"github.com/agentstation/airportmap/internal/cmd/cmdutil"
	"github.com/agentstation/airportmap/internal/cmd/output"
	"github.com/agentstation/airportmap/pkg/countries"
)

// entry is one table row in JSON and table output.
type entry struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// NewCommand creates the countries command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		path   string
		format string
	)

	cmd := &cobra.Command{
		Use:     "countries",
		GroupID: "core",
		Short:   "Print the country name table",
		Args:    cobra.NoArgs,
		Long: `Countries prints the table that maps country names to ISO 3166-1 alpha-2
codes, as YAML by default. The first name listed for a code is the name
written to the airport records.`,
		Example: `  airportmap countries
  airportmap countries --format table
  airportmap countries --countries my-countries.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("countries") {
				path = app.CountriesFile()
			}
			table, err := cmdutil.LoadCountries(path)
			if err != nil {
				return err
			}

			var data any = table
			if f != output.FormatYAML {
				data = entries(table)
			}
			return output.NewFormatter(f).Format(cmd.OutOrStdout(), data)
		},
	}

	cmd.Flags().StringVar(&path, "countries", "", "country table YAML replacing the built-in one")
	cmd.Flags().StringVar(&format, "format", string(output.FormatYAML), "output format: yaml, json, table")

	return cmd
}

func entries(t *countries.Table) []entry {
	list := make([]entry, 0, t.Len())
	for name, code := range t.All() {
		list = append(list, entry{Name: name, Code: code})
	}
	return list
}
