// Package build provides the build command implementation.
package build

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/airportmap/internal/appcontext"
)

// NewCommand creates the build command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "build",
		GroupID: "core",
		Short:   "Merge the airport datasets and write the directory",
		Args:    cobra.NoArgs,
		Long: `Build reads every enabled dataset in precedence order, merges the rows
into one record per airport and writes the validated result.

The command will:
• Read each source (OpenFlights, OurAirports, the airport directory, timezones)
• Merge records that share an IATA or ICAO code
• Resolve country names to ISO codes, prompting for unknown names
• Drop records missing a required field or with unparsable values
• Write the airports as a JS module, JSON, YAML or a SQLite database

Unknown country names are looked up in the countries.overrides config list
before prompting. With --no-prompt they abort the build.`,
		Example: `  airportmap build > airports.js                  # Default sources, JS module
  airportmap build --object --format json -o airports.json
  airportmap build --format sqlite -o airports.db
  airportmap build --timezones "" --no-prompt     # Skip the timezone table
  airportmap build --order ourairports,openflights --provenance provenance.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), cmd, app, flags)
		},
	}

	flags = addFlags(cmd)

	return cmd
}
