// Package explain provides the explain command, which shows where each
// field of a merged airport came from.
package explain

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/airportmap/internal/appcontext"
	"github.com/agentstation/airportmap/internal/cmd/cmdutil"
)

// Flags holds the explain command flags.
type Flags struct {
	*cmdutil.InputFlags

	Format string
	Fields []string
}

// NewCommand creates the explain command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "explain CODE...",
		GroupID: "core",
		Short:   "Show which source supplied each field of an airport",
		Args:    cobra.MinimumNArgs(1),
		Long: `Explain runs a build with provenance tracking and prints, for each
airport code given, every value offered for every field, the source that
offered it and which value was kept.

Records that validation drops are explained too, with the reason.`,
		Example: `  airportmap explain LAX
  airportmap explain LAX MAG --field 'country*' --field '^time'
  airportmap explain LAX --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd.Context(), cmd, app, flags, args)
		},
	}

	flags = &Flags{InputFlags: cmdutil.AddInputFlags(cmd)}
	cmd.Flags().StringVar(&flags.Format, "format", "", "output format: table, json, yaml (default table on a terminal, json otherwise)")
	cmd.Flags().StringSliceVar(&flags.Fields, "field", nil, "only show fields matching these glob or regex patterns")

	return cmd
}
