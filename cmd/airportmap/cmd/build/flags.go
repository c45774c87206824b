package build

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/airportmap/internal/cmd/cmdutil"
	"github.com/agentstation/airportmap/pkg/exporter"
)

// Flags holds the build command flags.
type Flags struct {
	*cmdutil.InputFlags

	Object     bool
	Format     string
	Output     string
	Provenance string
}

// addFlags registers the build flags on cmd.
func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{InputFlags: cmdutil.AddInputFlags(cmd)}

	f := cmd.Flags()
	f.BoolVar(&flags.Object, "object", false, "emit an object keyed by IATA code instead of a list")
	f.StringVar(&flags.Format, "format", exporter.FormatModule.String(), "output format: module, json, yaml, sqlite")
	f.StringVarP(&flags.Output, "output", "o", "", "output file (default stdout; required for sqlite)")
	f.StringVar(&flags.Provenance, "provenance", "", "write a field provenance report to this file")

	return flags
}
