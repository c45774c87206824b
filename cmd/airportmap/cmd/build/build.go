package build

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/airportmap"
	"github.com/agentstation/airportmap/internal/appcontext"
	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/exporter"
	"github.com/agentstation/airportmap/pkg/logging"
	"github.com/agentstation/airportmap/pkg/provenance"
)

// Execute builds the airport directory and writes it.
func Execute(ctx context.Context, cmd *cobra.Command, app appcontext.Interface, flags *Flags) error {
	ctx = logging.WithLogger(ctx, app.Logger())

	format, err := exporter.ParseFormat(flags.Format)
	if err != nil {
		return err
	}

	srcs, err := flags.Sources(cmd, app)
	if err != nil {
		return err
	}

	resolver, err := flags.Resolver(cmd, app)
	if err != nil {
		return err
	}

	result, err := airportmap.Build(ctx,
		airportmap.WithSources(srcs...),
		airportmap.WithResolver(resolver),
		airportmap.WithProvenance(flags.Provenance != ""),
	)
	if err != nil {
		return err
	}

	if err := exporter.Export(ctx, result.Airports,
		exporter.WithFormat(format),
		exporter.WithObject(flags.Object),
		exporter.WithPath(flags.Output),
		exporter.WithWriter(cmd.OutOrStdout()),
	); err != nil {
		return err
	}

	if flags.Provenance != "" {
		return writeProvenance(flags.Provenance, result.Merge.Provenance)
	}
	return nil
}

// writeProvenance writes the provenance report to path.
func writeProvenance(path string, tracked provenance.Map) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := provenance.GenerateReport(tracked).WriteYAML(f); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	return errors.WrapIO("close", path, f.Close())
}
