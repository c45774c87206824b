package explain

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/airportmap"
	"github.com/agentstation/airportmap/internal/appcontext"
	"github.com/agentstation/airportmap/internal/cmd/output"
	"github.com/agentstation/airportmap/internal/cmd/table"
	"github.com/agentstation/airportmap/internal/matcher"
	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/logging"
	"github.com/agentstation/airportmap/pkg/provenance"
	"github.com/agentstation/airportmap/pkg/sources"
)

// Airport is the structured explanation of one record.
type Airport struct {
	Code    string  `json:"code" yaml:"code"`
	Dropped string  `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	Fields  []Field `json:"fields" yaml:"fields"`
}

// Field is the explanation of one field.
type Field struct {
	Field     airports.Field `json:"field" yaml:"field"`
	Value     string         `json:"value" yaml:"value"`
	Source    sources.ID     `json:"source" yaml:"source"`
	Reason    string         `json:"reason,omitempty" yaml:"reason,omitempty"`
	Conflicts []Offer        `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

// Offer is a value a source offered that was not kept.
type Offer struct {
	Source sources.ID `json:"source" yaml:"source"`
	Value  string     `json:"value" yaml:"value"`
}

// Execute builds with provenance and prints the explanation for codes.
func Execute(ctx context.Context, cmd *cobra.Command, app appcontext.Interface, flags *Flags, codes []string) error {
	ctx = logging.WithLogger(ctx, app.Logger())

	format, err := output.ParseFormat(flags.Format)
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))

	filter, err := matcher.NewMultiMatcher(flags.Fields, matcher.Auto, matcher.Options{CaseInsensitive: true})
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
		airportmap.WithProvenance(true),
	)
	if err != nil {
		return err
	}

	report := provenance.GenerateReport(result.Merge.Provenance)
	dropped := make(map[string]string, len(result.Validation.Dropped))
	for _, d := range result.Validation.Dropped {
		dropped[d.Code] = d.String()
	}

	out := cmd.OutOrStdout()
	if format == output.FormatTable {
		for i, code := range codes {
			code = strings.ToUpper(strings.TrimSpace(code))
			resource, ok := report.Resources[code]
			if !ok {
				return errors.NewNotFoundError("airport", code)
			}
			if i > 0 {
				fmt.Fprintln(out)
			}
			heading := code
			if reason, ok := dropped[code]; ok {
				heading += " (dropped, " + reason + ")"
			}
			fmt.Fprintln(out, heading)
			if err := output.NewFormatter(format).Format(out, table.ProvenanceToTableData(resource, filter)); err != nil {
				return err
			}
		}
		return nil
	}

	explained := make([]Airport, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		resource, ok := report.Resources[code]
		if !ok {
			return errors.NewNotFoundError("airport", code)
		}
		explained = append(explained, explain(resource, dropped[code], filter))
	}
	return output.NewFormatter(format).Format(out, explained)
}

// explain converts one record's provenance to its structured form.
func explain(resource provenance.ResourceProvenance, dropped string, filter *matcher.MultiMatcher) Airport {
	a := Airport{Code: resource.ID, Dropped: dropped, Fields: []Field{}}
	for _, f := range airports.Fields() {
		fp, ok := resource.Fields[f]
		if !ok || !fp.Current.Selected || !filter.Match(string(f)) {
			continue
		}
		field := Field{
			Field:  f,
			Value:  fp.Current.Value,
			Source: fp.Current.Source,
			Reason: fp.Current.Reason,
		}
		for _, c := range fp.Conflicts {
			field.Conflicts = append(field.Conflicts, Offer{Source: c.Source, Value: c.Value})
		}
		a.Fields = append(a.Fields, field)
	}
	return a
}
