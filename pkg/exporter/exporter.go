// Package exporter serializes the validated airport list deterministically:
// fixed field order, insertion-ordered keys and no timestamps.
package exporter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/logging"
)

// modulePrefix opens a generated data module.
const modulePrefix = "/* eslint-disable */\nmodule.exports = "

// Export writes list according to opts. Stream formats go to the configured
// writer, or to the path when one is set; sqlite always needs a path.
func Export(ctx context.Context, list airports.List, opts ...Option) error {
	o := Defaults().Apply(opts...)
	if !o.format.IsValid() {
		return errors.NewValidationError("format", o.format, "unsupported format")
	}
	if o.mode != ModeList && o.mode != ModeObject {
		return errors.NewValidationError("mode", o.mode, "must be list or object")
	}

	toPath := o.path != "" && o.path != "-"
	if !o.format.Stream() {
		if !toPath {
			return errors.NewValidationError("output", o.path, "sqlite output needs a file path")
		}
		return writeSQLite(ctx, o.path, list, o.mode)
	}

	if !toPath {
		w := o.writer
		if w == nil {
			w = os.Stdout
		}
		return Write(ctx, w, list, o.format, o.mode)
	}

	var buf bytes.Buffer
	if err := Write(ctx, &buf, list, o.format, o.mode); err != nil {
		return err
	}
	if err := os.WriteFile(o.path, buf.Bytes(), 0o644); err != nil {
		return errors.WrapIO("write", o.path, err)
	}
	return nil
}

// Write encodes list to w in a stream format.
func Write(ctx context.Context, w io.Writer, list airports.List, format Format, mode Mode) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatModule, FormatJSON:
		data, err = encodeJSON(ctx, list, mode)
		if err == nil && format == FormatModule {
			data = append([]byte(modulePrefix), data...)
		}
	case FormatYAML:
		data, err = encodeYAML(ctx, list, mode)
	default:
		return errors.NewValidationError("format", format, "not a stream format")
	}
	if err != nil {
		return errors.WrapParse(format.String(), "", err)
	}

	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if _, err := w.Write(data); err != nil {
		return errors.WrapIO("write", "output", err)
	}
	return nil
}

// Keyed returns list with later duplicates of an IATA code removed, in
// first-seen order. Skipped duplicates are logged.
func Keyed(ctx context.Context, list airports.List) airports.List {
	seen := make(map[string]bool, len(list))
	out := make(airports.List, 0, len(list))
	for _, a := range list {
		if seen[a.IATA] {
			logging.FromContext(ctx).Warn().
				Str("iata", a.IATA).
				Str("icao", a.ICAO).
				Str("name", a.Name).
				Msg("Skipping duplicate IATA code in keyed output")
			continue
		}
		seen[a.IATA] = true
		out = append(out, a)
	}
	return out
}

// encodeJSON renders list with two-space indentation. Keyed output is
// written entry by entry to keep insertion order.
func encodeJSON(ctx context.Context, list airports.List, mode Mode) ([]byte, error) {
	if mode == ModeList {
		if list == nil {
			list = airports.List{}
		}
		return marshalJSON(list, "")
	}

	keyed := Keyed(ctx, list)
	if len(keyed) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, a := range keyed {
		key, err := marshalJSON(a.IATA, "")
		if err != nil {
			return nil, err
		}
		value, err := marshalJSON(a, "  ")
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(keyed)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalJSON encodes v without HTML escaping.
func marshalJSON(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func encodeYAML(ctx context.Context, list airports.List, mode Mode) ([]byte, error) {
	if mode == ModeList {
		if list == nil {
			list = airports.List{}
		}
		return yaml.Marshal(list)
	}

	keyed := Keyed(ctx, list)
	doc := make(yaml.MapSlice, 0, len(keyed))
	for _, a := range keyed {
		doc = append(doc, yaml.MapItem{Key: a.IATA, Value: a})
	}
	return yaml.Marshal(doc)
}
