// Package csvfile reads delimited text datasets into raw source rows.
package csvfile

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/logging"
	"github.com/agentstation/airportmap/pkg/sources"
)

// Options configures how a delimited file is parsed.
type Options struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// Comment, when set, marks lines to skip.
	Comment rune

	// Columns names the columns of a headerless file. When empty the first
	// record is the header.
	Columns []string
}

// Read opens path and parses it into rows. Every failure is returned as a
// *errors.SourceError naming id.
func Read(ctx context.Context, id sources.ID, path string, opts Options) ([]sources.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapSource(id.String(), path, errors.WrapIO("open", path, err))
	}
	defer func() { _ = f.Close() }()

	rows, err := Parse(f, opts)
	if err != nil {
		return nil, errors.WrapSource(id.String(), path, errors.WrapParse("csv", path, err))
	}

	logging.FromContext(ctx).Debug().
		Str("source", id.String()).
		Str("path", path).
		Int("rows", len(rows)).
		Msg("Read source file")

	return rows, nil
}

// Parse reads every record from r.
func Parse(r io.Reader, opts Options) ([]sources.Row, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.Comment = opts.Comment
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	headers := opts.Columns
	if len(headers) == 0 {
		if len(records) == 0 {
			return nil, errors.New("missing header row")
		}
		headers = make([]string, len(records[0]))
		for i, h := range records[0] {
			headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		}
		records = records[1:]
	}

	rows := make([]sources.Row, 0, len(records))
	for _, record := range records {
		if blank(record) {
			continue
		}
		row := make(sources.Row, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
