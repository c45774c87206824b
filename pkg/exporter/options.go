package exporter

import (
	"io"
	"strings"

	"github.com/agentstation/airportmap/pkg/errors"
)

// Format is an output encoding.
type Format string

// Format constants.
const (
	FormatModule Format = "module"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatModule, FormatJSON, FormatYAML, FormatSQLite}
}

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatModule, FormatJSON, FormatYAML, FormatSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Stream reports whether the format can be written to an io.Writer.
func (f Format) Stream() bool {
	return f != FormatSQLite
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", errors.NewValidationError("format", s, "must be one of module, json, yaml, sqlite")
	}
	return f, nil
}

// Mode selects the top-level shape of the output.
type Mode string

// Mode constants.
const (
	// ModeList writes an ordered array of airports.
	ModeList Mode = "list"
	// ModeObject writes a mapping keyed by IATA code.
	ModeObject Mode = "object"
)

// Options is the configuration for an export.
type Options struct {
	path   string
	writer io.Writer
	format Format
	mode   Mode
}

// Path returns the output path. "" and "-" mean the writer.
func (o *Options) Path() string {
	return o.path
}

// Writer returns the writer used for stream formats.
func (o *Options) Writer() io.Writer {
	return o.writer
}

// Format returns the output format.
func (o *Options) Format() Format {
	return o.format
}

// Mode returns the output mode.
func (o *Options) Mode() Mode {
	return o.mode
}

// Defaults returns the default export options.
func Defaults() *Options {
	return &Options{
		format: FormatModule,
		mode:   ModeList,
	}
}

// Apply applies the given options to the export options.
func (o *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(o)
	}
	return *o
}

// Option is a function that configures export options.
type Option func(*Options)

// WithFormat for custom output format.
func WithFormat(f Format) Option {
	return func(o *Options) {
		o.format = f
	}
}

// WithMode selects list or object output.
func WithMode(m Mode) Option {
	return func(o *Options) {
		o.mode = m
	}
}

// WithObject switches to object mode when enabled.
func WithObject(enabled bool) Option {
	return func(o *Options) {
		if enabled {
			o.mode = ModeObject
		} else {
			o.mode = ModeList
		}
	}
}

// WithPath for filesystem exports.
func WithPath(path string) Option {
	return func(o *Options) {
		o.path = path
	}
}

// WithWriter for custom outputs.
func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.writer = w
	}
}
