// Package appcontext provides the application context interface used by
// the airportmap commands. Commands accept this interface rather than the
// concrete App so they can be tested with a stub.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/airportmap/pkg/countries"
	"github.com/agentstation/airportmap/pkg/sources"
)

// Interface defines what commands need from the application.
type Interface interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// SourcePath returns the configured dataset path for id. An empty
	// path disables the source.
	SourcePath(id sources.ID) string

	// SourceOrder returns the configured precedence order as a
	// comma-separated list of source names.
	SourceOrder() string

	// CountriesFile returns the configured seed table override, if any.
	CountriesFile() string

	// CountryOverrides returns the fixed country codes consulted before
	// prompting.
	CountryOverrides() countries.Fixed

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
