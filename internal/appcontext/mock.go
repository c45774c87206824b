package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/airportmap/pkg/countries"
	"github.com/agentstation/airportmap/pkg/logging"
	"github.com/agentstation/airportmap/pkg/sources"
)

// Mock provides a mock implementation of Interface for testing.
// Unset fields return zero values; a nil LoggerFunc gives a no-op logger.
type Mock struct {
	LoggerFunc func() *zerolog.Logger
	Paths      map[sources.ID]string
	Order      string
	Countries  string
	Overrides  countries.Fixed
}

var _ Interface = (*Mock)(nil)

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// SourcePath returns the mock path for id.
func (m *Mock) SourcePath(id sources.ID) string {
	return m.Paths[id]
}

// SourceOrder returns the mock order.
func (m *Mock) SourceOrder() string {
	return m.Order
}

// CountriesFile returns the mock seed table path.
func (m *Mock) CountriesFile() string {
	return m.Countries
}

// CountryOverrides returns the mock overrides.
func (m *Mock) CountryOverrides() countries.Fixed {
	return m.Overrides
}

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
