// Package app provides the application context and dependency management
// for the airportmap CLI: configuration, logging and version information
// shared by every command.
package app

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/airportmap/internal/appcontext"
	"github.com/agentstation/airportmap/pkg/countries"
	"github.com/agentstation/airportmap/pkg/sources"
)

// App represents the airportmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger; fixed is set when WithLogger supplied it
	logger *zerolog.Logger
	fixed  bool
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the default locations; use WithConfig to
// replace it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// SourcePath returns the configured dataset path for id.
func (a *App) SourcePath(id sources.ID) string {
	return a.config.SourcePaths[id]
}

// SourceOrder returns the configured precedence order.
func (a *App) SourceOrder() string {
	return a.config.Order
}

// CountriesFile returns the configured seed table override.
func (a *App) CountriesFile() string {
	return a.config.CountriesFile
}

// CountryOverrides returns the configured fixed country codes.
func (a *App) CountryOverrides() countries.Fixed {
	return a.config.Fixed()
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.fixed = true
		return nil
	}
}
