package airportmap

import (
	"github.com/agentstation/airportmap/pkg/countries"
	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/sources"
)

// Option is a function that configures a build.
type Option func(*config) error

// config holds build settings.
type config struct {
	sources    []sources.Source
	resolver   *countries.Resolver
	provenance bool
}

// WithSources sets the sources to merge, highest precedence first.
func WithSources(srcs ...sources.Source) Option {
	return func(c *config) error {
		if len(srcs) == 0 {
			return &errors.ValidationError{
				Field:   "sources",
				Message: "at least one source is required",
			}
		}
		c.sources = srcs
		return nil
	}
}

// WithResolver sets the country resolver.
func WithResolver(resolver *countries.Resolver) Option {
	return func(c *config) error {
		if resolver == nil {
			return &errors.ValidationError{
				Field:   "resolver",
				Message: "cannot be nil",
			}
		}
		c.resolver = resolver
		return nil
	}
}

// WithProvenance enables field-level source tracking.
func WithProvenance(enabled bool) Option {
	return func(c *config) error {
		c.provenance = enabled
		return nil
	}
}
