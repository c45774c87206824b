package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/airportmap/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "airport",
			ID:       "LAX",
		}
		assert.Equal(t, "airport with ID LAX not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("airport", "KLAX")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("latitude", "abc", "not a number")
		assert.Equal(t, "validation failed for field latitude: not a number", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty record"}
		assert.Equal(t, "validation failed: empty record", err.Error())
	})
}

func TestSourceError(t *testing.T) {
	t.Run("names the source and path", func(t *testing.T) {
		base := errors.New("no such file or directory")
		err := pkgerrors.NewSourceError("openflights", "data/airports.dat", base)
		assert.Equal(t, "source openflights (data/airports.dat): no such file or directory", err.Error())
		assert.Equal(t, base, err.Unwrap())
		assert.True(t, pkgerrors.IsSourceError(err))
	})

	t.Run("without path", func(t *testing.T) {
		err := pkgerrors.NewSourceError("directory", "", errors.New("bad json"))
		assert.Equal(t, "source directory: bad json", err.Error())
	})

	t.Run("wrap helper keeps inner chain", func(t *testing.T) {
		inner := pkgerrors.NewParseError("csv", "airports.csv", "bare quote", nil)
		err := pkgerrors.WrapSource("ourairports", "airports.csv", inner)
		var parseErr *pkgerrors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "csv", parseErr.Format)
		assert.True(t, pkgerrors.IsSourceError(err))
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapSource("timezones", "x", nil))
	})
}

func TestCountryError(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		err := pkgerrors.NewCountryError("Atlantis", pkgerrors.ErrUnresolvedCountry)
		assert.Equal(t, `no country code for "Atlantis"`, err.Error())
		assert.True(t, pkgerrors.IsUnresolvedCountry(err))
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("EOF")
		err := pkgerrors.NewCountryError("Atlantis", cause)
		assert.Contains(t, err.Error(), "Atlantis")
		assert.Contains(t, err.Error(), "EOF")
		assert.True(t, pkgerrors.IsUnresolvedCountry(err))
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("merge: %w", pkgerrors.NewCountryError("Atlantis", nil))
		assert.True(t, pkgerrors.IsUnresolvedCountry(err))
	})
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("order", "unknown source \"foo\"", nil)
	assert.Contains(t, err.Error(), "order")
	assert.Contains(t, err.Error(), "unknown source")
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestParseError(t *testing.T) {
	t.Run("with line", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "tsv",
			File:    "timezones.tsv",
			Line:    12,
			Message: "expected 2 columns",
		}
		assert.Equal(t, "parse error in tsv at timezones.tsv:12: expected 2 columns", err.Error())
	})

	t.Run("file only", func(t *testing.T) {
		err := pkgerrors.NewParseError("json", "airports.json", "unexpected EOF", nil)
		assert.Equal(t, "parse error in json file airports.json: unexpected EOF", err.Error())
	})

	t.Run("no file", func(t *testing.T) {
		err := pkgerrors.WrapParse("yaml", "", errors.New("bad indent"))
		assert.Equal(t, "yaml parse error: bad indent", err.Error())
	})
}

func TestIOError(t *testing.T) {
	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/airports.js", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
		assert.Contains(t, err.Error(), "/data/airports.js")
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapIO("open", "/tmp/airports.csv", errors.New("permission denied"))
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "open", ioErr.Operation)
		assert.Equal(t, "/tmp/airports.csv", ioErr.Path)
	})

	t.Run("without path", func(t *testing.T) {
		err := &pkgerrors.IOError{Operation: "read", Message: "closed pipe"}
		assert.Equal(t, "IO error during read: closed pipe", err.Error())
	})
}
