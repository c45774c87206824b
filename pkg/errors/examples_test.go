package errors_test

import (
	"fmt"
	"os"

	"github.com/agentstation/airportmap/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	err := errors.NewNotFoundError("airport", "ZZZ")

	if errors.IsNotFound(err) {
		fmt.Println(err)
	}

	// Output: airport with ID ZZZ not found
}

// Example_sourceError shows how a failed dataset read names its source.
func Example_sourceError() {
	err := errors.WrapSource("openflights", "data/airports.dat", os.ErrNotExist)

	var srcErr *errors.SourceError
	if errors.As(err, &srcErr) {
		fmt.Println("broken source:", srcErr.Source)
	}
	fmt.Println(errors.IsSourceError(err), errors.Is(err, os.ErrNotExist))

	// Output:
	// broken source: openflights
	// true true
}

// Example_countryError shows the error raised for an unmapped country name.
func Example_countryError() {
	err := errors.NewCountryError("Atlantis", errors.ErrUnresolvedCountry)

	fmt.Println(err)
	fmt.Println(errors.IsUnresolvedCountry(err))

	// Output:
	// no country code for "Atlantis"
	// true
}

// Example_validationError demonstrates validation error handling.
func Example_validationError() {
	err := errors.NewValidationError("format", "xml", "must be one of module, json, yaml, sqlite")

	if errors.IsValidationError(err) {
		fmt.Println(err)
	}

	// Output: validation failed for field format: must be one of module, json, yaml, sqlite
}
