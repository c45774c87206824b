package airportmap_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/agentstation/airportmap"
	"github.com/agentstation/airportmap/internal/sources/openflights"
	"github.com/agentstation/airportmap/internal/sources/ourairports"
	"github.com/agentstation/airportmap/pkg/countries"
	"github.com/agentstation/airportmap/pkg/exporter"
)

// ExampleBuild merges an OpenFlights dump with OurAirports and prints the
// result as JSON.
func ExampleBuild() {
	dir, err := os.MkdirTemp("", "airportmap")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	openFlights := filepath.Join(dir, "airports.dat")
	ourAirports := filepath.Join(dir, "airports.csv")
	files := map[string]string{
		openFlights: `507,"London Heathrow Airport","London","United Kingdom","LHR","EGLL",51.4706,-0.461941,83,0,"E","Europe/London"` + "\n",
		ourAirports: "ident,type,name,latitude_deg,longitude_deg,iso_country,iso_region,municipality,scheduled_service,iata_code\n" +
			"EGLL,large_airport,London Heathrow,51.4706,-0.461941,GB,GB-ENG,London,yes,LHR\n",
	}
	for path, data := range files {
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			log.Fatal(err)
		}
	}

	table, err := countries.Default()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	result, err := airportmap.Build(ctx,
		airportmap.WithSources(
			openflights.New(openflights.WithPath(openFlights)),
			ourairports.New(ourairports.WithPath(ourAirports)),
		),
		airportmap.WithResolver(countries.NewResolver(table, countries.Fail())),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Built %d airport(s)\n", len(result.Airports))
	if err := exporter.Export(ctx, result.Airports,
		exporter.WithFormat(exporter.FormatJSON),
		exporter.WithWriter(os.Stdout),
	); err != nil {
		log.Fatal(err)
	}

	// Output:
	// Built 1 airport(s)
	// [
	//   {
	//     "name": "London Heathrow Airport",
	//     "city": "London",
	//     "state": null,
	//     "country": "gb",
	//     "countryName": "United Kingdom",
	//     "iata": "LHR",
	//     "icao": "EGLL",
	//     "latitude": 51.4706,
	//     "longitude": -0.46194,
	//     "timezone": "Europe/London",
	//     "hasScheduledService": true
	//   }
	// ]
}
