package reconciler_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/countries"
	"github.com/agentstation/airportmap/pkg/reconciler"
	"github.com/agentstation/airportmap/pkg/sources"
)

var (
	iataPool = []string{"AAA", "BBB", "CCC", "DDD", ""}
	icaoPool = []string{"KAAA", "KBBB", "KCCC", "KDDD", ""}
)

// partialFrom decodes a generated integer into a partial record drawn from
// a small code pool, so codes collide often.
func partialFrom(n int) airports.Record {
	r := airports.Record{}
	r.Set(airports.FieldIATA, iataPool[n%5])
	r.Set(airports.FieldICAO, icaoPool[(n/5)%5])
	r.Set(airports.FieldName, fmt.Sprintf("name-%d", n/25))
	if n%2 == 0 {
		r.Set(airports.FieldCountry, "US")
	}
	return r
}

func partialsFrom(ns []int) []airports.Record {
	out := make([]airports.Record, len(ns))
	for i, n := range ns {
		out[i] = partialFrom(n)
	}
	return out
}

func mustReconciler() reconciler.Reconciler {
	table, err := countries.Default()
	if err != nil {
		panic(err)
	}
	r, err := reconciler.New(countries.NewResolver(table, nil))
	if err != nil {
		panic(err)
	}
	return r
}

func snapshot(records []airports.Record) []airports.Record {
	out := make([]airports.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

func TestProperty_Merge(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	ctx := context.Background()

	properties.Property("merging the same source twice changes nothing", prop.ForAll(
		func(ns []int) bool {
			recs := partialsFrom(ns)
			r := mustReconciler()
			if err := r.Merge(ctx, sources.OpenFlightsID, partials(recs...)); err != nil {
				return false
			}
			once := snapshot(r.Index().Records())
			onceLen := r.Index().Len()

			if err := r.Merge(ctx, sources.OpenFlightsID, partials(recs...)); err != nil {
				return false
			}
			return reflect.DeepEqual(once, r.Index().Records()) && onceLen == r.Index().Len()
		},
		gen.SliceOf(gen.IntRange(0, 124)),
	))

	properties.Property("a partial's codes reach one record after merging", prop.ForAll(
		func(ns []int) bool {
			recs := partialsFrom(ns)
			r := mustReconciler()
			if err := r.Merge(ctx, sources.OpenFlightsID, partials(recs...)); err != nil {
				return false
			}
			for _, p := range recs {
				if p.IATA() == "" || p.ICAO() == "" {
					continue
				}
				_, a, okA := r.Index().LookupIATA(p.IATA())
				_, b, okB := r.Index().LookupICAO(p.ICAO())
				if !okA || !okB || a != b {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 124)),
	))

	properties.Property("earlier sources win every field they supply", prop.ForAll(
		func(first, second []int) bool {
			r := mustReconciler()
			// IATA only, so no cross-key collisions can reorder precedence
			iataOnly := func(ns []int, tag string) []airports.Record {
				out := make([]airports.Record, 0, len(ns))
				for _, n := range ns {
					out = append(out, airports.Record{
						airports.FieldIATA: iataPool[n%4],
						airports.FieldName: fmt.Sprintf("%s-%d", tag, n),
					})
				}
				return out
			}
			a, b := iataOnly(first, "first"), iataOnly(second, "second")
			if err := r.Merge(ctx, sources.OurAirportsID, partials(a...)); err != nil {
				return false
			}
			if err := r.Merge(ctx, sources.DirectoryID, partials(b...)); err != nil {
				return false
			}

			want := map[string]string{}
			for _, p := range append(a, b...) {
				if _, ok := want[p.IATA()]; !ok {
					want[p.IATA()] = p.Get(airports.FieldName)
				}
			}
			for code, name := range want {
				got, _, ok := r.Index().LookupIATA(code)
				if !ok || got.Get(airports.FieldName) != name {
					return false
				}
			}
			return len(r.Index().Records()) == len(want)
		},
		gen.SliceOf(gen.IntRange(0, 99)),
		gen.SliceOf(gen.IntRange(0, 99)),
	))

	properties.Property("cross-key collisions keep the ICAO side's values", prop.ForAll(
		func(iataName, icaoName, city string) bool {
			if iataName == "" || icaoName == "" || city == "" {
				return true
			}
			r := mustReconciler()
			err := r.Merge(ctx, sources.OpenFlightsID, partials(
				airports.Record{airports.FieldIATA: "AAA", airports.FieldName: iataName, airports.FieldCity: city},
				airports.Record{airports.FieldICAO: "KAAA", airports.FieldName: icaoName},
				airports.Record{airports.FieldIATA: "AAA", airports.FieldICAO: "KAAA"},
			))
			if err != nil {
				return false
			}
			got, _, _ := r.Index().LookupIATA("AAA")
			return r.Index().Len() == 1 &&
				got.Get(airports.FieldName) == icaoName &&
				got.Get(airports.FieldCity) == city
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
