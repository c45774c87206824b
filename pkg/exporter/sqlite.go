package exporter

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/agentstation/airportmap/pkg/airports"
	"github.com/agentstation/airportmap/pkg/errors"
)

const schema = `
CREATE TABLE airports (
	position INTEGER PRIMARY KEY,
	iata TEXT NOT NULL,
	icao TEXT NOT NULL,
	name TEXT NOT NULL,
	city TEXT NOT NULL,
	state TEXT,
	country TEXT NOT NULL,
	country_name TEXT,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	timezone TEXT NOT NULL,
	has_scheduled_service INTEGER NOT NULL
);

CREATE INDEX idx_airports_iata ON airports(iata);
CREATE INDEX idx_airports_icao ON airports(icao);
CREATE INDEX idx_airports_country ON airports(country);
`

// writeSQLite replaces path with a database holding one airports row per
// entry, in output order. Object mode adds a unique IATA constraint.
func writeSQLite(ctx context.Context, path string, list airports.List, mode Mode) error {
	if mode == ModeObject {
		list = Keyed(ctx, list)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("remove", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.WrapIO("open", path, err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.WrapIO("create schema", path, err)
	}
	if mode == ModeObject {
		if _, err := db.ExecContext(ctx, "CREATE UNIQUE INDEX idx_airports_iata_unique ON airports(iata)"); err != nil {
			return errors.WrapIO("create schema", path, err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapIO("begin", path, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO airports (
		position, iata, icao, name, city, state, country, country_name,
		latitude, longitude, timezone, has_scheduled_service
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.WrapIO("prepare", path, err)
	}
	defer func() { _ = stmt.Close() }()

	for i, a := range list {
		var state, countryName sql.NullString
		if a.State != nil {
			state = sql.NullString{String: *a.State, Valid: true}
		}
		if a.CountryName != "" {
			countryName = sql.NullString{String: a.CountryName, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			i+1, a.IATA, a.ICAO, a.Name, a.City, state, a.Country, countryName,
			a.Latitude, a.Longitude, a.Timezone, a.HasScheduledService,
		); err != nil {
			return errors.WrapIO("insert", path, fmt.Errorf("airport %s: %w", a.IATA, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.WrapIO("commit", path, err)
	}
	return nil
}
