package store

import (
	"database/sql"
	"fmt"
	"log"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "Initial schema",
		SQL: `
CREATE TABLE IF NOT EXISTS stations (
    station_id TEXT PRIMARY KEY,
    config_json TEXT NOT NULL,
    derived_json TEXT,
    last_timestamp DATETIME,
    has_derived BOOLEAN DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS trend_samples (
    station_id TEXT NOT NULL,
    timestamp DATETIME NOT NULL,
    temperature_f REAL,
    humidity_pct REAL,
    pressure_inhg REAL,
    wind_speed_mph REAL,
    wind_dir_deg REAL,
    has_wind_dir BOOLEAN,
    solar_radiation REAL,
    condition TEXT,
    PRIMARY KEY (station_id, timestamp)
);

CREATE TABLE IF NOT EXISTS condition_history (
    station_id TEXT NOT NULL,
    timestamp DATETIME NOT NULL,
    condition TEXT NOT NULL,
    PRIMARY KEY (station_id, timestamp)
);

CREATE INDEX IF NOT EXISTS idx_trend_samples_station_ts ON trend_samples(station_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_condition_history_station_ts ON condition_history(station_id, timestamp);
`,
	},
}

// Migrate applies every migration not yet recorded in schema_migrations, in
// version order, each inside its own transaction.
func (s *Store) Migrate() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}
	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("exec migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, CURRENT_TIMESTAMP)`, m.Version, m.Description); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}

		log.Printf("migrations: completed %d", m.Version)
	}

	return nil
}

func (s *Store) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME
		)
	`)
	return err
}

func (s *Store) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (s *Store) MigrationVersion() (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}
