// Package store persists core.State to sqlite so the daemon and API
// processes can restart without losing a station's trend history and
// condition hysteresis (§5 "the caller is responsible for persisting
// state across restarts").
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/wandiweather/internal/classify"
	"github.com/lox/wandiweather/internal/core"
	"github.com/lox/wandiweather/internal/hysteresis"
	"github.com/lox/wandiweather/internal/trends"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveState persists state for stationID, replacing anything previously
// saved for it.
func (s *Store) SaveState(stationID string, state core.State) error {
	configJSON, err := json.Marshal(state.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var derivedJSON []byte
	if state.HasDerived {
		derivedJSON, err = json.Marshal(state.Derived)
		if err != nil {
			return fmt.Errorf("marshal derived state: %w", err)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO stations (station_id, config_json, derived_json, last_timestamp, has_derived)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(station_id) DO UPDATE SET
			config_json = excluded.config_json,
			derived_json = excluded.derived_json,
			last_timestamp = excluded.last_timestamp,
			has_derived = excluded.has_derived
	`, stationID, string(configJSON), nullableString(derivedJSON), state.LastTimestamp, state.HasDerived)
	if err != nil {
		return fmt.Errorf("upsert station: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM trend_samples WHERE station_id = ?`, stationID); err != nil {
		return fmt.Errorf("clear trend samples: %w", err)
	}
	if state.Trends != nil {
		for _, sample := range state.Trends.All() {
			_, err := tx.Exec(`
				INSERT INTO trend_samples (station_id, timestamp, temperature_f, humidity_pct, pressure_inhg, wind_speed_mph, wind_dir_deg, has_wind_dir, solar_radiation, condition)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, stationID, sample.Timestamp, sample.TemperatureF, sample.HumidityPct, sample.PressureInHg, sample.WindSpeedMph, sample.WindDirDeg, sample.HasWindDir, sample.SolarRadiation, sample.Condition)
			if err != nil {
				return fmt.Errorf("insert trend sample: %w", err)
			}
		}
	}

	if _, err := tx.Exec(`DELETE FROM condition_history WHERE station_id = ?`, stationID); err != nil {
		return fmt.Errorf("clear condition history: %w", err)
	}
	if state.History != nil {
		for _, entry := range state.History.All() {
			_, err := tx.Exec(`
				INSERT INTO condition_history (station_id, timestamp, condition)
				VALUES (?, ?, ?)
			`, stationID, entry.Timestamp, string(entry.Condition))
			if err != nil {
				return fmt.Errorf("insert condition history entry: %w", err)
			}
		}
	}

	return tx.Commit()
}

// LoadState reconstructs a station's State, or (core.State{}, false, nil)
// if nothing has been persisted for it yet.
func (s *Store) LoadState(stationID string) (core.State, bool, error) {
	var configJSON string
	var derivedJSON sql.NullString
	var lastTimestamp sql.NullTime
	var hasDerived bool

	row := s.db.QueryRow(`SELECT config_json, derived_json, last_timestamp, has_derived FROM stations WHERE station_id = ?`, stationID)
	if err := row.Scan(&configJSON, &derivedJSON, &lastTimestamp, &hasDerived); err != nil {
		if err == sql.ErrNoRows {
			return core.State{}, false, nil
		}
		return core.State{}, false, fmt.Errorf("load station: %w", err)
	}

	var cfg core.Config
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return core.State{}, false, fmt.Errorf("unmarshal config: %w", err)
	}

	state := core.NewState(cfg)
	if hasDerived && derivedJSON.Valid {
		if err := json.Unmarshal([]byte(derivedJSON.String), &state.Derived); err != nil {
			return core.State{}, false, fmt.Errorf("unmarshal derived state: %w", err)
		}
		state.HasDerived = true
	}
	if lastTimestamp.Valid {
		state.LastTimestamp = lastTimestamp.Time
		state.HasLastTimestamp = true
	}

	samples, err := s.loadTrendSamples(stationID)
	if err != nil {
		return core.State{}, false, err
	}
	state.Trends.Restore(samples)

	entries, err := s.loadConditionHistory(stationID)
	if err != nil {
		return core.State{}, false, err
	}
	state.History.Restore(entries)

	return state, true, nil
}

func (s *Store) loadTrendSamples(stationID string) ([]trends.Sample, error) {
	rows, err := s.db.Query(`
		SELECT timestamp, temperature_f, humidity_pct, pressure_inhg, wind_speed_mph, wind_dir_deg, has_wind_dir, solar_radiation, condition
		FROM trend_samples WHERE station_id = ? ORDER BY timestamp ASC
	`, stationID)
	if err != nil {
		return nil, fmt.Errorf("query trend samples: %w", err)
	}
	defer rows.Close()

	var out []trends.Sample
	for rows.Next() {
		var sample trends.Sample
		var ts time.Time
		if err := rows.Scan(&ts, &sample.TemperatureF, &sample.HumidityPct, &sample.PressureInHg, &sample.WindSpeedMph, &sample.WindDirDeg, &sample.HasWindDir, &sample.SolarRadiation, &sample.Condition); err != nil {
			return nil, fmt.Errorf("scan trend sample: %w", err)
		}
		sample.Timestamp = ts
		out = append(out, sample)
	}
	return out, rows.Err()
}

func (s *Store) loadConditionHistory(stationID string) ([]hysteresis.Entry, error) {
	rows, err := s.db.Query(`
		SELECT timestamp, condition FROM condition_history WHERE station_id = ? ORDER BY timestamp ASC
	`, stationID)
	if err != nil {
		return nil, fmt.Errorf("query condition history: %w", err)
	}
	defer rows.Close()

	var out []hysteresis.Entry
	for rows.Next() {
		var e hysteresis.Entry
		var cond string
		if err := rows.Scan(&e.Timestamp, &cond); err != nil {
			return nil, fmt.Errorf("scan condition history entry: %w", err)
		}
		e.Condition = classify.Condition(cond)
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullableString(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
