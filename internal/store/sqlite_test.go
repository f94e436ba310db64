package store

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lox/wandiweather/internal/classify"
	"github.com/lox/wandiweather/internal/core"
	"github.com/lox/wandiweather/internal/hysteresis"
	"github.com/lox/wandiweather/internal/trends"
	"github.com/lox/wandiweather/internal/units"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := New(db)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestLoadState_Unknown(t *testing.T) {
	s := setupTestStore(t)

	_, ok, err := s.LoadState("nowhere")
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if ok {
		t.Fatal("expected ok = false for a station never saved")
	}
}

func TestSaveAndLoadState_RoundTrip(t *testing.T) {
	s := setupTestStore(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	humidity := 55.0
	snapshot := core.Snapshot{
		Timestamp:   now,
		OutdoorTemp: &units.Measurement{Value: 70, Unit: units.Fahrenheit},
		Humidity:    &humidity,
		Pressure:    &units.Measurement{Value: 30.0, Unit: units.InchesHg},
	}

	state := core.NewState(core.Config{AltitudeM: 400})
	inference, next, err := core.Observe(snapshot, state)
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}

	if err := s.SaveState("TEST001", next); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	loaded, ok, err := s.LoadState("TEST001")
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if !ok {
		t.Fatal("expected ok = true after SaveState")
	}
	if !loaded.HasLastTimestamp || !loaded.LastTimestamp.Equal(now) {
		t.Errorf("LastTimestamp = %v, want %v", loaded.LastTimestamp, now)
	}
	if !loaded.HasDerived {
		t.Fatal("expected HasDerived = true")
	}
	if loaded.Derived.Condition != inference.Condition {
		t.Errorf("Condition = %q, want %q", loaded.Derived.Condition, inference.Condition)
	}
	if loaded.Config.AltitudeM != 400 {
		t.Errorf("AltitudeM = %v, want 400", loaded.Config.AltitudeM)
	}

	samples := loaded.Trends.All()
	if len(samples) != 1 {
		t.Fatalf("len(trend samples) = %d, want 1", len(samples))
	}
	if samples[0].TemperatureF != 70 {
		t.Errorf("sample TemperatureF = %v, want 70", samples[0].TemperatureF)
	}

	entries := loaded.History.All()
	if len(entries) != 1 {
		t.Fatalf("len(condition history) = %d, want 1", len(entries))
	}
	if entries[0].Condition != inference.Condition {
		t.Errorf("history Condition = %q, want %q", entries[0].Condition, inference.Condition)
	}
}

func TestSaveState_Overwrites(t *testing.T) {
	s := setupTestStore(t)

	state := core.NewState(core.DefaultConfig())
	state.Trends.Insert(trends.Sample{Timestamp: time.Unix(0, 0), TemperatureF: 50})
	state.History.Append(hysteresis.Entry{Timestamp: time.Unix(0, 0), Condition: classify.Sunny})

	if err := s.SaveState("TEST001", state); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	state2 := core.NewState(core.DefaultConfig())
	if err := s.SaveState("TEST001", state2); err != nil {
		t.Fatalf("SaveState (overwrite): %v", err)
	}

	loaded, ok, err := s.LoadState("TEST001")
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if !ok {
		t.Fatal("expected ok = true")
	}
	if len(loaded.Trends.All()) != 0 {
		t.Errorf("len(trend samples) = %d, want 0 after overwrite with empty state", len(loaded.Trends.All()))
	}
	if len(loaded.History.All()) != 0 {
		t.Errorf("len(condition history) = %d, want 0 after overwrite with empty state", len(loaded.History.All()))
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Migrate(); err != nil {
		t.Fatalf("second Migrate call: %v", err)
	}
	version, err := s.MigrationVersion()
	if err != nil {
		t.Fatalf("MigrationVersion: %v", err)
	}
	if version != 1 {
		t.Errorf("MigrationVersion = %d, want 1", version)
	}
}
