// Package core wires the leaf analyzers (units, altitude, dewpoint, solar,
// cloud, fog, trends, pressurewind, classify, hysteresis, forecast) into
// the pipeline orchestrator's two pure entry points, Observe and Forecast
// (§4.11).
package core

import (
	"time"

	"github.com/lox/wandiweather/internal/classify"
	"github.com/lox/wandiweather/internal/forecast"
	"github.com/lox/wandiweather/internal/fog"
	"github.com/lox/wandiweather/internal/hysteresis"
	"github.com/lox/wandiweather/internal/pressurewind"
	"github.com/lox/wandiweather/internal/trends"
	"github.com/lox/wandiweather/internal/units"
)

// RainState is the sensor's wet/dry signal (§3.2).
type RainState string

const (
	RainWet RainState = "wet"
	RainDry RainState = "dry"
)

// Snapshot is one raw sensor reading cycle (§3.2). Every field is optional
// except OutdoorTemp, and Humidity unless Dewpoint is supplied.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	OutdoorTemp *units.Measurement `json:"outdoor_temp"`
	Humidity    *float64           `json:"humidity,omitempty"` // percent, 0-100
	Dewpoint    *units.Measurement `json:"dewpoint,omitempty"`

	Pressure           *units.Measurement `json:"pressure,omitempty"`
	PressureIsSeaLevel bool                `json:"pressure_is_sea_level,omitempty"`

	WindSpeed  *units.Measurement `json:"wind_speed,omitempty"`
	WindGust   *units.Measurement `json:"wind_gust,omitempty"`
	WindDirDeg *float64           `json:"wind_dir_deg,omitempty"`

	RainRate  *units.Measurement `json:"rain_rate,omitempty"`
	RainState *RainState         `json:"rain_state,omitempty"`

	SolarRadiationWm2 *float64 `json:"solar_radiation_wm2,omitempty"`
	SolarLux          *float64 `json:"solar_lux,omitempty"`
	UVIndex           *float64 `json:"uv_index,omitempty"`
	SolarElevationDeg *float64 `json:"solar_elevation_deg,omitempty"`

	AltitudeM float64 `json:"altitude_m,omitempty"` // 0 means "do not correct"
}

// Config configures a fresh State (§6.1).
type Config struct {
	AltitudeM              float64
	PressureIsSeaLevelHint bool
	LuminanceMultiplier    float64 // [0.1, 5.0], default 1.0
	ZenithMaxRadiationWm2  float64 // [800, 2000], default 1000
	UnitsOut               units.System
	SunriseDefault         float64 // local hour, default 6
	SunsetDefault          float64 // local hour, default 18
	SolarAvgWindowMinutes  int     // default 15
}

// DefaultConfig returns a Config with every optional field at its
// documented default.
func DefaultConfig() Config {
	return Config{
		LuminanceMultiplier:   1.0,
		ZenithMaxRadiationWm2: 1000,
		UnitsOut:              units.Imperial,
		SunriseDefault:        6,
		SunsetDefault:         18,
		SolarAvgWindowMinutes: 15,
	}
}

// Validate checks Config's bounded fields and fills in defaults for
// zero-valued optional fields, returning the corrected Config.
func (c Config) Validate() (Config, []Warning) {
	var warnings []Warning

	if c.LuminanceMultiplier == 0 {
		c.LuminanceMultiplier = 1.0
	} else if c.LuminanceMultiplier < 0.1 || c.LuminanceMultiplier > 5.0 {
		warnings = append(warnings, Warning{Kind: WarnInvalidRange, Message: "luminance_multiplier out of [0.1,5.0], clamped"})
		c.LuminanceMultiplier = clampConfig(c.LuminanceMultiplier, 0.1, 5.0)
	}

	if c.ZenithMaxRadiationWm2 == 0 {
		c.ZenithMaxRadiationWm2 = 1000
	} else if c.ZenithMaxRadiationWm2 < 800 || c.ZenithMaxRadiationWm2 > 2000 {
		warnings = append(warnings, Warning{Kind: WarnCalibration, Message: "zenith_max_radiation_wm2 out of [800,2000], fallback to 1000"})
		c.ZenithMaxRadiationWm2 = 1000
	}

	if c.UnitsOut == "" {
		c.UnitsOut = units.Imperial
	}
	if c.SunsetDefault <= c.SunriseDefault {
		c.SunriseDefault, c.SunsetDefault = 6, 18
	}
	if c.SolarAvgWindowMinutes <= 0 {
		c.SolarAvgWindowMinutes = 15
	}

	return c, warnings
}

func clampConfig(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DerivedState is the internal, per-update derived quantity bundle
// (§3.3), carried on State so the forecast engine and API layer can
// surface it without recomputation.
type DerivedState struct {
	DewpointF       float64
	DewpointSpreadF float64

	SeaLevelPressureInHg float64

	CloudCoverPct        float64
	ExpectedClearSkyWm2  float64

	FogScore int
	FogClass fog.Class

	PressureSystem   pressurewind.System
	PressureTrend3h  float64
	PressureTrend24h float64
	StormProbability int

	WindClass pressurewind.WindClass
	GustFactor float64
	GustClass  pressurewind.GustClass

	IsDaytime        bool
	SolarElevationDeg float64

	ConditionRaw classify.Condition
	Condition    classify.Condition

	VisibilityMiles float64
}

// State is the caller-owned, exclusively-threaded persistent state
// (§5): a trends store, a hysteresis history and the most recent
// DerivedState, plus the Config it was built from.
type State struct {
	Config Config

	Trends     *trends.Store
	History    *hysteresis.History
	Derived    DerivedState
	HasDerived bool

	SolarAvgSamples  []solarSample
	LastTimestamp    time.Time
	HasLastTimestamp bool
}

type solarSample struct {
	Timestamp time.Time
	Radiation float64
}

// NewState builds an empty State from the given configuration (§6.1).
func NewState(cfg Config) State {
	cfg, _ = cfg.Validate()
	return State{
		Config:  cfg,
		Trends:  trends.New(),
		History: hysteresis.New(),
	}
}

// Clone returns a deep copy of State, used so a failed Observe call never
// mutates the caller's previous_state (§7 "transactional" requirement).
func (s State) Clone() State {
	out := s
	out.Trends = s.Trends.Clone()
	out.History = s.History.Clone()
	out.SolarAvgSamples = append([]solarSample{}, s.SolarAvgSamples...)
	return out
}

// WarningKind enumerates the non-fatal warning taxonomy (§6.5).
type WarningKind string

const (
	WarnCalibration    WarningKind = "CalibrationWarning"
	WarnDegradedSensor WarningKind = "DegradedSensor"
	WarnInvalidRange   WarningKind = "InvalidRange"
)

// Warning is attached data, not an error (§7): the core never logs, it
// only attaches warnings for the caller to log or display.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// Inference is Observe's successful output (§6.3). The scalar fields
// (DewpointF, SeaLevelPressureInHg, VisibilityMiles) are named for their
// internal Imperial-canonical unit, but Observe re-encodes them to
// Config.UnitsOut before returning — Units records which system the
// values actually came out in (§6.4 "units follow units_out").
type Inference struct {
	Condition            classify.Condition     `json:"condition"`
	DewpointF            float64                `json:"dewpoint"`
	CloudCoverPct        float64                `json:"cloud_cover_pct"`
	FogScore             int                    `json:"fog_score"`
	VisibilityMiles      float64                `json:"visibility"`
	SeaLevelPressureInHg float64                `json:"pressure_sea_level"`
	PressureSystem       pressurewind.System    `json:"pressure_system"`
	StormProbability     int                    `json:"storm_probability"`
	WindClass            pressurewind.WindClass `json:"wind_class"`
	GustClass            pressurewind.GustClass `json:"gust_class"`
	IsDaytime            bool                   `json:"is_daytime"`
	SolarElevationDeg    float64                `json:"solar_elevation_deg"`
	Units                units.System           `json:"units_out"`
	Warnings             []Warning             `json:"warnings"`
}

// ForecastResult is Forecast's output (§6.4): daily covers 5 days, hourly
// covers either 24 or 120 hours depending on the requested horizon. Units
// records which system DailyRecord/HourlyRecord values were re-encoded to.
type ForecastResult struct {
	Daily  []forecast.DailyRecord  `json:"daily"`
	Hourly []forecast.HourlyRecord `json:"hourly"`
	Units  units.System            `json:"units_out"`
}
