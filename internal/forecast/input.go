package forecast

import (
	"time"

	"github.com/lox/wandiweather/internal/classify"
	"github.com/lox/wandiweather/internal/pressurewind"
	"github.com/lox/wandiweather/internal/trends"
	"github.com/lox/wandiweather/internal/units"
)

// Input is the snapshot of derived state the forecast engine consumes to
// build its daily and hourly projections (§4.10.1, §4.11 "forecast(state)
// consumes only previous_state"). The pipeline orchestrator assembles
// this from its own persistent state after each observe() call.
type Input struct {
	Now time.Time

	TemperatureF        float64
	HumidityPct         float64
	HumidityTrendPctPerHour float64
	DewpointSpreadF     float64

	WindSpeedMph float64
	WindGustMph  float64

	PressureTrend3h  float64 // inHg/hour
	PressureTrend24h float64 // inHg/hour
	PressureSystem   pressurewind.System
	StormProbability int

	CloudCoverPct float64
	Condition     classify.Condition

	DayOfYear int
	Daylight  DaylightWindow

	RecentDailyHighsF []float64

	History *trends.Store

	// UnitsOut is the system DailyRecord/HourlyRecord values are re-encoded
	// to before being returned (§6.4). Defaults to Imperial if empty.
	UnitsOut units.System
}
