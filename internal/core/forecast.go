package core

import (
	"time"

	"github.com/lox/wandiweather/internal/forecast"
	"github.com/lox/wandiweather/internal/trends"
	"github.com/lox/wandiweather/internal/units"
)

// Forecast builds the daily and hourly projections from state's derived
// quantities (§4.10, §6.1 "forecast(state, horizon_hours: 24|120)").
// It never mutates state and never observes a new reading.
func Forecast(state State, horizonHours int) (ForecastResult, error) {
	if !state.HasDerived {
		return ForecastResult{}, newError(ErrInsufficientInput, "state has no prior observation to forecast from")
	}
	if horizonHours != 24 && horizonHours != 120 {
		return ForecastResult{}, newError(ErrInvalidRange, "horizon_hours must be 24 or 120")
	}

	now := state.LastTimestamp
	daylight := forecast.DaylightWindow{SunriseHour: state.Config.SunriseDefault, SunsetHour: state.Config.SunsetDefault}

	unitsOut := state.Config.UnitsOut
	if unitsOut == "" {
		unitsOut = units.Imperial
	}

	var humidityTrend float64
	if state.Trends != nil {
		samples := state.Trends.Since(now, 3*time.Hour)
		result := trends.Trend(samples, now, func(s trends.Sample) float64 { return s.HumidityPct })
		if result.Sufficient {
			humidityTrend = result.SlopePerHour
		}
	}

	in := forecast.Input{
		Now:                     now,
		TemperatureF:            mostRecentTemp(state, state.Derived),
		HumidityPct:             mostRecentHumidity(state),
		HumidityTrendPctPerHour: humidityTrend,
		DewpointSpreadF:         state.Derived.DewpointSpreadF,
		WindSpeedMph:            mostRecentWind(state),
		WindGustMph:             0,
		PressureTrend3h:         state.Derived.PressureTrend3h,
		PressureTrend24h:        state.Derived.PressureTrend24h,
		PressureSystem:          state.Derived.PressureSystem,
		StormProbability:        state.Derived.StormProbability,
		CloudCoverPct:           state.Derived.CloudCoverPct,
		Condition:               state.Derived.Condition,
		DayOfYear:               forecast.DayOfYear(now),
		Daylight:                daylight,
		RecentDailyHighsF:       recentDailyHighs(state),
		History:                 state.Trends,
		UnitsOut:                unitsOut,
	}

	return ForecastResult{
		Daily:  forecast.Daily(in),
		Hourly: forecast.Hourly(in, horizonHours),
		Units:  unitsOut,
	}, nil
}

func mostRecentTemp(state State, derived DerivedState) float64 {
	if latest, ok := state.Trends.Latest(); ok {
		return latest.TemperatureF
	}
	return derived.DewpointF + derived.DewpointSpreadF
}

func mostRecentHumidity(state State) float64 {
	if latest, ok := state.Trends.Latest(); ok {
		return latest.HumidityPct
	}
	return 0
}

func mostRecentWind(state State) float64 {
	if latest, ok := state.Trends.Latest(); ok {
		return latest.WindSpeedMph
	}
	return 0
}

// recentDailyHighs buckets trend-store samples by calendar day and
// returns each day's observed maximum temperature, most recent last, for
// ClassifyRegime's heatwave check (§4.10.2).
func recentDailyHighs(state State) []float64 {
	if state.Trends == nil {
		return nil
	}
	samples := state.Trends.Since(state.LastTimestamp, 5*24*time.Hour)
	if len(samples) == 0 {
		return nil
	}
	highByDay := map[string]float64{}
	var order []string
	for _, s := range samples {
		key := s.Timestamp.Format("2006-01-02")
		if v, ok := highByDay[key]; !ok || s.TemperatureF > v {
			if !ok {
				order = append(order, key)
			}
			highByDay[key] = s.TemperatureF
		}
	}
	highs := make([]float64, 0, len(order))
	for _, key := range order {
		highs = append(highs, highByDay[key])
	}
	return highs
}
