package forecast

import (
	"testing"
	"time"

	"github.com/lox/wandiweather/internal/classify"
	"github.com/lox/wandiweather/internal/pressurewind"
	"github.com/lox/wandiweather/internal/units"
)

func baseHourlyInput() Input {
	return Input{
		Now:              time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		TemperatureF:     72,
		HumidityPct:      55,
		DewpointSpreadF:  12,
		WindSpeedMph:     6,
		WindGustMph:      10,
		PressureTrend3h:  0.01,
		PressureTrend24h: 0.02,
		PressureSystem:   pressurewind.SystemHigh,
		StormProbability: 5,
		Condition:        classify.Sunny,
		DayOfYear:        152,
		Daylight:         DefaultDaylightWindow,
	}
}

func TestHourlyReturnsRequestedHourCount(t *testing.T) {
	records := Hourly(baseHourlyInput(), 24)
	if len(records) != 24 {
		t.Fatalf("expected 24 hourly records, got %d", len(records))
	}
	records = Hourly(baseHourlyInput(), 120)
	if len(records) != 120 {
		t.Fatalf("expected 120 hourly records, got %d", len(records))
	}
}

func TestHourlyTimesAreSequential(t *testing.T) {
	in := baseHourlyInput()
	records := Hourly(in, 24)
	for i, r := range records {
		want := in.Now.Add(time.Duration(i+1) * time.Hour)
		if !r.Time.Equal(want) {
			t.Errorf("hour %d time = %v, want %v", i, r.Time, want)
		}
	}
}

func TestHourlyNighttimeRewritesSunnyToClearNight(t *testing.T) {
	in := baseHourlyInput()
	in.Now = time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC) // 20:00, first hour lands at 21:00 (night)
	records := Hourly(in, 24)
	first := records[0]
	if first.Condition != classify.ClearNight {
		t.Errorf("nighttime hour should rewrite sunny to clear_night, got %v", first.Condition)
	}
}

func TestHourlyHumidityBounded(t *testing.T) {
	records := Hourly(baseHourlyInput(), 24)
	for i, r := range records {
		if r.HumidityPct < 0 || r.HumidityPct > 100 {
			t.Errorf("hour %d: humidity out of bound %v", i, r.HumidityPct)
		}
	}
}

func TestHourlyPrecipitationProbabilityBounded(t *testing.T) {
	records := Hourly(baseHourlyInput(), 24)
	for i, r := range records {
		if r.PrecipitationProbabilityPct < 0 || r.PrecipitationProbabilityPct > 100 {
			t.Errorf("hour %d: precip probability out of bound %v", i, r.PrecipitationProbabilityPct)
		}
	}
}

func TestHourlyMetricUnitsOutConvertsFields(t *testing.T) {
	imperial := Hourly(baseHourlyInput(), 24)

	metricIn := baseHourlyInput()
	metricIn.UnitsOut = units.Metric
	metric := Hourly(metricIn, 24)

	for i := range imperial {
		wantTemp := units.TemperatureOut(imperial[i].TemperatureF, units.Metric)
		if !within(metric[i].TemperatureF, wantTemp, 1e-9) {
			t.Errorf("hour %d: metric TemperatureF = %v, want %v", i, metric[i].TemperatureF, wantTemp)
		}
		wantWind := units.SpeedOut(imperial[i].WindSpeedMph, units.Metric)
		if !within(metric[i].WindSpeedMph, wantWind, 1e-9) {
			t.Errorf("hour %d: metric WindSpeedMph = %v, want %v", i, metric[i].WindSpeedMph, wantWind)
		}
	}
}

func TestHourlyWindNeverNegative(t *testing.T) {
	records := Hourly(baseHourlyInput(), 24)
	for i, r := range records {
		if r.WindSpeedMph < 0 {
			t.Errorf("hour %d: wind speed negative %v", i, r.WindSpeedMph)
		}
	}
}
