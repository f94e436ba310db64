package forecast

import (
	"testing"
	"time"

	"github.com/lox/wandiweather/internal/classify"
	"github.com/lox/wandiweather/internal/pressurewind"
	"github.com/lox/wandiweather/internal/units"
)

func baseDailyInput() Input {
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

func TestDailyReturnsFiveDays(t *testing.T) {
	records := Daily(baseDailyInput())
	if len(records) != 5 {
		t.Fatalf("expected 5 daily records, got %d", len(records))
	}
}

func TestDailyHighAboveLow(t *testing.T) {
	records := Daily(baseDailyInput())
	for i, r := range records {
		if r.TempHighF < r.TempLowF {
			t.Errorf("day %d: high %v below low %v", i, r.TempHighF, r.TempLowF)
		}
	}
}

func TestDailySevereStormForcesLightningRainyOnDayZero(t *testing.T) {
	in := baseDailyInput()
	in.StormProbability = 80
	records := Daily(in)
	if records[0].Condition != classify.LightningRainy {
		t.Errorf("day 0 with storm_probability>=70 should force lightning_rainy, got %v", records[0].Condition)
	}
}

func TestDailyPrecipitationOnlyForWetConditions(t *testing.T) {
	records := Daily(baseDailyInput())
	for i, r := range records {
		canonical := CanonicalPrecipMm(string(r.Condition))
		if canonical == 0 && r.PrecipitationMm != 0 {
			t.Errorf("day %d: condition %v has no canonical precip but got %v mm", i, r.Condition, r.PrecipitationMm)
		}
	}
}

func TestDailyHumidityBounded(t *testing.T) {
	records := Daily(baseDailyInput())
	for i, r := range records {
		if r.HumidityPct < 0 || r.HumidityPct > 100 {
			t.Errorf("day %d: humidity out of bound %v", i, r.HumidityPct)
		}
	}
}

func TestDailyPrecipitationProbabilityBounded(t *testing.T) {
	records := Daily(baseDailyInput())
	for i, r := range records {
		if r.PrecipitationProbabilityPct < 0 || r.PrecipitationProbabilityPct > 100 {
			t.Errorf("day %d: precip probability out of bound %v", i, r.PrecipitationProbabilityPct)
		}
	}
}

func TestDailyMetricUnitsOutConvertsFields(t *testing.T) {
	imperial := Daily(baseDailyInput())

	metricIn := baseDailyInput()
	metricIn.UnitsOut = units.Metric
	metric := Daily(metricIn)

	for i := range imperial {
		wantHigh := units.TemperatureOut(imperial[i].TempHighF, units.Metric)
		if !within(metric[i].TempHighF, wantHigh, 1e-9) {
			t.Errorf("day %d: metric TempHighF = %v, want %v", i, metric[i].TempHighF, wantHigh)
		}
		wantWind := units.SpeedOut(imperial[i].WindSpeedMph, units.Metric)
		if !within(metric[i].WindSpeedMph, wantWind, 1e-9) {
			t.Errorf("day %d: metric WindSpeedMph = %v, want %v", i, metric[i].WindSpeedMph, wantWind)
		}
		if metric[i].TempHighF < metric[i].TempLowF {
			t.Errorf("day %d: metric high %v below low %v", i, metric[i].TempHighF, metric[i].TempLowF)
		}
	}
}

func TestDailyLadderNeverRegressesUnderWorseningTrend(t *testing.T) {
	// A steady deteriorating trend must never move the ladder position back
	// toward the clear end from one day to the next. With these inputs the
	// trend is in the rapid band and the position saturates on day 0.
	in := baseDailyInput()
	in.PressureTrend3h = -0.05
	in.PressureTrend24h = -0.2
	in.Condition = classify.Sunny

	records := Daily(in)
	positions := make([]float64, len(records))
	for i, r := range records {
		positions[i] = PositionOf(r.Condition)
		if positions[i] < 0 {
			// condition fell off the ladder (e.g. forced lightning_rainy);
			// treat as saturated for the monotonicity check below.
			positions[i] = LadderSpan()
		}
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] < positions[i-1] {
			t.Errorf("day %d: ladder position regressed from %v to %v under a steadily worsening trend", i, positions[i-1], positions[i])
		}
	}
}

func TestDailyDatesIncrementForward(t *testing.T) {
	in := baseDailyInput()
	records := Daily(in)
	for i, r := range records {
		want := in.Now.AddDate(0, 0, i+1)
		if !r.Date.Equal(want) {
			t.Errorf("day %d date = %v, want %v", i, r.Date, want)
		}
	}
}
