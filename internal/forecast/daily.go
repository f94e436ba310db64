package forecast

import (
	"math"
	"time"

	"github.com/lox/wandiweather/internal/classify"
	"github.com/lox/wandiweather/internal/trends"
	"github.com/lox/wandiweather/internal/units"
)

// baseDiurnalSwingF is the fair-weather day/night temperature range the
// daily high/low spread is built from before stability/gradient scaling
// (§4.10.3).
const baseDiurnalSwingF = 18.0

// DailyRecord is one day of the 5-day forecast (§3.5).
type DailyRecord struct {
	Date                        time.Time          `json:"date"`
	Condition                   classify.Condition `json:"condition"`
	TempHighF                   float64            `json:"temp_high"`
	TempLowF                    float64            `json:"temp_low"`
	PrecipitationMm             float64            `json:"precipitation"`
	PrecipitationProbabilityPct float64            `json:"precipitation_probability_pct"`
	WindSpeedMph                float64            `json:"wind_speed"`
	WindBearingDeg              float64            `json:"wind_bearing_deg,omitempty"`
	HasWindBearing              bool               `json:"-"`
	HumidityPct                 float64            `json:"humidity_pct"`
}

// precipMmOut re-encodes a canonical-millimetre precipitation amount for
// the caller. Daily/hourly precipitation is computed natively in
// millimetres (CanonicalPrecipMm), the one quantity in this package that
// isn't Imperial-canonical, so output re-encoding runs the opposite
// direction from units.PrecipOut.
func precipMmOut(mm float64, sys units.System) float64 {
	if sys == units.Imperial {
		return units.MmPerHourToInPerHour(mm)
	}
	return mm
}

// Daily builds the 5-day (d=0..4) forecast from the current state
// snapshot (§4.10.3).
func Daily(in Input) []DailyRecord {
	stability := AtmosphericStability(in.PressureTrend24h, in.WindSpeedMph, in.HumidityPct)
	trajectory := ComputeTrajectory(in.PressureTrend3h, in.PressureTrend24h, stability)
	condensation := CondensationPotential(in.HumidityPct, in.DewpointSpreadF)
	gradient := GradientProxy(in.PressureTrend3h)
	transport := clamp(in.WindSpeedMph/30.0, 0, 1)
	equivalentSwing := in.PressureTrend24h * 24

	corrector := NewBiasCorrector(in.History)
	windDamping := corrector.GustDamping()

	position := PositionOf(in.Condition)
	if position < 0 {
		position = PositionOf(classify.Sunny)
	}

	records := make([]DailyRecord, 0, 5)

	var windDirStability float64
	if in.History != nil {
		if latest, ok := in.History.Latest(); ok {
			samples := in.History.Since(latest.Timestamp, trends.Retention)
			if stats, ok := trends.WindDirectionStats(samples); ok {
				windDirStability = stats.Stability
			}
		}
	}

	daylight := in.Daylight
	if daylight.SunsetHour <= daylight.SunriseHour {
		daylight = DefaultDaylightWindow
	}
	regime := ClassifyRegime(in.TemperatureF, in.HumidityPct, in.WindSpeedMph, daylight.IsDaytimeHour(HourOfDay(in.Now)), in.PressureSystem, in.RecentDailyHighsF)

	unitsOut := in.UnitsOut
	if unitsOut == "" {
		unitsOut = units.Imperial
	}

	for d := 0; d < 5; d++ {
		seasonalAdj := SeasonalAdjustmentF(in.DayOfYear + d)
		pressureInfluence := clamp(trajectory.Score/100*5, -5, 5)
		noise := corrector.DailyNoise(d)
		dampFactor := clamp(stability*(1-float64(d)/8.0), 0, 1)

		tempBase := in.TemperatureF + seasonalAdj + (pressureInfluence+noise)*dampFactor
		if regime.Heatwave {
			tempBase += clamp(3.0*dampFactor, 0, 3.0)
		}

		swing := baseDiurnalSwingF * clamp(stability, 0.2, 1) * (1 + clamp(gradient/30.0, 0, 1))
		high := tempBase + swing/2
		low := tempBase - swing/2
		if regime.InversionNight {
			low -= 4.0 * dampFactor
		}

		position = AdvanceLadder(position, trajectory.Score, trajectory.StepPerHour, 24)
		cond := ConditionAt(position)
		if in.StormProbability >= 70 && d == 0 {
			cond = classify.LightningRainy
		}

		precipMm := dailyPrecipitation(cond, in.StormProbability, transport, condensation, stability, equivalentSwing, in.HumidityTrendPctPerHour)
		precipProb := clamp(
			math.Max(0, -equivalentSwing)*40+
				math.Max(0, in.HumidityPct-50)*0.6+
				float64(in.StormProbability)*0.5,
			0, 100)
		if regime.ClearCalm {
			precipMm *= 0.5
			precipProb *= 0.5
		}

		windBase := in.WindSpeedMph*windFactor(string(cond))*pressureSystemFactor(string(in.PressureSystem)) + gradient
		windSpeed := windBase * clamp(0.7+0.3*windDamping*(0.5+0.5*windDirStability), 0.3, 1.3)

		target := conditionTarget(string(cond))
		duration := 24.0 * float64(d+1)
		humidity := target + (in.HumidityPct-target)*math.Pow(0.7, duration/24.0)
		humidity = clamp(humidity, 0, 100)

		records = append(records, DailyRecord{
			Date:                        in.Now.AddDate(0, 0, d+1),
			Condition:                   cond,
			TempHighF:                   units.TemperatureOut(high, unitsOut),
			TempLowF:                    units.TemperatureOut(low, unitsOut),
			PrecipitationMm:             precipMmOut(precipMm, unitsOut),
			PrecipitationProbabilityPct: precipProb,
			WindSpeedMph:                units.SpeedOut(windSpeed, unitsOut),
			HumidityPct:                 humidity,
		})
	}

	return records
}

func dailyPrecipitation(cond classify.Condition, stormProbability int, transport, condensation, stability, equivalentSwing, humidityTrendPctPerHour float64) float64 {
	canonical := CanonicalPrecipMm(string(cond))
	if canonical <= 0 {
		return 0
	}
	stormEnhancement := 1 + float64(stormProbability)/100.0
	moistureFactor := transport * condensation
	stabilityFactor := 1 + (1-stability)*0.5
	humidityTrendFactor := 1.0
	if humidityTrendPctPerHour > 0 {
		humidityTrendFactor = clamp(1+humidityTrendPctPerHour*0.05, 1, 1.5)
	}
	pressureFallFactor := 1.0
	if equivalentSwing < 0 {
		pressureFallFactor = 1 + clamp(-equivalentSwing, 0, 1)*0.5
	}
	return canonical * stormEnhancement * moistureFactor * stabilityFactor * humidityTrendFactor * pressureFallFactor
}
