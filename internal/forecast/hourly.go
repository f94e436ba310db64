package forecast

import (
	"math"
	"time"

	"github.com/lox/wandiweather/internal/classify"
	"github.com/lox/wandiweather/internal/units"
)

// HourlyRecord is one hour of the hourly forecast (24 or 120 hours, §3.5).
type HourlyRecord struct {
	Time                        time.Time          `json:"time"`
	Condition                   classify.Condition `json:"condition"`
	TemperatureF                float64            `json:"temperature"`
	PrecipitationMm             float64            `json:"precipitation"`
	PrecipitationProbabilityPct float64            `json:"precipitation_probability_pct"`
	WindSpeedMph                float64            `json:"wind_speed"`
	HumidityPct                 float64            `json:"humidity_pct"`
}

// Hourly builds an hourly forecast from the current state snapshot
// (§4.10.4), covering `hours` hours ahead (the caller's requested
// horizon, 24 or 120).
func Hourly(in Input, hours int) []HourlyRecord {
	stability := AtmosphericStability(in.PressureTrend24h, in.WindSpeedMph, in.HumidityPct)
	trajectory := ComputeTrajectory(in.PressureTrend3h, in.PressureTrend24h, stability)
	condensation := CondensationPotential(in.HumidityPct, in.DewpointSpreadF)
	transport := clamp(in.WindSpeedMph/30.0, 0, 1)
	equivalentSwing := in.PressureTrend24h * 24

	cadence := 6.0
	if math.Abs(in.PressureTrend3h*3) > 1 {
		cadence = 3.0
	} else if in.StormProbability > 30 {
		cadence = 4.0
	}

	daylight := in.Daylight
	if daylight.SunsetHour <= daylight.SunriseHour {
		daylight = DefaultDaylightWindow
	}

	position := PositionOf(in.Condition)
	if position < 0 {
		position = PositionOf(classify.Sunny)
	}

	startHour := HourOfDay(in.Now)
	records := make([]HourlyRecord, 0, hours)

	unitsOut := in.UnitsOut
	if unitsOut == "" {
		unitsOut = units.Imperial
	}

	for h := 0; h < hours; h++ {
		t := in.Now.Add(time.Duration(h+1) * time.Hour)
		localHour := math.Mod(startHour+float64(h+1), 24)
		isDaytime := daylight.IsDaytimeHour(localHour)

		if (h+1)%int(cadence) == 0 {
			position = AdvanceLadder(position, trajectory.Score, trajectory.StepPerHour, cadence)
		}
		cond := ConditionAt(position)
		cond = remapDiurnal(cond, isDaytime, localHour, trajectory.Score, equivalentSwing)
		cond = nightRewrite(cond, isDaytime)

		amplitude := baseDiurnalSwingF / 2 * clamp(stability, 0.2, 1)
		phase := 2 * math.Pi * (localHour - 6) / 24
		temp := in.TemperatureF + amplitude*math.Sin(phase)*(0.5+0.5*clamp(trajectory.Confidence, 0, 1))

		precipMm := dailyPrecipitation(cond, in.StormProbability, transport, condensation, stability, equivalentSwing, in.HumidityTrendPctPerHour) / 24.0
		precipProb := clamp(
			math.Max(0, -equivalentSwing)*40+
				math.Max(0, in.HumidityPct-50)*0.6+
				float64(in.StormProbability)*0.5,
			0, 100)

		windSpeed := in.WindSpeedMph * windFactor(string(cond)) * pressureSystemFactor(string(in.PressureSystem))

		target := conditionTarget(string(cond))
		humidity := clamp(target+(in.HumidityPct-target)*math.Pow(0.7, float64(h+1)/24.0), 0, 100)

		records = append(records, HourlyRecord{
			Time:                        t,
			Condition:                   cond,
			TemperatureF:                units.TemperatureOut(temp, unitsOut),
			PrecipitationMm:             precipMmOut(precipMm, unitsOut),
			PrecipitationProbabilityPct: precipProb,
			WindSpeedMph:                units.SpeedOut(windSpeed, unitsOut),
			HumidityPct:                 humidity,
		})
	}

	return records
}

// remapDiurnal applies the non-ladder-moving diurnal condition remapping
// (§4.10.4): morning clearing, afternoon cloud-up, night clearing.
func remapDiurnal(cond classify.Condition, isDaytime bool, localHour, trajectoryScore, equivalentSwing float64) classify.Condition {
	isMorning := isDaytime && localHour < 11
	isAfternoon := isDaytime && localHour >= 11

	if isMorning && cond == classify.Cloudy && trajectoryScore > 0 {
		return classify.PartlyCloudy
	}
	if isAfternoon && cond == classify.Sunny && trajectoryScore < 0 {
		return classify.PartlyCloudy
	}
	if !isDaytime && cond == classify.Cloudy && equivalentSwing > 0.3 {
		return classify.PartlyCloudy
	}
	return cond
}

// nightRewrite rewrites the daytime-only ladder conditions to their
// nighttime variants outside daylight hours (§4.10.4).
func nightRewrite(cond classify.Condition, isDaytime bool) classify.Condition {
	if isDaytime {
		return cond
	}
	switch cond {
	case classify.Sunny:
		return classify.ClearNight
	case classify.PartlyCloudy:
		return classify.PartlyCloudyNight
	default:
		return cond
	}
}
