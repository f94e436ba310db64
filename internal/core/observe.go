package core

import (
	"time"

	"github.com/lox/wandiweather/internal/altitude"
	"github.com/lox/wandiweather/internal/classify"
	"github.com/lox/wandiweather/internal/cloud"
	"github.com/lox/wandiweather/internal/dewpoint"
	"github.com/lox/wandiweather/internal/forecast"
	"github.com/lox/wandiweather/internal/fog"
	"github.com/lox/wandiweather/internal/hysteresis"
	"github.com/lox/wandiweather/internal/pressurewind"
	"github.com/lox/wandiweather/internal/solar"
	"github.com/lox/wandiweather/internal/trends"
	"github.com/lox/wandiweather/internal/units"
)

var clearConditionsForFraction = map[string]bool{
	string(classify.Sunny):      true,
	string(classify.ClearNight): true,
}

// Observe runs one pass of the pipeline (§4.11): canonicalize units,
// altitude-correct pressure, compute dewpoint, solar/astronomical
// context, cloud cover, fog score, pressure/wind analysis, classify,
// hysteresis-filter, then append to the trends store and condition
// history. previous is never mutated; a failed call returns it
// unchanged (§7 "a single failed observation must not alter
// previous_state").
func Observe(snapshot Snapshot, previous State) (Inference, State, error) {
	if previous.Trends == nil || previous.History == nil {
		previous = NewState(previous.Config)
	}

	if previous.HasLastTimestamp && snapshot.Timestamp.Before(previous.LastTimestamp) {
		return Inference{}, previous, newError(ErrOutOfOrderObservation, "snapshot timestamp precedes the last observed timestamp")
	}

	if snapshot.OutdoorTemp == nil {
		return Inference{}, previous, newError(ErrInsufficientInput, "outdoor_temp is required")
	}
	tempF := snapshot.OutdoorTemp.ToImperial()

	var warnings []Warning

	var humidityPct float64
	haveHumidity := snapshot.Humidity != nil
	if haveHumidity {
		humidityPct = *snapshot.Humidity
		if humidityPct < 0 || humidityPct > 100 {
			return Inference{}, previous, newError(ErrInvalidHumidity, "humidity must be within [0,100]")
		}
	}

	var dewpointF float64
	switch {
	case snapshot.Dewpoint != nil:
		dewpointF = snapshot.Dewpoint.ToImperial()
		if clamped, wasClamped := dewpoint.ClampToTemp(dewpointF, tempF); wasClamped {
			dewpointF = clamped
			warnings = append(warnings, Warning{Kind: WarnDegradedSensor, Message: "external dewpoint exceeded temperature, clamped"})
		}
	case haveHumidity:
		computed, err := dewpoint.Compute(tempF, humidityPct)
		if err != nil {
			return Inference{}, previous, wrapError(ErrInvalidHumidity, "dewpoint computation failed", err)
		}
		dewpointF = computed
	default:
		return Inference{}, previous, newError(ErrInsufficientInput, "humidity or an external dewpoint is required")
	}
	dewpointSpreadF := tempF - dewpointF

	var rainState classify.RainState
	hasRainState := snapshot.RainState != nil
	if hasRainState {
		switch *snapshot.RainState {
		case RainWet:
			rainState = classify.RainWet
		case RainDry:
			rainState = classify.RainDry
		default:
			return Inference{}, previous, newError(ErrInvalidRange, "rain_state must be wet or dry")
		}
	}

	var rainRateInH float64
	if snapshot.RainRate != nil {
		rainRateInH = snapshot.RainRate.ToImperial()
	}

	var windSpeedMph, windGustMph, windDirDeg float64
	hasWindDir := snapshot.WindDirDeg != nil
	if snapshot.WindSpeed != nil {
		windSpeedMph = snapshot.WindSpeed.ToImperial()
	}
	if snapshot.WindGust != nil {
		windGustMph = snapshot.WindGust.ToImperial()
	}
	if hasWindDir {
		windDirDeg = *snapshot.WindDirDeg
	}

	altitudeM := snapshot.AltitudeM
	if altitudeM <= 0 {
		altitudeM = previous.Config.AltitudeM
	}
	var stationPressureInHg float64
	havePressure := snapshot.Pressure != nil
	if havePressure {
		stationPressureInHg = snapshot.Pressure.ToImperial()
	}
	seaLevelInHg := altitude.StationToSeaLevel(stationPressureInHg, altitudeM, snapshot.PressureIsSeaLevel)

	dayOfYear := forecast.DayOfYear(snapshot.Timestamp)

	var elevationDeg float64
	hasElevation := snapshot.SolarElevationDeg != nil
	if hasElevation {
		elevationDeg = *snapshot.SolarElevationDeg
	} else if snapshot.SolarRadiationWm2 != nil {
		elevationDeg = solar.EstimateElevation(*snapshot.SolarRadiationWm2)
	} else {
		warnings = append(warnings, Warning{Kind: WarnDegradedSensor, Message: "no solar sensor available, elevation unestimated"})
	}

	var radiationWm2 float64
	hasSolar := snapshot.SolarRadiationWm2 != nil
	if hasSolar {
		radiationWm2 = *snapshot.SolarRadiationWm2
	}
	var lux float64
	hasLux := snapshot.SolarLux != nil
	if hasLux {
		lux = *snapshot.SolarLux
	}
	var uvIndex float64
	hasUV := snapshot.UVIndex != nil
	if hasUV {
		uvIndex = *snapshot.UVIndex
	}
	isDaytime := solar.IsDaytime(radiationWm2, lux, uvIndex)

	expectedClearSky := solar.TheoreticalClearSkyWm2(dayOfYear, elevationDeg)

	next := previous.Clone()

	windowMinutes := previous.Config.SolarAvgWindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 15
	}
	avgRadiation := radiationWm2
	if hasSolar {
		next.SolarAvgSamples = append(next.SolarAvgSamples, solarSample{Timestamp: snapshot.Timestamp, Radiation: radiationWm2})
		cutoff := snapshot.Timestamp.Add(-time.Duration(windowMinutes) * time.Minute)
		kept := next.SolarAvgSamples[:0]
		for _, s := range next.SolarAvgSamples {
			if !s.Timestamp.Before(cutoff) {
				kept = append(kept, s)
			}
		}
		next.SolarAvgSamples = kept
		if len(next.SolarAvgSamples) >= 3 {
			var sum float64
			for _, s := range next.SolarAvgSamples {
				sum += s.Radiation
			}
			avgRadiation = sum / float64(len(next.SolarAvgSamples))
		}
	}

	trend3hSamples := previous.Trends.Since(snapshot.Timestamp, 3*time.Hour)
	trend24hSamples := previous.Trends.Since(snapshot.Timestamp, 24*time.Hour)
	trend3h := trends.Trend(trend3hSamples, snapshot.Timestamp, func(s trends.Sample) float64 { return s.PressureInHg })
	trend24h := trends.Trend(trend24hSamples, snapshot.Timestamp, func(s trends.Sample) float64 { return s.PressureInHg })
	var pressureTrend3h, pressureTrend24h float64
	if trend3h.Sufficient {
		pressureTrend3h = trend3h.SlopePerHour
	} else {
		warnings = append(warnings, Warning{Kind: WarnDegradedSensor, Message: "insufficient history for 3h pressure trend"})
	}
	if trend24h.Sufficient {
		pressureTrend24h = trend24h.SlopePerHour
	} else {
		warnings = append(warnings, Warning{Kind: WarnDegradedSensor, Message: "insufficient history for 24h pressure trend"})
	}

	pressureSystem := pressurewind.Classify(seaLevelInHg, altitude.ThresholdShiftInHg(altitudeM))

	clearFraction6h := trends.ClearFraction(previous.Trends.Since(snapshot.Timestamp, 6*time.Hour), clearConditionsForFraction)
	highPressureBoost := 0.0
	if pressureSystem == pressurewind.SystemHigh || pressureSystem == pressurewind.SystemVeryHigh {
		highPressureBoost = 1.0
	}
	risingTrendBoost := clampf(pressureTrend3h/0.1, 0, 1)
	isMorning := forecast.HourOfDay(snapshot.Timestamp) < 11

	cloudResult := cloud.Analyze(cloud.Inputs{
		DayOfYear:           dayOfYear,
		SolarRadiationWm2:   avgRadiation,
		HasSolar:            hasSolar,
		Lux:                 lux,
		HasLux:              hasLux,
		UVIndex:             uvIndex,
		HasUV:               hasUV,
		ElevationDeg:        elevationDeg,
		ZenithMaxRadiation:  previous.Config.ZenithMaxRadiationWm2,
		LuminanceMultiplier: previous.Config.LuminanceMultiplier,
		PressureTrend3h:     pressureTrend3h,
		ClearFraction6h:     clearFraction6h,
		HighPressureBoost:   highPressureBoost,
		RisingTrendBoost:    risingTrendBoost,
		IsMorning:           isMorning,
		PreviousCloudCover:  previous.Derived.CloudCoverPct,
		HasPrevious:         previous.HasDerived,
	})
	if cloudResult.CalibrationWarning {
		warnings = append(warnings, Warning{Kind: WarnCalibration, Message: "zenith_max_radiation_wm2 outside [800,2000], fell back to 1000"})
	}

	fogScoreVal, fogClass := fog.Score(fog.Inputs{
		HumidityPct:         humidityPct,
		SpreadF:             dewpointSpreadF,
		WindMph:             windSpeedMph,
		TempF:               tempF,
		IsDaytime:           isDaytime,
		SolarRadiationWm2:   avgRadiation,
		HasSolar:            hasSolar,
		ExpectedClearSkyWm2: expectedClearSky,
	})

	gustFactor := pressurewind.GustFactor(windSpeedMph, windGustMph)
	gustClass := pressurewind.ClassifyGust(gustFactor, windGustMph)
	windClass := pressurewind.ClassifyWind(windSpeedMph)
	stormProbability := pressurewind.StormProbability(pressureTrend3h, pressureTrend24h, pressureSystem, gustFactor)

	candidate := classify.Classify(classify.Inputs{
		TempF:          tempF,
		RainRateInH:    rainRateInH,
		RainState:      rainState,
		HasRainState:   hasRainState,
		PressureInHg:   seaLevelInHg,
		WindMph:        windSpeedMph,
		WindGustMph:    windGustMph,
		GustFactor:     gustFactor,
		GustClass:      gustClass,
		CloudCoverPct:  cloudResult.CloudCoverPct,
		IsDaytime:      isDaytime,
		Lux:            lux,
		HasLux:         hasLux,
		SolarRadiation: avgRadiation,
		HasSolar:       hasSolar,
		FogScore:       fogScoreVal,
		FogClass:       fogClass,
		PressureSystem: pressureSystem,
		HumidityPct:    humidityPct,
	})

	cloudDelta := cloudResult.CloudCoverPct - previous.Derived.CloudCoverPct
	if !previous.HasDerived {
		cloudDelta = 0
	}
	condition := next.History.Filter(snapshot.Timestamp, candidate, cloudDelta)

	next.Trends.Insert(trends.Sample{
		Timestamp:      snapshot.Timestamp,
		TemperatureF:   tempF,
		HumidityPct:    humidityPct,
		PressureInHg:   seaLevelInHg,
		WindSpeedMph:   windSpeedMph,
		WindDirDeg:     windDirDeg,
		HasWindDir:     hasWindDir,
		SolarRadiation: avgRadiation,
		Condition:      string(condition),
	})
	next.History.Append(hysteresis.Entry{Timestamp: snapshot.Timestamp, Condition: condition})
	next.LastTimestamp = snapshot.Timestamp
	next.HasLastTimestamp = true

	visibility := forecast.VisibilityMiles(fogScoreVal, cloudResult.CloudCoverPct, rainRateInH)

	derived := DerivedState{
		DewpointF:            dewpointF,
		DewpointSpreadF:      dewpointSpreadF,
		SeaLevelPressureInHg: seaLevelInHg,
		CloudCoverPct:        cloudResult.CloudCoverPct,
		ExpectedClearSkyWm2:  expectedClearSky,
		FogScore:             fogScoreVal,
		FogClass:             fogClass,
		PressureSystem:       pressureSystem,
		PressureTrend3h:      pressureTrend3h,
		PressureTrend24h:     pressureTrend24h,
		StormProbability:     stormProbability,
		WindClass:            windClass,
		GustFactor:           gustFactor,
		GustClass:            gustClass,
		IsDaytime:            isDaytime,
		SolarElevationDeg:    elevationDeg,
		ConditionRaw:         candidate,
		Condition:            condition,
		VisibilityMiles:      visibility,
	}
	next.Derived = derived
	next.HasDerived = true

	unitsOut := previous.Config.UnitsOut
	if unitsOut == "" {
		unitsOut = units.Imperial
	}

	return Inference{
		Condition:            condition,
		DewpointF:            units.TemperatureOut(dewpointF, unitsOut),
		CloudCoverPct:        cloudResult.CloudCoverPct,
		FogScore:             fogScoreVal,
		VisibilityMiles:      units.VisibilityOut(visibility, unitsOut),
		SeaLevelPressureInHg: units.PressureOut(seaLevelInHg, unitsOut),
		PressureSystem:       pressureSystem,
		StormProbability:     stormProbability,
		WindClass:            windClass,
		GustClass:            gustClass,
		IsDaytime:            isDaytime,
		SolarElevationDeg:    elevationDeg,
		Units:                unitsOut,
		Warnings:             warnings,
	}, next, nil
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
