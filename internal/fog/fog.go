// Package fog implements the weighted five-factor fog scorer and its
// classification bands (§4.5).
package fog

import "github.com/lox/wandiweather/internal/constants"

// Class is the fog classification derived from a score.
type Class string

const (
	ClassNone     Class = "none"
	ClassLight    Class = "light"
	ClassModerate Class = "moderate"
	ClassDense    Class = "dense"
)

// Inputs bundles the sensor data the scorer needs.
type Inputs struct {
	HumidityPct         float64
	SpreadF             float64
	WindMph             float64
	TempF               float64
	IsDaytime           bool
	SolarRadiationWm2   float64
	HasSolar            bool
	ExpectedClearSkyWm2 float64
}

// Score computes the 0-100 fog score and its classification.
func Score(in Inputs) (score int, class Class) {
	if in.HumidityPct < constants.FogHumidityMarginal {
		return 0, ClassNone
	}

	total := humidityFactor(in.HumidityPct) +
		spreadFactor(in.SpreadF) +
		windFactor(in.WindMph) +
		solarFactor(in) +
		evapBonus(in)

	if in.IsDaytime && in.HasSolar && in.ExpectedClearSkyWm2 > 0 &&
		in.SolarRadiationWm2 > 0.5*in.ExpectedClearSkyWm2 {
		total = 0
	}

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return total, classify(total, in.HumidityPct)
}

func humidityFactor(h float64) int {
	switch {
	case h >= constants.FogHumidityDense:
		return constants.FogScoreDense
	case h >= constants.FogHumidityProbable:
		return constants.FogScoreProbable
	case h >= constants.FogHumidityPossible:
		return constants.FogScorePossible
	case h >= constants.FogHumidityMarginal:
		return constants.FogScoreMarginal
	default:
		return 0
	}
}

func spreadFactor(spread float64) int {
	switch {
	case spread <= constants.FogSpreadSaturated:
		return constants.FogScoreSpreadSaturated
	case spread <= constants.FogSpreadVeryClose:
		return constants.FogScoreSpreadVeryClose
	case spread <= constants.FogSpreadClose:
		return constants.FogScoreSpreadClose
	case spread <= constants.FogSpreadMarginal:
		return constants.FogScoreSpreadMarginal
	default:
		return 0
	}
}

func windFactor(wind float64) int {
	switch {
	case wind <= constants.FogWindCalm:
		return constants.FogScoreWindCalm
	case wind <= constants.FogWindLight:
		return constants.FogScoreWindLight
	case wind <= constants.FogWindModerate:
		return constants.FogScoreWindModerate
	default:
		return constants.FogPenaltyWindStrong
	}
}

func solarFactor(in Inputs) int {
	if in.IsDaytime {
		switch {
		case in.SolarRadiationWm2 < constants.FogSolarVeryLow:
			return constants.FogScoreSolarDense
		case in.SolarRadiationWm2 < constants.FogSolarLow:
			return constants.FogScoreSolarModerate
		case in.SolarRadiationWm2 < constants.FogSolarReduced:
			return constants.FogScoreSolarLight
		default:
			return 0
		}
	}
	switch {
	case in.SolarRadiationWm2 <= constants.FogSolarMinimalNight:
		return constants.FogScoreSolarNight
	case in.SolarRadiationWm2 <= constants.FogSolarTwilight:
		return constants.FogScoreSolarTwilight
	default:
		return constants.FogPenaltySolarNight
	}
}

func evapBonus(in Inputs) int {
	if in.TempF > constants.FogTempWarmThreshold && in.HumidityPct >= constants.FogHumidityProbable && in.SpreadF <= constants.FogSpreadClose {
		return constants.FogEvapBonus
	}
	return 0
}

func classify(score int, humidity float64) Class {
	switch {
	case score >= constants.FogThresholdDense:
		return ClassDense
	case score >= constants.FogThresholdModerate:
		return ClassModerate
	case score >= constants.FogThresholdLight && humidity >= constants.FogHumidityProbable:
		return ClassLight
	default:
		return ClassNone
	}
}
