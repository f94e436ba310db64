// Package constants holds the frozen meteorological threshold tables
// consulted throughout the analysis pipeline. It is ported from the
// reference implementation's meteorological_constants.py, kept as plain Go
// constants grouped by concern rather than as a class hierarchy.
package constants

// Fog scoring thresholds and weights (§4.5).
const (
	FogHumidityDense    = 98.0
	FogHumidityProbable = 95.0
	FogHumidityPossible = 92.0
	FogHumidityMarginal = 88.0

	FogScoreDense    = 40
	FogScoreProbable = 30
	FogScorePossible = 20
	FogScoreMarginal = 10

	FogSpreadSaturated = 0.5
	FogSpreadVeryClose = 1.0
	FogSpreadClose     = 2.0
	FogSpreadMarginal  = 3.0

	FogScoreSpreadSaturated = 30
	FogScoreSpreadVeryClose = 25
	FogScoreSpreadClose     = 15
	FogScoreSpreadMarginal  = 5

	FogWindCalm     = 2.0
	FogWindLight    = 5.0
	FogWindModerate = 8.0

	FogScoreWindCalm     = 15
	FogScoreWindLight    = 10
	FogScoreWindModerate = 5
	FogPenaltyWindStrong = -10

	FogSolarVeryLow          = 50.0
	FogSolarLow              = 150.0
	FogSolarReduced          = 300.0
	FogSolarMinimalNight     = 2.0
	FogSolarTwilight         = 10.0
	FogSolarModerateTwilight = 50.0

	FogScoreSolarDense     = 15
	FogScoreSolarModerate  = 10
	FogScoreSolarLight     = 5
	FogScoreSolarNight     = 10
	FogScoreSolarTwilight  = 5
	FogPenaltySolarNight   = -5
	FogPenaltySolarStrong  = -15

	FogTempWarmThreshold = 40.0
	FogEvapBonus         = 5

	FogThresholdDense    = 70
	FogThresholdModerate = 55
	FogThresholdLight    = 45
)

// Wind classification thresholds, mph (§4.7).
const (
	WindCalm          = 1.0
	WindLightBreeze   = 8.0
	WindModerateBreeze = 13.0
	WindFreshBreeze   = 19.0
	WindNearGale      = 32.0
	WindStrongGale    = 47.0
	WindViolentStorm  = 64.0

	GustFactorModerate = 1.5
	GustFactorStrong   = 2.0
	GustFactorSevere   = 3.0

	GustModerate = 10.0
	GustStrong   = 15.0
	GustSevere   = 20.0
	GustExtreme  = 40.0
)

// Pressure thresholds, inHg at sea level, and trend bands (§4.7).
const (
	PressureExtremelyLow = 29.20
	PressureVeryLow      = 29.50
	PressureLow          = 29.80
	PressureNormalLow    = 29.90
	PressureNormalHigh   = 30.20
	PressureHigh         = 30.40
	PressureVeryHigh     = 30.70

	Trend3hRapidFall     = -0.5
	Trend3hModerateFall  = -0.2
	Trend3hModerateRise  = 0.2
	Trend3hRapidRise     = 0.5

	Trend24hRapidFall    = -1.0
	Trend24hModerateFall = -0.3
	Trend24hModerateRise = 0.1
	Trend24hRapidRise    = 0.5
)

// Precipitation intensity thresholds, in/h (§4.8).
const (
	PrecipSignificant = 0.01
	PrecipActive      = 0.05 // single active-precipitation threshold per spec resolution, see SPEC_FULL.md
	PrecipLight       = 0.1
	PrecipModerate    = 0.25
	PrecipHeavy       = 0.5
	PrecipVeryHeavy   = 1.0

	StormMinRate      = 0.05
	StormModerateRate = 0.1
	StormHeavyRate    = 0.25
)

// Temperature thresholds, °F (§4.8).
const (
	TempFreezing          = 32.0
	TempWarmFogThreshold  = 40.0
	SpreadSaturated       = 2.0
	SpreadHumid           = 5.0
	SpreadModerate        = 10.0
	SpreadDry             = 15.0
	HumidityHigh          = 90.0
	HumidityModerateHigh  = 70.0
	HumidityModerate      = 50.0
)

// Cloud-cover percentage bands (§4.4, §4.8).
const (
	CloudClear      = 12.5
	CloudFew        = 25.0
	CloudScattered  = 50.0
	CloudBroken     = 87.5
	CloudOvercast   = 100.0

	CloudThresholdSunny        = 30.0
	CloudThresholdPartlyCloudy = 60.0
)

// Scalar unit-conversion constants retained for parity with the reference
// implementation's module-level table; internal/units is the canonical
// conversion surface.
const (
	MphToKmh      = 1.60934
	InchesToMm    = 25.4
	HPaToInHg     = 0.02953
	InHgToHPa     = 33.8639
)

// Default values substituted for missing sensors (§7, "recoverable" path).
const (
	DefaultTemperatureF       = 70.0
	DefaultHumidity           = 50.0
	DefaultPressureInHg       = 29.92
	DefaultWindSpeed          = 0.0
	DefaultSolarRadiation     = 0.0
	DefaultZenithMaxRadiation = 1000.0
)

// Solar-elevation fallback bands used when no elevation sensor is present
// (§4.3).
const (
	SolarEstRadiationHigh   = 800.0
	SolarEstElevationHigh   = 60.0
	SolarEstRadiationMedium = 500.0
	SolarEstElevationMedium = 45.0
	SolarEstRadiationLow    = 200.0
	SolarEstElevationLow    = 25.0
	SolarEstElevationFloor  = 15.0
)

// Daytime detection thresholds (§4.3).
const (
	DaytimeSolarThreshold = 5.0
	DaytimeLuxThreshold   = 50.0
	DaytimeUVThreshold    = 0.1
)

// Storm probability classification (§4.7).
const (
	StormProbabilitySevere   = 70
	StormProbabilityElevated = 40
)
