package forecast

import (
	"math"

	"github.com/lox/wandiweather/internal/constants"
)

// CondensationPotential estimates how close the air is to saturation from
// relative humidity and dewpoint spread, feeding the daily forecast's
// precipitation moisture factor (§4.10.1).
func CondensationPotential(humidityPct, dewpointSpreadF float64) float64 {
	spreadFactor := clamp(1-dewpointSpreadF/30.0, 0, 1)
	return clamp((humidityPct/100.0)*spreadFactor, 0, 1)
}

// AtmosphericStability scores how settled the atmosphere is, in [0,1],
// from the 24h pressure trend (inHg/hour, the trends store's native
// slope unit), sustained wind and humidity (§4.10.1). The 2 hPa-per-day
// threshold mirrors the reference implementation's hPa-native stability
// check; trend24hPerHour is converted to an hPa-equivalent 24h swing
// before comparison.
func AtmosphericStability(trend24hPerHourInHg, windMph, humidityPct float64) float64 {
	stability := 0.5

	equivalentSwingHpa := math.Abs(trend24hPerHourInHg*24) * constants.InHgToHPa
	if equivalentSwingHpa < 2 {
		stability += 0.2
	}

	switch {
	case windMph < 5:
		stability += 0.15
	case windMph > 15:
		stability -= 0.15
	}

	if humidityPct > 70 {
		stability += 0.1
	}

	return clamp(stability, 0, 1)
}

// GradientProxy approximates a pressure-gradient-driven wind contribution
// from the short-horizon trend magnitude, used by the daily forecast's
// wind projection and high/low swing (§4.10.3); the hourly forecast does
// not use it. windGradientScale translates an inHg/h trend into an mph
// wind contribution.
const windGradientScale = 40.0

func GradientProxy(trend3hPerHourInHg float64) float64 {
	return math.Abs(trend3hPerHourInHg) * windGradientScale
}

// SeasonalAdjustmentF approximates the seasonal temperature swing for a
// given day-of-year, anchored at zero on the winter/summer solstices'
// midpoint and peaking at the summer solstice (§4.10.3). Amplitude of 15°F
// matches a typical mid-latitude seasonal swing around a site's mean.
func SeasonalAdjustmentF(dayOfYear int) float64 {
	const amplitude = 15.0
	const peakDay = 172.0 // approx. summer solstice
	return amplitude * math.Cos(2*math.Pi*(float64(dayOfYear)-peakDay)/365.25)
}

// conditionTargetHumidity is the steady-state humidity a condition's
// weather pattern tends toward, used by the daily forecast's humidity
// convergence rule (§4.10.3).
var conditionTargetHumidity = map[string]float64{
	"sunny":               45,
	"partly_cloudy":       55,
	"clear_night":         55,
	"partly_cloudy_night": 60,
	"cloudy":              70,
	"fog":                 95,
	"rainy":               85,
	"pouring":              90,
	"lightning_rainy":     90,
	"snowy":               80,
	"lightning":           80,
	"windy":               50,
}

func conditionTarget(condition string) float64 {
	if v, ok := conditionTargetHumidity[condition]; ok {
		return v
	}
	return 60
}

// windConditionFactor scales the base wind speed projection by how windy
// the evolved condition implies the weather pattern has become.
var windConditionFactor = map[string]float64{
	"sunny":               0.9,
	"partly_cloudy":       1.0,
	"clear_night":         0.8,
	"partly_cloudy_night": 0.9,
	"cloudy":              1.1,
	"fog":                 0.6,
	"rainy":               1.3,
	"pouring":             1.6,
	"lightning_rainy":     1.8,
	"snowy":               1.2,
	"lightning":           1.7,
	"windy":               1.9,
}

func windFactor(condition string) float64 {
	if v, ok := windConditionFactor[condition]; ok {
		return v
	}
	return 1.0
}

// pressureSystemWindFactor scales projected wind by the current pressure
// band; tight gradients around lows drive stronger wind than calm highs.
var pressureSystemWindFactor = map[string]float64{
	"very_high":     0.8,
	"high":          0.9,
	"normal":        1.0,
	"low":           1.2,
	"very_low":      1.4,
	"extremely_low": 1.7,
}

func pressureSystemFactor(system string) float64 {
	if v, ok := pressureSystemWindFactor[system]; ok {
		return v
	}
	return 1.0
}
