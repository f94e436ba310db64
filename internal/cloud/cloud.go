// Package cloud implements the cloud-cover analyzer: a relative regime
// driven by astronomically-normalized thresholds at solar elevation >= 15°,
// a graded absolute fallback below that, and four sequential adjustments
// (luminance multiplier, pressure-trend nudge, historical clear bias,
// cross-update hysteresis) (§4.4).
package cloud

import (
	"math"

	"github.com/lox/wandiweather/internal/solar"
)

// Inputs bundles everything the analyzer needs for one update.
type Inputs struct {
	DayOfYear          int
	SolarRadiationWm2   float64
	HasSolar            bool
	Lux                 float64
	HasLux              bool
	UVIndex             float64
	HasUV               bool
	ElevationDeg        float64
	ZenithMaxRadiation  float64 // defaults to 1000 when out of [800,2000]
	LuminanceMultiplier float64 // clamped to [0.1, 5.0]
	PressureTrend3h      float64 // inHg/h, signed
	ClearFraction6h      float64 // fraction of last 6h classified sunny/clear_night
	HighPressureBoost    float64 // [0,1] contribution from current pressure system
	RisingTrendBoost     float64 // [0,1] contribution from rising pressure trend
	IsMorning            bool
	PreviousCloudCover   float64
	HasPrevious          bool
}

// Result is the analyzer's output plus bookkeeping the caller may want to
// log as a warning.
type Result struct {
	CloudCoverPct      float64
	UsedAbsoluteFallback bool
	CalibrationWarning bool
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Analyze computes the cloud-cover percentage for one update.
func Analyze(in Inputs) Result {
	zenithMax := in.ZenithMaxRadiation
	calibrationWarning := false
	if zenithMax < 800 || zenithMax > 2000 {
		zenithMax = 1000
		calibrationWarning = true
	}

	mult := clamp(in.LuminanceMultiplier, 0.1, 5.0)
	elevationFactor := math.Max(0, 1-in.ElevationDeg/90)
	effective := 1 + (mult-1)*elevationFactor

	radiation := in.SolarRadiationWm2 * effective
	lux := in.Lux * effective
	uv := in.UVIndex

	var raw float64
	usedFallback := false

	if in.ElevationDeg >= 15 {
		variation := solar.ConstantVariation(in.DayOfYear)
		transmission := solar.AtmosphericTransmission(solar.AirMass(in.ElevationDeg))
		expected := zenithMax * variation * transmission * math.Sin(in.ElevationDeg*math.Pi/180)

		cloudSolar := 100.0
		if in.HasSolar && expected > 0 {
			cloudSolar = clamp(100-100*radiation/expected, 0, 100)
		}
		cloudLux := clamp(100-100*lux/100000, 0, 100)
		cloudUV := clamp(100-100*uv/11, 0, 100)

		switch {
		case in.HasSolar && radiation < 10 && in.HasLux && lux < 1000 && in.HasUV:
			raw = cloudUV
		case in.HasSolar && radiation < 10:
			if in.HasLux {
				raw = 0.9*cloudLux + 0.1*cloudUV
			} else {
				raw = cloudLux
			}
		case in.HasLux && in.HasUV:
			raw = 0.80*cloudSolar + 0.15*cloudLux + 0.05*cloudUV
		default:
			raw = 0.85*cloudSolar + 0.15*cloudLux
		}
	} else {
		usedFallback = true
		switch {
		case radiation < 50 && lux < 5000 && uv == 0:
			raw = 85
		case radiation < 100 && lux < 10000:
			raw = 70
		case radiation < 200 && lux < 20000 && uv < 1:
			raw = 40
		default:
			raw = 50
		}
	}

	degraded := !in.HasSolar || calibrationWarning
	raw = applyPressureNudge(raw, in.PressureTrend3h)
	if usedFallback || degraded {
		raw = applyClearBias(raw, in)
	}
	if in.HasPrevious {
		raw = applyHysteresis(raw, in.PreviousCloudCover)
	}
	raw = clamp(raw, 0, 100)

	return Result{CloudCoverPct: raw, UsedAbsoluteFallback: usedFallback, CalibrationWarning: calibrationWarning}
}

// applyPressureNudge adds up to +10 cloud points on falling 3h pressure,
// up to -10 on rising.
func applyPressureNudge(cloud, trend3h float64) float64 {
	const maxNudge = 10.0
	const scale = 0.05 // inHg/h to reach max nudge
	nudge := clamp(-trend3h/scale, -1, 1) * maxNudge
	return cloud + nudge
}

// applyClearBias applies the historical clear-weather bias subtraction.
func applyClearBias(cloud float64, in Inputs) float64 {
	strength := clamp(in.ClearFraction6h+in.HighPressureBoost+in.RisingTrendBoost, 0, 1)
	if in.IsMorning {
		strength = math.Max(0.5, strength*0.5)
	}
	switch {
	case strength > 0.7:
		return cloud - 50*strength
	case strength > 0.5:
		return cloud - 30*strength
	default:
		return cloud
	}
}

// applyHysteresis enforces the +-30 point cap between consecutive
// updates.
func applyHysteresis(cloud, previous float64) float64 {
	const maxDelta = 30.0
	delta := cloud - previous
	if delta > maxDelta {
		return previous + maxDelta
	}
	if delta < -maxDelta {
		return previous - maxDelta
	}
	return cloud
}
