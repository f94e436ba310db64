// Package classify implements the priority-ladder condition classifier
// (§4.8): a fixed ordered list of rules evaluated once, first match wins.
package classify

import (
	"github.com/lox/wandiweather/internal/fog"
	"github.com/lox/wandiweather/internal/pressurewind"
)

// Condition is a value from the closed vocabulary (§3.1).
type Condition string

const (
	Sunny              Condition = "sunny"
	PartlyCloudy       Condition = "partly_cloudy"
	Cloudy             Condition = "cloudy"
	ClearNight         Condition = "clear_night"
	PartlyCloudyNight  Condition = "partly_cloudy_night"
	Fog                Condition = "fog"
	Rainy              Condition = "rainy"
	Pouring            Condition = "pouring"
	Snowy              Condition = "snowy"
	Lightning          Condition = "lightning"
	LightningRainy     Condition = "lightning_rainy"
	Windy              Condition = "windy"
)

// RainState is the sensor's wet/dry flag.
type RainState string

const (
	RainWet RainState = "wet"
	RainDry RainState = "dry"
)

const activePrecipThreshold = 0.05 // in/h, single threshold per spec resolution

// Inputs bundles every derived and raw quantity the ladder consults.
type Inputs struct {
	TempF          float64
	RainRateInH    float64
	RainState      RainState
	HasRainState   bool
	PressureInHg   float64
	WindMph        float64
	WindGustMph    float64
	GustFactor     float64
	GustClass      pressurewind.GustClass
	CloudCoverPct  float64
	IsDaytime      bool
	Lux            float64
	HasLux         bool
	SolarRadiation float64
	HasSolar       bool
	FogScore       int
	FogClass       fog.Class
	PressureSystem pressurewind.System
	HumidityPct    float64
}

// Classify evaluates the priority ladder and returns the first matching
// condition.
func Classify(in Inputs) Condition {
	if isActivePrecip(in) {
		if in.RainState == RainWet && in.RainRateInH <= activePrecipThreshold && in.FogClass != fog.ClassNone {
			return Fog
		}
		return classifyPrecip(in)
	}

	if in.FogClass != fog.ClassNone {
		return Fog
	}

	if severe := classifySevereDry(in); severe != "" {
		return severe
	}

	base := classifyDaytimeCloud(in)
	if base != "" {
		if windyOverride(in, base) {
			return Windy
		}
		return base
	}

	if isTwilight(in) {
		return classifyTwilight(in)
	}

	return classifyNight(in)
}

func isActivePrecip(in Inputs) bool {
	if in.RainRateInH > activePrecipThreshold {
		return true
	}
	if in.HasRainState && in.RainState == RainWet {
		// Runs through the fog precondition inline in classifyPrecip's caller.
		return true
	}
	return false
}

func classifyPrecip(in Inputs) Condition {
	switch {
	case in.TempF <= 32:
		return Snowy
	case in.PressureInHg < 29.20,
		in.PressureInHg < 29.50 && in.WindMph >= 19 && in.RainRateInH > 0.1,
		in.PressureInHg < 29.50 && in.GustClass == pressurewind.GustVeryGusty && in.RainRateInH > 0.25:
		return LightningRainy
	case in.RainRateInH >= 0.25:
		return Pouring
	default:
		return Rainy
	}
}

func classifySevereDry(in Inputs) Condition {
	if in.PressureInHg < 29.50 && in.WindMph >= 19 && in.GustFactor > 2 && in.WindGustMph > 15 {
		return Lightning
	}
	if (in.GustFactor > 3 && in.WindGustMph > 20) || in.WindGustMph > 40 {
		return Lightning
	}
	if in.WindMph >= 32 {
		return Windy
	}
	return ""
}

func classifyDaytimeCloud(in Inputs) Condition {
	if !in.IsDaytime {
		return ""
	}
	switch {
	case in.CloudCoverPct <= 30:
		return Sunny
	case in.CloudCoverPct <= 60:
		return PartlyCloudy
	default:
		return Cloudy
	}
}

func windyOverride(in Inputs, base Condition) bool {
	if base != Sunny {
		return false
	}
	if in.WindMph >= 19 {
		return true
	}
	if in.GustClass == pressurewind.GustVeryGusty && in.WindMph >= 8 {
		return true
	}
	return false
}

func isTwilight(in Inputs) bool {
	if in.HasLux && in.Lux > 10 && in.Lux < 100 {
		return true
	}
	if in.HasSolar && in.SolarRadiation > 1 && in.SolarRadiation < 50 {
		return true
	}
	return false
}

func classifyTwilight(in Inputs) Condition {
	if in.HasLux && in.Lux > 50 && in.PressureSystem == pressurewind.SystemNormal {
		return PartlyCloudy
	}
	return Cloudy
}

func classifyNight(in Inputs) Condition {
	sys := in.PressureSystem
	switch {
	case sys == pressurewind.SystemLow && in.HumidityPct > 90 && in.WindMph < 3:
		return Cloudy
	case sys == pressurewind.SystemVeryHigh && in.WindMph < 1 && in.HumidityPct < 70:
		return ClearNight
	case sys == pressurewind.SystemHigh && in.GustClass != pressurewind.GustGusty &&
		in.GustClass != pressurewind.GustVeryGusty && in.GustClass != pressurewind.GustSevereTurbulence &&
		in.HumidityPct < 80:
		return ClearNight
	case sys == pressurewind.SystemLow && in.HumidityPct < 65:
		return ClearNight
	case sys == pressurewind.SystemNormal && in.WindMph >= 1 && in.WindMph < 8 && in.HumidityPct < 85:
		return PartlyCloudyNight
	case sys == pressurewind.SystemLow && in.HumidityPct < 90:
		return PartlyCloudyNight
	case in.HumidityPct > 90:
		return Cloudy
	default:
		return PartlyCloudyNight
	}
}
