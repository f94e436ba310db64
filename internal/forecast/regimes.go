package forecast

import "github.com/lox/wandiweather/internal/pressurewind"

// RegimeFlags are coarse pattern classifications of the current state
// snapshot, nudging the daily forecast's temperature and precipitation
// adjustments the way the reference implementation's heatwave/inversion/
// clear-calm detectors feed its forecast (§4.10.1).
type RegimeFlags struct {
	Heatwave       bool
	InversionNight bool
	ClearCalm      bool
}

// ClassifyRegime derives RegimeFlags from the current derived state and a
// short window of recent daily highs, ordered oldest first.
func ClassifyRegime(tempF, humidityPct, windMph float64, isDaytime bool, system pressurewind.System, prevDayHighs []float64) RegimeFlags {
	return RegimeFlags{
		Heatwave:       classifyHeatwave(tempF, prevDayHighs),
		InversionNight: classifyInversion(isDaytime, windMph, system),
		ClearCalm:      classifyClearCalm(humidityPct, windMph, system),
	}
}

func classifyHeatwave(tempF float64, prevDayHighs []float64) bool {
	if tempF >= 95 {
		return true
	}
	n := len(prevDayHighs)
	if n >= 2 && prevDayHighs[n-1] >= 90 && prevDayHighs[n-2] >= 90 {
		return true
	}
	return false
}

// classifyInversion flags the calm, clear nighttime conditions under which
// a temperature inversion is likely to trap cold air near the surface.
func classifyInversion(isDaytime bool, windMph float64, system pressurewind.System) bool {
	if isDaytime {
		return false
	}
	return windMph < 2 && (system == pressurewind.SystemHigh || system == pressurewind.SystemVeryHigh)
}

func classifyClearCalm(humidityPct, windMph float64, system pressurewind.System) bool {
	isDry := humidityPct < 60
	isCalm := windMph < 5
	isHighPressure := system == pressurewind.SystemHigh || system == pressurewind.SystemVeryHigh
	return isDry && isCalm && isHighPressure
}

// RegimeToString names the dominant regime for logging/debugging.
func RegimeToString(flags RegimeFlags) string {
	if flags.Heatwave {
		return "heatwave"
	}
	if flags.InversionNight {
		return "inversion"
	}
	if flags.ClearCalm {
		return "clear_calm"
	}
	return "all"
}
