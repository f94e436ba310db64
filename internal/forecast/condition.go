package forecast

import (
	"math"
	"time"
)

// DaylightWindow is the sunrise/sunset pair the hourly forecast uses to
// derive is_daytime(h) and a linearly interpolated solar elevation when
// no live elevation sensor feeds the forecast horizon (§4.10.4).
type DaylightWindow struct {
	SunriseHour float64 // local hour, e.g. 6.0
	SunsetHour  float64 // local hour, e.g. 18.0
}

// DefaultDaylightWindow is substituted when the caller's configuration
// supplies no sunrise/sunset default.
var DefaultDaylightWindow = DaylightWindow{SunriseHour: 6, SunsetHour: 18}

// IsDaytimeHour reports whether the given local hour-of-day falls inside
// the daylight window.
func (w DaylightWindow) IsDaytimeHour(hour float64) bool {
	return hour >= w.SunriseHour && hour < w.SunsetHour
}

// SolarElevationForHour linearly interpolates a solar elevation across
// the daylight arc, rising from 0 at sunrise to maxElevationDeg at the
// window's midpoint and back to 0 at sunset, and returning 0 outside the
// window.
func (w DaylightWindow) SolarElevationForHour(hour, maxElevationDeg float64) float64 {
	if !w.IsDaytimeHour(hour) {
		return 0
	}
	span := w.SunsetHour - w.SunriseHour
	if span <= 0 {
		return 0
	}
	frac := (hour - w.SunriseHour) / span
	return maxElevationDeg * (1 - math.Abs(2*frac-1))
}

// HourOfDay extracts the local fractional hour from t for use with
// DaylightWindow.
func HourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// DayOfYear returns the 1-366 day-of-year for the astronomical model.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// canonicalPrecipMm maps a ladder/override condition to its canonical
// precipitation amount (mm) used as the forecast engine's baseline before
// storm/moisture/stability scaling (§4.10.3).
var canonicalPrecipMm = map[string]float64{
	"rainy":           2.0,
	"pouring":         8.0,
	"lightning_rainy": 12.0,
	"snowy":           5.0,
}

// CanonicalPrecipMm looks up the canonical precipitation amount (mm) for
// a condition name, 0 if the condition carries no precipitation.
func CanonicalPrecipMm(condition string) float64 {
	return canonicalPrecipMm[condition]
}

// VisibilityMiles estimates visibility (statute miles, the core's
// canonical unit for this derived quantity) from fog score and cloud
// cover/precipitation, a feature present in the reference implementation
// but only implicit in the specification's output shape (§6.3,
// SPEC_FULL.md "Supplemented Features").
func VisibilityMiles(fogScore int, cloudCoverPct float64, rainRateInH float64) float64 {
	switch {
	case fogScore >= 70:
		return 0.25
	case fogScore >= 55:
		return 1.0
	case fogScore >= 45:
		return 2.5
	}
	if rainRateInH >= 0.25 {
		return 2.0
	}
	if rainRateInH > 0.05 {
		return 4.0
	}
	// Clear air visibility degrades gently with cloud cover (haze proxy).
	return 10.0 - (cloudCoverPct/100.0)*2.0
}
