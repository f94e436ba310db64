// Package altitude implements the barometric (hypsometric) conversion
// between station pressure and its sea-level equivalent, and the
// elevation-aware shifting of pressure classification thresholds (§4.1).
package altitude

import "math"

const (
	lapseRate       = 0.0065  // L, K/m
	stdTemp         = 288.15  // T0, K
	gravity         = 9.80665 // g, m/s^2
	molarMass       = 0.0289644
	gasConstant     = 8.31432
	exponent        = gravity * molarMass / (gasConstant * lapseRate)
	hPaPerMeterStep = 1.0 / 8.0 // ~1 hPa per 8m of elevation
)

// StationToSeaLevel converts a station-pressure reading (inHg) at the
// given elevation (meters) to its sea-level equivalent. h<=0 or
// pressureIsSeaLevel returns p unchanged.
func StationToSeaLevel(pInHg, elevationM float64, pressureIsSeaLevel bool) float64 {
	if pressureIsSeaLevel || elevationM <= 0 {
		return pInHg
	}
	pHPa := pInHg * 33.8639
	p0 := pHPa * math.Pow(1-(lapseRate*elevationM/stdTemp), -exponent)
	return p0 / 33.8639
}

// SeaLevelToStation is the inverse of StationToSeaLevel, used only to
// validate the round-trip property (§8.2); the core never calls it on the
// observe path.
func SeaLevelToStation(p0InHg, elevationM float64) float64 {
	if elevationM <= 0 {
		return p0InHg
	}
	p0HPa := p0InHg * 33.8639
	pHPa := p0HPa * math.Pow(1-(lapseRate*elevationM/stdTemp), exponent)
	return pHPa / 33.8639
}

// ThresholdShiftInHg returns the amount (inHg) by which pressure-band
// thresholds should shift to remain invariant under the station's
// elevation, approximately 1 hPa per 8m.
func ThresholdShiftInHg(elevationM float64) float64 {
	if elevationM <= 0 {
		return 0
	}
	shiftHPa := elevationM * hPaPerMeterStep
	return shiftHPa / 33.8639
}
