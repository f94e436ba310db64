// Package forecast implements the multi-factor forecast engine: a state
// snapshot fusing pressure trends, moisture transport and atmospheric
// stability, an evolution trajectory driving a condition "ladder", and
// deterministic daily/hourly projections (§4.10).
package forecast

import "github.com/lox/wandiweather/internal/classify"

// tiers is the condition ladder clear-weather-to-severe ordering the
// evolution trajectory advances or regresses a running position along
// (§4.10.2).
var tiers = []classify.Condition{
	classify.Sunny,
	classify.PartlyCloudy,
	classify.Cloudy,
	classify.Rainy,
	classify.Pouring,
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

// LadderSpan is the highest valid ladder position index.
func LadderSpan() float64 { return float64(len(tiers) - 1) }

// StepBand classifies |netChange| (inHg equivalent over the trend's
// horizon) into a per-hour ladder step size (§4.10.2, Open Question 1).
func StepBand(netChange float64) float64 {
	abs := netChange
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs > 1.0:
		return 0.5 // rapid
	case abs >= 0.1:
		return 0.1 // moderate
	default:
		return 0.02 // gradual
	}
}

// AdvanceLadder moves position forward by hours at the given per-hour
// step rate, direction and magnitude set by trajectoryScore ([-100,100];
// negative deteriorates toward the wet end of the ladder, positive
// improves toward the clear end).
func AdvanceLadder(position, trajectoryScore, stepPerHour, hours float64) float64 {
	delta := -(trajectoryScore / 100.0) * stepPerHour * hours
	return clamp(position+delta, 0, LadderSpan())
}

// ConditionAt rounds a ladder position to its nearest tier.
func ConditionAt(position float64) classify.Condition {
	idx := int(position + 0.5)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(tiers) {
		idx = len(tiers) - 1
	}
	return tiers[idx]
}

// PositionOf returns the ladder index of a condition, or -1 if the
// condition never appears on the ladder (e.g. fog, snowy, windy — those
// are handled by overrides rather than ladder interpolation).
func PositionOf(c classify.Condition) float64 {
	for i, t := range tiers {
		if t == c {
			return float64(i)
		}
	}
	return -1
}
