package forecast

import "math"

// trendToTrajectoryScale converts a 24h-equivalent inHg pressure swing
// into trajectory score units: a full 1 inHg swing maps to the maximum
// trajectory magnitude (§4.10.2).
const trendToTrajectoryScale = 100.0

// confidenceDistanceK scales how quickly trajectory confidence degrades
// as the 3h and 24h trends diverge (§4.10.2).
const confidenceDistanceK = 20.0

// Trajectory is the evolution trajectory derived from the state
// snapshot's pressure trends and atmospheric stability.
type Trajectory struct {
	Score      float64 // [-100,100], negative deteriorates, positive improves
	Confidence float64 // [0,1]
	StepPerHour float64
}

// ComputeTrajectory derives the evolution trajectory from the 3h/24h
// pressure trends (inHg/hour, trends store's native slope unit) and the
// atmospheric stability score.
func ComputeTrajectory(trend3hPerHourInHg, trend24hPerHourInHg, stability float64) Trajectory {
	equivalentSwing := trend24hPerHourInHg * 24
	raw := clamp(equivalentSwing*trendToTrajectoryScale, -100, 100)
	score := raw * (0.6 + 0.4*stability)

	distance := math.Abs(trend3hPerHourInHg - trend24hPerHourInHg)
	confidence := clamp(1-distance*confidenceDistanceK, 0, 1)

	step := StepBand(equivalentSwing)

	return Trajectory{Score: score, Confidence: confidence, StepPerHour: step}
}
