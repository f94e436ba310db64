package forecast

import (
	"math"

	"github.com/lox/wandiweather/internal/trends"
)

// maxVolatilityNoiseF caps the deterministic, volatility-scaled adjustment
// the daily forecast applies in place of random noise (the engine never
// calls math/rand, so any day-to-day variation is derived from observed
// history instead).
const maxVolatilityNoiseF = 4.0

// BiasCorrector derives a deterministic, bounded temperature adjustment
// from the volatility of recent trends-store samples, standing in for the
// reference implementation's verification-driven bias statistics (which
// require ground-truth forecast/observation pairs the core never sees).
type BiasCorrector struct {
	history *trends.Store
}

// NewBiasCorrector builds a corrector over a trends-store snapshot.
func NewBiasCorrector(history *trends.Store) *BiasCorrector {
	return &BiasCorrector{history: history}
}

// DailyNoise returns a deterministic pseudo-noise term for dayIndex
// (0 = tomorrow, 1 = the day after, ...), scaled by the temperature
// volatility observed in the trends store and damped with forecast day
// index so later days don't compound into implausible swings.
func (c *BiasCorrector) DailyNoise(dayIndex int) float64 {
	if c.history == nil {
		return 0
	}
	latest, ok := c.history.Latest()
	if !ok {
		return 0
	}
	samples := c.history.Since(latest.Timestamp, trends.Retention)
	volatility := trends.Volatility(samples, func(s trends.Sample) float64 { return s.TemperatureF })
	if volatility <= 0 {
		return 0
	}
	// A fixed, deterministic phase per day index stands in for randomness:
	// sin() over the day index traces a smooth, bounded, repeatable wobble
	// rather than drawing from a PRNG.
	phase := float64(dayIndex) * 1.3
	noise := volatility * math.Sin(phase) * 0.5
	return clamp(noise, -maxVolatilityNoiseF, maxVolatilityNoiseF)
}

// GustDamping returns a [0.3,1] damping factor from wind-direction
// stability (1 when there is no direction history). The daily forecast
// uses it to scale its wind-speed projection down as stability degrades;
// the high/low temperatures do not depend on it.
func (c *BiasCorrector) GustDamping() float64 {
	if c.history == nil {
		return 1
	}
	latest, ok := c.history.Latest()
	if !ok {
		return 1
	}
	samples := c.history.Since(latest.Timestamp, trends.Retention)
	stats, ok := trends.WindDirectionStats(samples)
	if !ok {
		return 1
	}
	return clamp(stats.Stability, 0.3, 1)
}
