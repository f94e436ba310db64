package forecast

import (
	"time"

	"github.com/lox/wandiweather/internal/trends"
)

const (
	nowcastAlpha  = 0.7
	maxAdjustment = 4.0
	minReadings   = 3
)

// IntradayCorrection is the outcome of comparing a near-term temperature
// slope against the trends store's recent observed trend, the
// deterministic analogue of the reference implementation's nowcast.
type IntradayCorrection struct {
	ObservedTrendF float64
	ForecastTrendF float64
	Delta          float64
	Adjustment     float64
}

// Nowcaster computes a bounded temperature correction from the trends
// store's most recent short-horizon trajectory. Daily and Hourly do not
// call it; their projections run from the state snapshot alone.
type Nowcaster struct {
	history *trends.Store
}

// NewNowcaster builds a nowcaster over a trends-store snapshot.
func NewNowcaster(history *trends.Store) *Nowcaster {
	return &Nowcaster{history: history}
}

// ComputeIntraday compares the trends store's most recent 2h temperature
// slope against the hourly model's own short-horizon projection
// (forecastSlopePerHour), returning a bounded correction or nil if there's
// not enough recent history to trust the comparison.
func (n *Nowcaster) ComputeIntraday(forecastSlopePerHour float64) *IntradayCorrection {
	if n.history == nil {
		return nil
	}
	latest, ok := n.history.Latest()
	if !ok {
		return nil
	}
	window := n.history.Since(latest.Timestamp, 2*time.Hour)
	if len(window) < minReadings {
		return nil
	}

	result := trends.Trend(window, latest.Timestamp, func(s trends.Sample) float64 { return s.TemperatureF })
	if !result.Sufficient {
		return nil
	}

	delta := result.SlopePerHour - forecastSlopePerHour
	adjustment := clamp(nowcastAlpha*delta, -maxAdjustment, maxAdjustment)

	return &IntradayCorrection{
		ObservedTrendF: result.SlopePerHour,
		ForecastTrendF: forecastSlopePerHour,
		Delta:          delta,
		Adjustment:     adjustment,
	}
}
