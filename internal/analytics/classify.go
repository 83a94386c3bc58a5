package analytics

import "github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"

// Thresholds configure trend classification
type Thresholds struct {
	SlopeSmall float64 `json:"slope_small"`
	DeltaBig   float64 `json:"delta_big"`
}

// DefaultThresholds returns slope_small=0.01, delta_big=0.25
func DefaultThresholds() Thresholds {
	return Thresholds{SlopeSmall: 0.01, DeltaBig: 0.25}
}

// Classify maps a slope and a start/end delta to a trend label.
//
// A nil slope is always "stable", even with a large delta. The increasing
// check runs before the decreasing one.
func (t Thresholds) Classify(slope *float64, delta float64) string {
	if slope == nil {
		return model.TrendStable
	}
	s := *slope
	if s > t.SlopeSmall || delta > t.DeltaBig {
		return model.TrendIncreasing
	}
	if s < -t.SlopeSmall || delta < -t.DeltaBig {
		return model.TrendDecreasing
	}
	return model.TrendStable
}
