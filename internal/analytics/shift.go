package analytics

import (
	"math"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

// DefaultLargeJump is the minimum |cur-prev| reported as a large jump
const DefaultLargeJump = 0.5

// DetectShifts scans adjacent pairs of the smoothed series for zero crossings
// and large jumps. Events carry the metadata of the later point; when both
// conditions hold at one index, crossed_zero is emitted first.
// points must be parallel to smoothed.
func DetectShifts(smoothed []float64, points []model.PolarityPoint, largeJump float64) []model.ShiftEvent {
	events := []model.ShiftEvent{}
	for i := 1; i < len(smoothed); i++ {
		prev, cur := smoothed[i-1], smoothed[i]

		if (prev <= 0 && cur > 0) || (prev >= 0 && cur < 0) {
			events = append(events, shiftAt(i, points, cur, model.ShiftCrossedZero))
		}
		if math.Abs(cur-prev) >= largeJump {
			events = append(events, shiftAt(i, points, cur, model.ShiftLargeJump))
		}
	}
	return events
}

func shiftAt(i int, points []model.PolarityPoint, polarity float64, reason string) model.ShiftEvent {
	ev := model.ShiftEvent{Index: i, Polarity: polarity, Reason: reason}
	if i < len(points) {
		ev.MessageID = points[i].MessageID
		ev.Timestamp = points[i].Timestamp
	}
	return ev
}
