package analytics

import (
	"fmt"
	"strings"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

// Options tune a trend computation
type Options struct {
	Window     int
	Thresholds Thresholds
	LargeJump  float64
}

// DefaultOptions returns window 3 with the default thresholds
func DefaultOptions() Options {
	return Options{
		Window:     3,
		Thresholds: DefaultThresholds(),
		LargeJump:  DefaultLargeJump,
	}
}

// Analyze runs smoothing, slope fit, classification and shift detection over
// a series. An empty series gives trend "unknown" with zero means.
func Analyze(series MoodSeries, opts Options) model.TrendResult {
	polarities := series.Polarities()
	smoothed := Smooth(polarities, opts.Window)

	result := model.TrendResult{
		Polarities:  polarities,
		Smoothed:    smoothed,
		ShiftEvents: []model.ShiftEvent{},
	}
	if series.Empty() {
		result.Trend = model.TrendUnknown
		return result
	}

	if s, ok := Slope(smoothed); ok {
		result.Slope = &s
	}
	result.StartMean, result.EndMean = WindowMeans(smoothed, opts.Window)
	result.Delta = result.EndMean - result.StartMean
	result.Trend = opts.Thresholds.Classify(result.Slope, result.Delta)
	result.ShiftEvents = DetectShifts(smoothed, series.Points, opts.LargeJump)
	return result
}

// Summary renders the deterministic text summary of a trend.
// Empty results (trend "unknown") summarise to "".
func Summary(r model.TrendResult) string {
	if r.Trend == model.TrendUnknown {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Conversation mood is %s. Start mean=%+.2f, end mean=%+.2f, delta=%+.2f.",
		r.Trend, r.StartMean, r.EndMean, r.Delta)

	if len(r.ShiftEvents) > 0 {
		fmt.Fprintf(&b, " Detected %d notable shift(s) (examples: %s).",
			len(r.ShiftEvents), strings.Join(ShiftReasons(r.ShiftEvents, 3), ", "))
	}
	return b.String()
}

// SummaryLabel is the word label of the end-of-series mean
func SummaryLabel(r model.TrendResult) string {
	if r.Trend == model.TrendUnknown {
		return WordUnknown
	}
	return WordLabel(&r.EndMean)
}

// ShiftReasons returns the reasons of the first n events
func ShiftReasons(events []model.ShiftEvent, n int) []string {
	if n > len(events) {
		n = len(events)
	}
	reasons := make([]string, 0, n)
	for _, ev := range events[:n] {
		reasons = append(reasons, ev.Reason)
	}
	return reasons
}
