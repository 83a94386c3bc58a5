package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

func seriesOf(values ...float64) MoodSeries {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.PolarityPoint, len(values))
	for i, v := range values {
		points[i] = model.PolarityPoint{
			MessageID: int64(100 + i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Polarity:  v,
		}
	}
	return MoodSeries{Points: points}
}

func TestSmooth(t *testing.T) {
	series := []float64{0.2, -0.4, 0.9, 0.1}

	assert.Equal(t, series, Smooth(series, 1), "window 1 is identity")
	assert.Equal(t, series, Smooth(series, 0), "window clamps to 1")
	assert.Equal(t, series, Smooth(series, -5), "window clamps to 1")
	assert.Equal(t, []float64{}, Smooth([]float64{}, 3))
	assert.Equal(t, []float64{}, Smooth(nil, 3))

	assert.InDeltaSlice(t, []float64{0.2, -0.1, 0.7 / 3, 0.2}, Smooth(series, 3), 1e-9)
	assert.InDeltaSlice(t, []float64{0.2, -0.1, 0.7 / 3, 0.2}, Smooth(series, 10), 1e-9)
}

func TestSlope(t *testing.T) {
	s, ok := Slope([]float64{0, 1, 2, 3, 4})
	require.True(t, ok)
	assert.Equal(t, 1.0, s)

	s, ok = Slope([]float64{0.3, 0.3, 0.3})
	require.True(t, ok)
	assert.Equal(t, 0.0, s)

	_, ok = Slope([]float64{0.5})
	assert.False(t, ok)

	_, ok = Slope(nil)
	assert.False(t, ok)
}

func TestWindowMeans(t *testing.T) {
	start, end := WindowMeans([]float64{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, 1.5, start)
	assert.Equal(t, 4.5, end)

	// shorter than the window: both use everything
	start, end = WindowMeans([]float64{1, 3}, 5)
	assert.Equal(t, 2.0, start)
	assert.Equal(t, 2.0, end)

	start, end = WindowMeans(nil, 3)
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 0.0, end)
}

func TestClassify(t *testing.T) {
	th := DefaultThresholds()
	f := func(v float64) *float64 { return &v }

	assert.Equal(t, model.TrendIncreasing, th.Classify(f(0.02), 0.0))
	assert.Equal(t, model.TrendDecreasing, th.Classify(f(-0.02), 0.0))
	assert.Equal(t, model.TrendStable, th.Classify(f(0.0), 0.0))
	assert.Equal(t, model.TrendIncreasing, th.Classify(f(0.0), 0.3))
	assert.Equal(t, model.TrendDecreasing, th.Classify(f(0.0), -0.3))
	assert.Equal(t, model.TrendStable, th.Classify(f(0.01), 0.25), "thresholds are exclusive")

	// nil slope is stable regardless of delta
	assert.Equal(t, model.TrendStable, th.Classify(nil, 0.9))
	assert.Equal(t, model.TrendStable, th.Classify(nil, -0.9))

	// increasing is checked first
	assert.Equal(t, model.TrendIncreasing, th.Classify(f(0.5), -0.9))

	custom := Thresholds{SlopeSmall: 0.1, DeltaBig: 1}
	assert.Equal(t, model.TrendStable, custom.Classify(f(0.05), 0.5))
}

func TestDetectShifts(t *testing.T) {
	s := seriesOf(0.1, -0.1, 0.5)
	events := DetectShifts([]float64{0.1, -0.1, 0.5}, s.Points, DefaultLargeJump)

	require.Len(t, events, 3)
	assert.Equal(t, 1, events[0].Index)
	assert.Equal(t, model.ShiftCrossedZero, events[0].Reason)
	assert.Equal(t, int64(101), events[0].MessageID)

	assert.Equal(t, 2, events[1].Index)
	assert.Equal(t, model.ShiftCrossedZero, events[1].Reason)
	assert.Equal(t, 2, events[2].Index)
	assert.Equal(t, model.ShiftLargeJump, events[2].Reason)
	assert.Equal(t, int64(102), events[2].MessageID)
	assert.Equal(t, s.Points[2].Timestamp, events[2].Timestamp)
	assert.Equal(t, 0.5, events[2].Polarity)
}

func TestDetectShifts_ZeroBoundaries(t *testing.T) {
	// 0 -> positive crosses, positive -> 0 does not, 0 -> negative crosses
	events := DetectShifts([]float64{0, 0.1, 0, -0.1}, seriesOf(0, 0.1, 0, -0.1).Points, DefaultLargeJump)
	require.Len(t, events, 2)
	assert.Equal(t, 1, events[0].Index)
	assert.Equal(t, 3, events[1].Index)

	assert.Empty(t, DetectShifts([]float64{0.9}, seriesOf(0.9).Points, DefaultLargeJump))
	assert.NotNil(t, DetectShifts(nil, nil, DefaultLargeJump))
}

func TestAnalyze_MoodDrop(t *testing.T) {
	series := seriesOf(0.8, 0.8, 0.8, -0.8, -0.8, -0.8)
	r := Analyze(series, DefaultOptions())

	assert.Equal(t, []float64{0.8, 0.8, 0.8, -0.8, -0.8, -0.8}, r.Polarities)
	assert.InDeltaSlice(t, []float64{0.8, 0.8, 0.8, 0.8 / 3, -0.8 / 3, -0.8}, r.Smoothed, 1e-9)
	require.NotNil(t, r.Slope)
	assert.Less(t, *r.Slope, 0.0)
	assert.InDelta(t, 0.8, r.StartMean, 1e-9)
	assert.InDelta(t, -0.8/3, r.EndMean, 1e-9)
	assert.Less(t, r.Delta, -0.25)
	assert.Equal(t, model.TrendDecreasing, r.Trend)

	crossed := false
	for _, ev := range r.ShiftEvents {
		if ev.Reason == model.ShiftCrossedZero && ev.Index == 4 {
			crossed = true
			assert.Equal(t, int64(104), ev.MessageID)
		}
	}
	assert.True(t, crossed, "expected a zero crossing between index 3 and 4")
}

func TestAnalyze_Empty(t *testing.T) {
	r := Analyze(MoodSeries{}, DefaultOptions())

	assert.Equal(t, model.TrendUnknown, r.Trend)
	assert.Nil(t, r.Slope)
	assert.Equal(t, []float64{}, r.Polarities)
	assert.Equal(t, []float64{}, r.Smoothed)
	assert.Equal(t, []model.ShiftEvent{}, r.ShiftEvents)
	assert.Equal(t, 0.0, r.StartMean)
	assert.Equal(t, 0.0, r.Delta)
	assert.Equal(t, "", Summary(r))
	assert.Equal(t, WordUnknown, SummaryLabel(r))
}

func TestAnalyze_SinglePointIsStable(t *testing.T) {
	r := Analyze(seriesOf(-0.9), DefaultOptions())
	assert.Nil(t, r.Slope)
	assert.Equal(t, model.TrendStable, r.Trend)
	assert.Empty(t, r.ShiftEvents)
}

func TestSummary(t *testing.T) {
	r := model.TrendResult{Trend: model.TrendStable, StartMean: 0.1, EndMean: 0.15, Delta: 0.05}
	assert.Equal(t, "Conversation mood is stable. Start mean=+0.10, end mean=+0.15, delta=+0.05.", Summary(r))

	r = Analyze(seriesOf(0.8, 0.8, 0.8, -0.8, -0.8, -0.8), DefaultOptions())
	summary := Summary(r)
	assert.Contains(t, summary, "Conversation mood is decreasing.")
	assert.Contains(t, summary, "delta=-1.07.")
	assert.Contains(t, summary, "Detected 4 notable shift(s) (examples: large_jump, crossed_zero, large_jump).")
	assert.Equal(t, WordNegative, SummaryLabel(r))
}
