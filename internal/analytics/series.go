package analytics

import (
	"sort"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

// MoodSeries is a user's polarity timeline, oldest first
type MoodSeries struct {
	Points []model.PolarityPoint
}

// Len returns the number of points
func (s MoodSeries) Len() int {
	return len(s.Points)
}

// Empty reports whether the series has no points at all
func (s MoodSeries) Empty() bool {
	return len(s.Points) == 0
}

// Polarities returns the raw polarity values in series order
func (s MoodSeries) Polarities() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Polarity
	}
	return out
}

// BuildSeries orders messages by timestamp (ties by id) and extracts a
// polarity for each one. records is keyed by message id; a message without a
// record still gets a point with polarity 0. The input slice is not modified.
func BuildSeries(messages []*model.Message, records map[int64]*model.SentimentRecord) MoodSeries {
	ordered := make([]*model.Message, len(messages))
	copy(ordered, messages)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	points := make([]model.PolarityPoint, len(ordered))
	for i, m := range ordered {
		points[i] = model.PolarityPoint{
			MessageID: m.ID,
			Timestamp: m.CreatedAt,
			Polarity:  ExtractPolarity(records[m.ID]),
		}
	}
	return MoodSeries{Points: points}
}
