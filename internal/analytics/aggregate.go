package analytics

import (
	"math"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

// Word labels
const (
	WordUnknown          = "Unknown"
	WordStronglyNegative = "Strongly Negative"
	WordNegative         = "Negative"
	WordNeutral          = "Neutral"
	WordPositive         = "Positive"
	WordStronglyPositive = "Strongly Positive"
)

// Aggregate computes the unweighted mean polarity over every analysed
// message of a user. nil records are skipped.
func Aggregate(records []*model.SentimentRecord) model.ConversationSentiment {
	sum := 0.0
	count := 0
	for _, r := range records {
		if r == nil {
			continue
		}
		sum += ExtractPolarity(r)
		count++
	}
	if count == 0 {
		return model.ConversationSentiment{Label: WordUnknown}
	}

	agg := sum / float64(count)
	return model.ConversationSentiment{
		AggregatePolarity: &agg,
		Label:             WordLabel(&agg),
		SampleCount:       count,
	}
}

// WordLabel maps a polarity to a five-step word scale; nil or NaN is "Unknown"
func WordLabel(score *float64) string {
	if score == nil || math.IsNaN(*score) {
		return WordUnknown
	}
	s := *score
	switch {
	case s <= -0.6:
		return WordStronglyNegative
	case s <= -0.2:
		return WordNegative
	case s < 0.2:
		return WordNeutral
	case s < 0.6:
		return WordPositive
	default:
		return WordStronglyPositive
	}
}
