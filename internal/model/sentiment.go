package model

import (
	"strings"
	"time"
)

// Normalised sentiment labels
const (
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
	LabelPositive = "positive"
)

// Score keys inside SentimentRecord.Scores
const (
	ScorePolarity = "polarity"
	ScoreRaw      = "raw"
)

// SentimentRecord is the stored classifier output for exactly one message.
// Scores is loosely typed because it round-trips through document and JSON
// storage; Scores["polarity"] holds the continuous score when the classifier
// emitted one.
type SentimentRecord struct {
	ID         int64                  `json:"id" bson:"_id"`
	MessageID  int64                  `json:"message_id" bson:"messageId"`
	UserID     int64                  `json:"user_id" bson:"userId"`
	Label      string                 `json:"sentiment_label" bson:"label"`
	Confidence *float64               `json:"sentiment_score" bson:"confidence,omitempty"`
	Scores     map[string]interface{} `json:"emotion_scores,omitempty" bson:"scores,omitempty"`
	CreatedAt  time.Time              `json:"created_at" bson:"createdAt"`
}

// Classification is what the sentiment classifier returns for a text
type Classification struct {
	Label      string             `json:"sentiment_label"`
	Confidence float64            `json:"sentiment_score"`
	Polarity   float64            `json:"polarity"`
	Raw        map[string]float64 `json:"raw_scores"`
}

// NewSentimentRecord builds the record stored for a classified message.
// Labels are stored upper-cased.
func NewSentimentRecord(msg *Message, c Classification) *SentimentRecord {
	confidence := c.Confidence
	raw := make(map[string]interface{}, len(c.Raw))
	for k, v := range c.Raw {
		raw[k] = v
	}
	return &SentimentRecord{
		MessageID:  msg.ID,
		UserID:     msg.UserID,
		Label:      strings.ToUpper(c.Label),
		Confidence: &confidence,
		Scores: map[string]interface{}{
			ScorePolarity: c.Polarity,
			ScoreRaw:      raw,
		},
	}
}

// FallbackSentimentRecord is stored when the regular record could not be written.
// It carries no polarity, so readers fall back on the label.
func FallbackSentimentRecord(msg *Message) *SentimentRecord {
	confidence := 0.5
	return &SentimentRecord{
		MessageID:  msg.ID,
		UserID:     msg.UserID,
		Label:      strings.ToUpper(LabelNeutral),
		Confidence: &confidence,
	}
}
