package model

import "time"

// Trend labels
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
	TrendUnknown    = "unknown"
)

// Shift reasons
const (
	ShiftCrossedZero = "crossed_zero"
	ShiftLargeJump   = "large_jump"
)

// PolarityPoint is one message's polarity on the mood timeline.
// Derived on every computation and never stored.
type PolarityPoint struct {
	MessageID int64     `json:"message_id"`
	Timestamp time.Time `json:"timestamp"`
	Polarity  float64   `json:"polarity"`
}

// ShiftEvent marks an abrupt change in the smoothed series
type ShiftEvent struct {
	Index     int       `json:"index"`
	MessageID int64     `json:"message_id"`
	Timestamp time.Time `json:"timestamp"`
	Polarity  float64   `json:"polarity"`
	Reason    string    `json:"reason"` // crossed_zero, large_jump
}

// TrendResult is the full output of a mood-trend computation
type TrendResult struct {
	Polarities  []float64    `json:"polarities"`
	Smoothed    []float64    `json:"smoothed"`
	Slope       *float64     `json:"slope"`
	StartMean   float64      `json:"start_mean"`
	EndMean     float64      `json:"end_mean"`
	Delta       float64      `json:"delta"`
	Trend       string       `json:"trend"`
	ShiftEvents []ShiftEvent `json:"shift_points"`
}

// MoodTrendResponse is the trend query response
type MoodTrendResponse struct {
	UserID int64 `json:"user_id"`
	Count  int   `json:"count"`
	TrendResult
	Summary      string `json:"summary"`
	SummaryLabel string `json:"summary_label"`
}

// ConversationSentiment is the whole-history scalar for a user
type ConversationSentiment struct {
	AggregatePolarity *float64 `json:"conversation_sentiment"`
	Label             string   `json:"label"`
	SampleCount       int      `json:"count"`
}

// ConversationSentimentResponse is the conversation-sentiment query response
type ConversationSentimentResponse struct {
	UserID int64 `json:"user_id"`
	ConversationSentiment
}
