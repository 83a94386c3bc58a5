// Package analytics turns per-message sentiment records into a smoothed mood
// series, a trend label and shift events. Everything here is a pure function
// of its inputs: no I/O, no shared state, safe for concurrent use.
package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

// Polarity assigned to label-only records
const (
	LabelPositivePolarity = 0.8
	LabelNegativePolarity = -0.8
)

// ExtractPolarity maps a sentiment record to a scalar polarity.
//
// A numeric Scores["polarity"] is returned unchanged (out-of-range values are
// not clamped). Otherwise the label decides: "positive" -> 0.8,
// "negative" -> -0.8, anything else 0. A nil record yields 0.
func ExtractPolarity(rec *model.SentimentRecord) float64 {
	if rec == nil {
		return 0.0
	}
	if p, ok := numericPolarity(rec.Scores); ok {
		return p
	}
	return labelPolarity(rec.Label)
}

func numericPolarity(scores map[string]interface{}) (float64, bool) {
	if scores == nil {
		return 0, false
	}
	v, ok := scores[model.ScorePolarity]
	if !ok || v == nil {
		return 0, false
	}

	var p float64
	switch n := v.(type) {
	case float64:
		p = n
	case float32:
		p = float64(n)
	case int:
		p = float64(n)
	case int8:
		p = float64(n)
	case int16:
		p = float64(n)
	case int32:
		p = float64(n)
	case int64:
		p = float64(n)
	case uint:
		p = float64(n)
	case uint8:
		p = float64(n)
	case uint16:
		p = float64(n)
	case uint32:
		p = float64(n)
	case uint64:
		p = float64(n)
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0, false
		}
		p = f
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		p = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		p = f
	default:
		return 0, false
	}

	// NaN and infinities cannot be averaged or encoded; use the label instead.
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, false
	}
	return p, true
}

func labelPolarity(label string) float64 {
	lbl := strings.ToLower(label)
	if strings.Contains(lbl, model.LabelPositive) {
		return LabelPositivePolarity
	}
	if strings.Contains(lbl, model.LabelNegative) {
		return LabelNegativePolarity
	}
	return 0.0
}
