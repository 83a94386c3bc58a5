package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/config"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

// maxClassifierRunes is how much of a message is sent to the classifier
const maxClassifierRunes = 512

// Classifier turns a text into a sentiment classification. Implementations
// never fail: any error yields NeutralClassification.
type Classifier interface {
	Classify(ctx context.Context, text string) model.Classification
}

// NeutralClassification is the result used whenever classification fails
func NeutralClassification() model.Classification {
	return model.Classification{
		Label:      model.LabelNeutral,
		Confidence: 0.5,
		Polarity:   0.0,
		Raw:        map[string]float64{},
	}
}

// NewClassifier returns the HTTP classifier when an endpoint is configured,
// otherwise the keyword classifier.
func NewClassifier(cfg *config.SentimentConfig) Classifier {
	if cfg == nil || !cfg.IsEnabled() {
		logrus.Info("SENTIMENT_API_URL not set, using keyword sentiment classifier")
		return NewKeywordClassifier()
	}
	return NewHTTPClassifier(cfg)
}

// HTTPClassifier calls a Hugging Face style text-classification endpoint.
// The HTTP client is built on first use.
type HTTPClassifier struct {
	cfg *config.SentimentConfig

	once   sync.Once
	client *resty.Client
}

// NewHTTPClassifier creates a classifier for cfg.APIURL
func NewHTTPClassifier(cfg *config.SentimentConfig) *HTTPClassifier {
	return &HTTPClassifier{cfg: cfg}
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *HTTPClassifier) httpClient() *resty.Client {
	c.once.Do(func() {
		timeout := c.cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client := resty.New().
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("User-Agent", "chatbot-sentiment/1.0")
		if c.cfg.APIToken != "" {
			client.SetAuthToken(c.cfg.APIToken)
		}
		c.client = client
	})
	return c.client
}

// Classify posts the text and normalises the returned label scores
func (c *HTTPClassifier) Classify(ctx context.Context, text string) model.Classification {
	entries, err := c.fetch(ctx, truncateRunes(text, maxClassifierRunes))
	if err != nil {
		logrus.WithError(err).WithField("endpoint", c.cfg.APIURL).Warn("Sentiment classifier failed, using neutral fallback")
		return NeutralClassification()
	}
	result, ok := classificationFromScores(entries)
	if !ok {
		logrus.WithField("endpoint", c.cfg.APIURL).Warn("Sentiment classifier returned no scores, using neutral fallback")
		return NeutralClassification()
	}
	return result
}

func (c *HTTPClassifier) fetch(ctx context.Context, text string) ([]labelScore, error) {
	resp, err := c.httpClient().R().
		SetContext(ctx).
		SetBody(map[string]string{"inputs": text}).
		Post(c.cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("request classifier: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return decodeLabelScores(resp.Body())
}

// decodeLabelScores accepts both [[{label,score}]] and [{label,score}]
func decodeLabelScores(body []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}
	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}
	return flat, nil
}

// classificationFromScores sums scores per normalised label, renormalises
// them and picks the top label. ok is false when there is nothing to rank.
func classificationFromScores(entries []labelScore) (model.Classification, bool) {
	scores := make(map[string]float64, len(entries))
	for _, e := range entries {
		scores[NormalizeLabel(e.Label)] += e.Score
	}
	if len(scores) == 0 {
		return model.Classification{}, false
	}

	total := 0.0
	for _, v := range scores {
		total += v
	}
	if total == 0 {
		total = 1
	}
	for k := range scores {
		scores[k] /= total
	}

	top, topScore := "", -1.0
	for label, score := range scores {
		// Ties resolve alphabetically so results are stable
		if score > topScore || (score == topScore && label < top) {
			top, topScore = label, score
		}
	}

	return model.Classification{
		Label:      top,
		Confidence: topScore,
		Polarity:   polarityFromProbabilities(scores),
		Raw:        scores,
	}, true
}

// polarityFromProbabilities maps class probabilities to p_pos - p_neg after renormalising
// over the three known labels.
func polarityFromProbabilities(scores map[string]float64) float64 {
	pos := scores[model.LabelPositive]
	neg := scores[model.LabelNegative]
	neu := scores[model.LabelNeutral]
	sum := pos + neu + neg
	if sum <= 0 {
		return 0
	}
	return (pos - neg) / sum
}

var labelAliases = map[string]string{
	"label_0": model.LabelNegative,
	"label_1": model.LabelNeutral,
	"label_2": model.LabelPositive,
}

// NormalizeLabel maps classifier labels such as LABEL_0, "2" or "Positive"
// onto negative, neutral or positive. Unknown labels come back lowercased.
func NormalizeLabel(raw string) string {
	if raw == "" {
		return model.LabelNeutral
	}
	lower := strings.ToLower(strings.TrimSpace(raw))
	if mapped, ok := labelAliases[lower]; ok {
		return mapped
	}
	if idx, err := strconv.Atoi(lower); err == nil {
		switch idx {
		case 0:
			return model.LabelNegative
		case 1:
			return model.LabelNeutral
		case 2:
			return model.LabelPositive
		}
	}
	switch {
	case strings.Contains(lower, "neg"):
		return model.LabelNegative
	case strings.Contains(lower, "pos"):
		return model.LabelPositive
	case strings.Contains(lower, "neu"):
		return model.LabelNeutral
	}
	return lower
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// KeywordClassifier is the offline classifier used when no endpoint is configured
type KeywordClassifier struct {
	positive []string
	negative []string
}

// NewKeywordClassifier creates a keyword classifier with the default word lists
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		positive: []string{"good", "great", "excellent", "love", "awesome", "fantastic", "happy", "thanks", "glad", "wonderful", "nice", "helpful"},
		negative: []string{"bad", "terrible", "awful", "hate", "broken", "sad", "angry", "upset", "worst", "annoyed", "fail", "problem"},
	}
}

// Classify counts keyword hits and converts them into class probabilities
func (k *KeywordClassifier) Classify(_ context.Context, text string) model.Classification {
	content := strings.ToLower(text)

	pos, neg := 0, 0
	for _, word := range k.positive {
		if strings.Contains(content, word) {
			pos++
		}
	}
	for _, word := range k.negative {
		if strings.Contains(content, word) {
			neg++
		}
	}

	total := float64(pos+neg) + 0.5
	result, _ := classificationFromScores([]labelScore{
		{Label: model.LabelPositive, Score: float64(pos) / total},
		{Label: model.LabelNegative, Score: float64(neg) / total},
		{Label: model.LabelNeutral, Score: 0.5 / total},
	})
	if pos == neg {
		result.Label = model.LabelNeutral
		result.Confidence = result.Raw[model.LabelNeutral]
	}
	return result
}
