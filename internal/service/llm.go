package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/analytics"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/config"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

// ReplyGenerator produces the assistant's reply to a user message
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, history, userMessage string) (string, error)
}

// Summarizer writes a short natural-language summary of a mood trend
type Summarizer interface {
	Summarize(ctx context.Context, trend model.TrendResult) (string, error)
}

// LLM is a provider that can both reply and summarise
type LLM interface {
	ReplyGenerator
	Summarizer
}

// NewLLM builds the configured provider. Providers without credentials
// fall back to the mock so the chat flow keeps working offline.
func NewLLM(cfg *config.AIConfig) LLM {
	if !cfg.IsEnabled() {
		logrus.WithField("provider", cfg.Provider).Info("LLM API key not set, using mock reply generator")
		return NewMockLLM()
	}

	limiter := newLimiter(cfg)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		logrus.WithField("model", cfg.OpenAIModel).Info("Using OpenAI reply generator")
		return NewOpenAILLM(cfg, limiter)
	default:
		logrus.WithField("model", cfg.GeminiModel).Info("Using Gemini reply generator")
		return NewGeminiLLM(cfg, limiter)
	}
}

func newLimiter(cfg *config.AIConfig) *rate.Limiter {
	if cfg.RateInterval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(cfg.RateInterval), 1)
}

const replyTemplate = `
You are a helpful AI assistant.

The conversation so far is:
%s

User: %s

Reply naturally as the assistant:
`

// BuildReplyPrompt injects the transcript and the new message into the reply template
func BuildReplyPrompt(history, userMessage string) string {
	return fmt.Sprintf(replyTemplate, strings.TrimSpace(history), strings.TrimSpace(userMessage))
}

// BuildSummaryPrompt describes a trend result for the summarizer
func BuildSummaryPrompt(r model.TrendResult) string {
	slope := "N/A"
	if r.Slope != nil {
		slope = fmt.Sprintf("%.4f", *r.Slope)
	}

	var b strings.Builder
	b.WriteString("You are a helpful assistant that summarizes mood trends.\n\n")
	b.WriteString("Inputs:\n")
	fmt.Fprintf(&b, "- trend: %s\n", r.Trend)
	fmt.Fprintf(&b, "- start_mean: %.2f\n", r.StartMean)
	fmt.Fprintf(&b, "- end_mean: %.2f\n", r.EndMean)
	fmt.Fprintf(&b, "- delta: %.2f\n", r.Delta)
	fmt.Fprintf(&b, "- slope: %s\n", slope)
	fmt.Fprintf(&b, "- detected_shifts: %d (reasons: [%s])\n\n",
		len(r.ShiftEvents), strings.Join(analytics.ShiftReasons(r.ShiftEvents, 5), ", "))
	b.WriteString("Write a concise human-friendly summary (2-3 sentences) describing how the user's mood changed across the conversation and suggested next steps for the assistant if any.")
	return b.String()
}

// MockLLM echoes the user and declines to summarise
type MockLLM struct{}

// NewMockLLM creates the offline provider
func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

// GenerateReply returns a canned acknowledgement of the message
func (m *MockLLM) GenerateReply(_ context.Context, _ string, userMessage string) (string, error) {
	return fmt.Sprintf("I hear you. You said: %s", strings.TrimSpace(userMessage)), nil
}

// Summarize always fails so callers keep the templated summary
func (m *MockLLM) Summarize(context.Context, model.TrendResult) (string, error) {
	return "", ErrLLMDisabled
}
