package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/config"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

// GeminiLLM calls the Gemini generateContent endpoint
type GeminiLLM struct {
	config  *config.AIConfig
	client  *resty.Client
	limiter *rate.Limiter
}

// NewGeminiLLM creates a Gemini provider
func NewGeminiLLM(cfg *config.AIConfig, limiter *rate.Limiter) *GeminiLLM {
	return &GeminiLLM{
		config: cfg,
		client: resty.New().
			SetTimeout(cfg.Timeout).
			SetHeader("Content-Type", "application/json"),
		limiter: limiter,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateReply asks Gemini for the assistant's next turn
func (g *GeminiLLM) GenerateReply(ctx context.Context, history, userMessage string) (string, error) {
	return g.generate(ctx, BuildReplyPrompt(history, userMessage))
}

// Summarize asks Gemini to describe a mood trend
func (g *GeminiLLM) Summarize(ctx context.Context, trend model.TrendResult) (string, error) {
	return g.generate(ctx, BuildSummaryPrompt(trend))
}

func (g *GeminiLLM) generate(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	var out geminiResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.config.GeminiAPIKey).
		SetBody(geminiRequest{
			Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		}).
		SetResult(&out).
		Post(g.config.ModelEndpoint(g.config.GeminiModel))
	if err != nil {
		return "", fmt.Errorf("call Gemini: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("Gemini returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var texts []string
	if len(out.Candidates) > 0 {
		for _, part := range out.Candidates[0].Content.Parts {
			texts = append(texts, part.Text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, "")), nil
}
