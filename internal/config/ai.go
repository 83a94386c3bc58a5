package config

import (
	"strings"
	"time"
)

// LLM providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// AIConfig holds all LLM-related configuration
type AIConfig struct {
	Provider string `json:"provider"`

	GeminiAPIKey  string `json:"-"` // Never serialize
	GeminiBaseURL string `json:"geminiBaseUrl"`
	GeminiModel   string `json:"geminiModel"`

	OpenAIAPIKey string `json:"-"`
	OpenAIModel  string `json:"openaiModel"`

	// Timeout bounds a single reply generation call
	Timeout time.Duration `json:"timeout"`

	// SummaryTimeout bounds the optional trend summary; the numeric trend never waits longer
	SummaryTimeout time.Duration `json:"summaryTimeout"`

	// RateInterval is the minimum spacing between provider calls
	RateInterval time.Duration `json:"rateInterval"`
}

// DefaultAIConfig returns the AI configuration from the environment.
// Without an explicit LLM_PROVIDER the provider follows whichever API key is set.
func DefaultAIConfig() *AIConfig {
	cfg := &AIConfig{
		Provider:       strings.ToLower(getEnv("LLM_PROVIDER", "")),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:  "https://generativelanguage.googleapis.com/v1beta/models",
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		Timeout:        getDurationEnv("LLM_TIMEOUT", 15*time.Second),
		SummaryTimeout: getDurationEnv("SUMMARY_TIMEOUT", 5*time.Second),
		RateInterval:   getDurationEnv("LLM_RATE_INTERVAL", 500*time.Millisecond),
	}

	if cfg.Provider == "" {
		switch {
		case cfg.GeminiAPIKey != "":
			cfg.Provider = ProviderGemini
		case cfg.OpenAIAPIKey != "":
			cfg.Provider = ProviderOpenAI
		default:
			cfg.Provider = ProviderMock
		}
	}
	return cfg
}

// IsEnabled returns true if the selected provider has credentials
func (c *AIConfig) IsEnabled() bool {
	switch c.Provider {
	case ProviderGemini:
		return c.GeminiAPIKey != ""
	case ProviderOpenAI:
		return c.OpenAIAPIKey != ""
	}
	return false
}

// ModelEndpoint returns the full Gemini endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.GeminiBaseURL + "/" + model + ":generateContent"
}
