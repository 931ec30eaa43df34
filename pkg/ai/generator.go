package ai

import (
	"context"
	"fmt"
	"strings"
)

// TextGenerator produces text for a single-turn prompt.
// Implementations are bound to a model and GenerationConfig at construction,
// keep no per-call state, and are safe for concurrent use.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Supported provider names.
const (
	ProviderGemini       = "gemini"
	ProviderOpenAICompat = "openai-compat"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GenerationConfig holds the sampling parameters sent with every call.
type GenerationConfig struct {
	Temperature      float32
	TopP             float32
	TopK             int32
	MaxOutputTokens  int32
	ResponseMIMEType string
}

// DefaultGenerationConfig returns the sampling parameters the service ships with.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:      1,
		TopP:             0.95,
		TopK:             64,
		MaxOutputTokens:  8192,
		ResponseMIMEType: "text/plain",
	}
}

// ProviderConfig selects and configures a TextGenerator.
type ProviderConfig struct {
	Provider   string
	Model      string
	APIKey     string
	BaseURL    string
	Generation GenerationConfig
}

// NewTextGenerator builds the generator named by cfg.Provider.
// An empty provider means gemini.
func NewTextGenerator(ctx context.Context, cfg ProviderConfig) (TextGenerator, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}
	switch provider {
	case ProviderGemini:
		return NewGeminiGenerator(ctx, GeminiConfig{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Generation: cfg.Generation,
		})
	case ProviderOpenAICompat:
		return NewOpenAICompatGenerator(OpenAICompatConfig{
			BaseURL:    cfg.BaseURL,
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Generation: cfg.Generation,
		})
	default:
		return nil, fmt.Errorf("unknown generation provider: %s", provider)
	}
}
