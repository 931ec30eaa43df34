package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// GeminiConfig configures a GeminiGenerator.
type GeminiConfig struct {
	APIKey     string
	Model      string
	Generation GenerationConfig
	// BaseURL overrides the Gemini API endpoint. Empty uses the SDK default.
	BaseURL string
	// HTTPClient overrides the transport. Nil uses the SDK default.
	HTTPClient *http.Client
}

// GeminiGenerator calls the Google Gemini API with a fixed model and
// generation config.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiGenerator constructs a generator. The API key is required.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key required")
	}
	model := normalizeModel(cfg.Model)
	if model == "" {
		model = DefaultGeminiModel
	}
	clientCfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	gen := cfg.Generation
	return &GeminiGenerator{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature:      genai.Ptr(gen.Temperature),
			TopP:             genai.Ptr(gen.TopP),
			TopK:             genai.Ptr(float32(gen.TopK)),
			MaxOutputTokens:  gen.MaxOutputTokens,
			ResponseMIMEType: gen.ResponseMIMEType,
		},
	}, nil
}

// Model returns the model identifier sent with each call.
func (g *GeminiGenerator) Model() string {
	return g.model
}

// GenerateText sends prompt as a single user turn and returns the text of
// the first candidate unmodified, even when blank. A response without
// candidates is an error.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}
	return resp.Text(), nil
}

func normalizeModel(model string) string {
	model = strings.TrimSpace(model)
	return strings.TrimPrefix(model, "models/")
}
