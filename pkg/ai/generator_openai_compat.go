package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAICompatConfig configures an OpenAICompatGenerator.
type OpenAICompatConfig struct {
	// BaseURL should include the /v1 prefix, e.g. "http://localhost:8000/v1".
	BaseURL string
	// APIKey can be empty for local models without authentication.
	APIKey     string
	Model      string
	Generation GenerationConfig
	HTTPClient *http.Client
}

// OpenAICompatGenerator calls any OpenAI-compatible /chat/completions endpoint
// (vLLM, LiteLLM, LocalAI, OpenRouter, OpenAI itself).
// TopK and ResponseMIMEType have no chat-completions equivalent and are not sent.
type OpenAICompatGenerator struct {
	client openai.Client
	params openai.ChatCompletionNewParams
}

// NewOpenAICompatGenerator builds a generator. SDK retries are disabled.
func NewOpenAICompatGenerator(cfg OpenAICompatConfig) (*OpenAICompatGenerator, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("openai-compat base url required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("openai-compat generation model required")
	}
	opts := []option.RequestOption{
		option.WithBaseURL(baseURL + "/"),
		option.WithMaxRetries(0),
	}
	if apiKey := strings.TrimSpace(cfg.APIKey); apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	gen := cfg.Generation
	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(model),
		Temperature: openai.Float(float64(gen.Temperature)),
		TopP:        openai.Float(float64(gen.TopP)),
	}
	if gen.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(int64(gen.MaxOutputTokens))
	}
	return &OpenAICompatGenerator{
		client: openai.NewClient(opts...),
		params: params,
	}, nil
}

// GenerateText implements TextGenerator using the chat completions API.
// The first choice's content is returned unmodified, even when blank.
func (g *OpenAICompatGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	params := g.params
	params.Messages = []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}
	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai-compat request: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai-compat api")
	}
	return completion.Choices[0].Message.Content, nil
}
