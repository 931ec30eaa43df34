package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"gamegen/pkg/ai"
)

// ConfigPath is the optional config file read when no path is given.
const ConfigPath = "config.yaml"

// DefaultPort is used when neither config nor PORT sets one.
const DefaultPort = "5000"

// GenerationSection configures the external text generator.
// Nil sampling fields fall back to ai.DefaultGenerationConfig.
type GenerationSection struct {
	Provider         string   `yaml:"provider"`
	Model            string   `yaml:"model"`
	APIKey           string   `yaml:"apiKey"`
	BaseURL          string   `yaml:"baseURL"`
	Temperature      *float32 `yaml:"temperature"`
	TopP             *float32 `yaml:"topP"`
	TopK             *int32   `yaml:"topK"`
	MaxOutputTokens  *int32   `yaml:"maxOutputTokens"`
	ResponseMIMEType string   `yaml:"responseMimeType"`
}

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port             string            `yaml:"port"`
	LogLevel         string            `yaml:"logLevel"`
	Generation       GenerationSection `yaml:"generation"`
	SystemPrompt     string            `yaml:"systemPrompt"`
	SystemPromptFile string            `yaml:"systemPromptFile"`
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads config from path, then applies environment overrides and
// defaults. An empty path reads ConfigPath if it exists.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	explicit := path != ""
	if !explicit {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	if cfg.SystemPromptFile != "" {
		prompt, err := os.ReadFile(cfg.SystemPromptFile)
		if err != nil {
			return cfg, fmt.Errorf("read system prompt: %w", err)
		}
		cfg.SystemPrompt = string(prompt)
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *FileConfig) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = strings.TrimSpace(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	gen := &cfg.Generation
	if v := os.Getenv("GENERATION_PROVIDER"); v != "" {
		gen.Provider = v
	}
	if v := os.Getenv("GENERATION_MODEL"); v != "" {
		gen.Model = v
	}
	if v := os.Getenv("GENERATION_BASE_URL"); v != "" {
		gen.BaseURL = v
	}
	// GEMINI_API_KEY is a Google credential; it must never reach another provider.
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && isGemini(gen.Provider) {
		gen.APIKey = v
	}
	if v := os.Getenv("GENERATION_API_KEY"); v != "" {
		gen.APIKey = v
	}
	if v := os.Getenv("GENERATION_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
		if err != nil {
			return fmt.Errorf("config: invalid GENERATION_TEMPERATURE: %w", err)
		}
		t := float32(f)
		gen.Temperature = &t
	}
	if v := os.Getenv("GENERATION_TOP_P"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
		if err != nil {
			return fmt.Errorf("config: invalid GENERATION_TOP_P: %w", err)
		}
		p := float32(f)
		gen.TopP = &p
	}
	if v := os.Getenv("GENERATION_TOP_K"); v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return fmt.Errorf("config: invalid GENERATION_TOP_K: %w", err)
		}
		k := int32(n)
		gen.TopK = &k
	}
	if v := os.Getenv("GENERATION_MAX_OUTPUT_TOKENS"); v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return fmt.Errorf("config: invalid GENERATION_MAX_OUTPUT_TOKENS: %w", err)
		}
		m := int32(n)
		gen.MaxOutputTokens = &m
	}
	if v := os.Getenv("SYSTEM_PROMPT_FILE"); v != "" {
		cfg.SystemPromptFile = strings.TrimSpace(v)
	}
	return nil
}

func isGemini(provider string) bool {
	provider = strings.ToLower(strings.TrimSpace(provider))
	return provider == "" || provider == ai.ProviderGemini
}

func applyDefaults(cfg *FileConfig) {
	if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = DefaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	gen := &cfg.Generation
	gen.Provider = strings.ToLower(strings.TrimSpace(gen.Provider))
	if gen.Provider == "" {
		gen.Provider = ai.ProviderGemini
	}
	if gen.Provider == ai.ProviderGemini && strings.TrimSpace(gen.Model) == "" {
		gen.Model = ai.DefaultGeminiModel
	}
	defaults := ai.DefaultGenerationConfig()
	if gen.Temperature == nil {
		gen.Temperature = &defaults.Temperature
	}
	if gen.TopP == nil {
		gen.TopP = &defaults.TopP
	}
	if gen.TopK == nil {
		gen.TopK = &defaults.TopK
	}
	if gen.MaxOutputTokens == nil {
		gen.MaxOutputTokens = &defaults.MaxOutputTokens
	}
	if gen.ResponseMIMEType == "" {
		gen.ResponseMIMEType = defaults.ResponseMIMEType
	}
}

func validateConfig(cfg FileConfig) error {
	if n, err := strconv.Atoi(cfg.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("config: invalid port %q", cfg.Port)
	}
	gen := cfg.Generation
	switch gen.Provider {
	case ai.ProviderGemini:
		if strings.TrimSpace(gen.APIKey) == "" {
			return errors.New("config: gemini api key is required (set GEMINI_API_KEY or generation.apiKey in config.yaml)")
		}
	case ai.ProviderOpenAICompat:
		if strings.TrimSpace(gen.BaseURL) == "" {
			return errors.New("config: generation.baseURL is required for openai-compat (set in config.yaml or GENERATION_BASE_URL)")
		}
		if strings.TrimSpace(gen.Model) == "" {
			return errors.New("config: generation.model is required for openai-compat (set in config.yaml or GENERATION_MODEL)")
		}
	default:
		return fmt.Errorf("config: unknown generation provider %q", gen.Provider)
	}
	if *gen.Temperature < 0 {
		return errors.New("config: generation.temperature must be >= 0")
	}
	if *gen.TopP < 0 || *gen.TopP > 1 {
		return errors.New("config: generation.topP must be within [0, 1]")
	}
	if *gen.TopK < 0 {
		return errors.New("config: generation.topK must be >= 0")
	}
	if *gen.MaxOutputTokens <= 0 {
		return errors.New("config: generation.maxOutputTokens must be > 0")
	}
	return nil
}

// Sampling returns the immutable sampling parameters for the generator.
// Call only on a config returned by Load.
func (c FileConfig) Sampling() ai.GenerationConfig {
	gen := c.Generation
	return ai.GenerationConfig{
		Temperature:      *gen.Temperature,
		TopP:             *gen.TopP,
		TopK:             *gen.TopK,
		MaxOutputTokens:  *gen.MaxOutputTokens,
		ResponseMIMEType: gen.ResponseMIMEType,
	}
}

// ProviderConfig returns the generator selection derived from the config.
func (c FileConfig) ProviderConfig() ai.ProviderConfig {
	return ai.ProviderConfig{
		Provider:   c.Generation.Provider,
		Model:      c.Generation.Model,
		APIKey:     c.Generation.APIKey,
		BaseURL:    c.Generation.BaseURL,
		Generation: c.Sampling(),
	}
}
