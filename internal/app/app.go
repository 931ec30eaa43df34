package app

import (
	"context"
	"fmt"
	"strings"

	"gamegen/pkg/ai"
)

// requiredMarker must appear in generated output for it to be accepted.
const requiredMarker = "Phaser"

// Config holds the dependencies of the core application.
type Config struct {
	Generator ai.TextGenerator
	// SystemPrompt defaults to DefaultSystemPrompt when blank.
	SystemPrompt string
}

// App turns game descriptions into Phaser.js code. It is immutable after New
// and safe for concurrent use.
type App struct {
	generator    ai.TextGenerator
	systemPrompt string
}

// New constructs the application.
func New(cfg Config) (*App, error) {
	if cfg.Generator == nil {
		return nil, fmt.Errorf("text generator required")
	}
	systemPrompt := cfg.SystemPrompt
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &App{
		generator:    cfg.Generator,
		systemPrompt: systemPrompt,
	}, nil
}

// SystemPrompt returns the instruction text prepended to every description.
func (a *App) SystemPrompt() string {
	return a.systemPrompt
}

// GenerateGame asks the generator for game code matching description.
// It makes at most one generator call and never retries. The returned code
// is trimmed of surrounding whitespace.
func (a *App) GenerateGame(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", ErrPromptRequired
	}
	text, err := a.generator.GenerateText(ctx, BuildPrompt(a.systemPrompt, description))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	code := strings.TrimSpace(text)
	if !strings.Contains(code, requiredMarker) {
		return "", ErrInvalidGameCode
	}
	return code, nil
}
