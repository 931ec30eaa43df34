package app

import "errors"

var (
	// ErrPromptRequired indicates a missing or blank game description.
	ErrPromptRequired = errors.New("prompt required")
	// ErrInvalidGameCode indicates the model answered without referencing Phaser.
	ErrInvalidGameCode = errors.New("invalid phaser game code")
	// ErrGenerationFailed wraps any failure of the external generator call.
	ErrGenerationFailed = errors.New("generation failed")
)
