package llm

import (
	"context"
	"errors"
	"fmt"
)

// Generator produces a free-text answer for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationError reports a failed call to a text-generation provider.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ErrNotConfigured is returned by the placeholder generator.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderGenerator is used when no provider is configured. Every call
// fails, so callers fall back to their degraded answer.
type PlaceholderGenerator struct{}

// Generate returns a GenerationError wrapping ErrNotConfigured.
func (PlaceholderGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", &GenerationError{Provider: "none", Err: ErrNotConfigured}
}
