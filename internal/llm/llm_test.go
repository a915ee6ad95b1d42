package llm

import (
	"context"
	"errors"
	"testing"
)

func TestPlaceholderGeneratorFails(t *testing.T) {
	_, err := PlaceholderGenerator{}.Generate(context.Background(), "prompt")

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err.Error() != "none generation failed: LLM provider not configured" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
