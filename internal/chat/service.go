package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"das-backend/internal/llm"
	"das-backend/internal/shared/config"
	"das-backend/internal/shared/metrics"
	"das-backend/internal/shared/telemetry"
)

// FallbackResponse is returned in place of a generated answer when the
// provider fails and the service degrades.
const FallbackResponse = "I've analyzed your documents and I'm ready to answer questions. Please ask me anything about the uploaded content."

// ErrValidation marks an unusable question.
var ErrValidation = errors.New("validation error")

// DocumentSource is the read side of the document corpus.
type DocumentSource interface {
	AllContent(ctx context.Context) ([]string, error)
	FileNames(ctx context.Context) ([]string, error)
}

// Answer is the reply to a single question.
type Answer struct {
	Response string
	Sources  []string
	Degraded bool
}

// Service answers questions against the document corpus. It keeps no
// conversational state between calls.
type Service struct {
	Docs      DocumentSource
	Generator llm.Generator
	// OnGenerationError is config.OnGenerationErrorDegrade (default) or
	// config.OnGenerationErrorPropagate.
	OnGenerationError string
}

// Answer builds a prompt from every stored document plus question and asks
// the generator for a reply. Sources always lists every stored file name.
// A canceled caller context does not stop the call; the generator's own
// timeout bounds it.
func (s *Service) Answer(ctx context.Context, question string) (Answer, error) {
	if strings.TrimSpace(question) == "" {
		return Answer{}, fmt.Errorf("%w: message is required", ErrValidation)
	}
	ctx = context.WithoutCancel(ctx)

	docContext, err := s.BuildContext(ctx)
	if err != nil {
		return Answer{}, err
	}
	sources, err := s.Docs.FileNames(ctx)
	if err != nil {
		return Answer{}, fmt.Errorf("load document names: %w", err)
	}
	if sources == nil {
		sources = []string{}
	}

	start := time.Now()
	response, err := s.Generator.Generate(ctx, buildPrompt(docContext, question))
	metrics.ObserveGenerationDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		var genErr *llm.GenerationError
		if !errors.As(err, &genErr) {
			genErr = &llm.GenerationError{Provider: "unknown", Err: err}
		}
		if s.OnGenerationError == config.OnGenerationErrorPropagate {
			metrics.IncChatFailed()
			return Answer{}, genErr
		}

		metrics.IncChatFallback()
		telemetry.Warn("chat.generation_fallback", map[string]any{
			"provider":  genErr.Provider,
			"error":     genErr.Err,
			"documents": len(sources),
		})
		return Answer{Response: FallbackResponse, Sources: sources, Degraded: true}, nil
	}

	metrics.IncChatAnswered()
	return Answer{Response: response, Sources: sources}, nil
}
