package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"das-backend/internal/chat"
	"das-backend/internal/documents"
	"das-backend/internal/extract"
	"das-backend/internal/llm"
	"das-backend/internal/llm/gemini"
	"das-backend/internal/llm/openai"
	"das-backend/internal/services/health"
	"das-backend/internal/shared/config"
	"das-backend/internal/shared/server"
	"das-backend/internal/shared/server/middleware"
	"das-backend/internal/shared/storage/object"
	localstore "das-backend/internal/shared/storage/object/local"
	s3store "das-backend/internal/shared/storage/object/s3"
	"das-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	Staging          object.ObjectStore
	Store            documents.Store
	Generator        llm.Generator
	DocumentsService *documents.Service
	ChatService      *chat.Service
	DocumentsHandler *documents.Handler
	ChatHandler      *chat.Handler
}

// Option overrides a dependency chosen by Build.
type Option func(*App)

// WithGenerator replaces the configured text-generation provider.
func WithGenerator(gen llm.Generator) Option {
	return func(a *App) {
		a.Generator = gen
	}
}

// WithStaging replaces the configured staging store.
func WithStaging(store object.ObjectStore) Option {
	return func(a *App) {
		a.Staging = store
	}
}

// Build prepares dependencies and wires the router.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.StagingStoreType) == "" {
		cfg.StagingStoreType = "local"
	}
	if cfg.OnGenerationError == "" {
		cfg.OnGenerationError = config.OnGenerationErrorDegrade
	}
	ctx := context.Background()

	app := &App{
		Config: cfg,
		Store:  documents.NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(app)
	}

	if app.Staging == nil {
		staging, err := buildStaging(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.Staging = staging
	}
	if app.Generator == nil {
		gen, err := buildGenerator(cfg)
		if err != nil {
			return nil, err
		}
		app.Generator = gen
	}

	app.DocumentsService = &documents.Service{
		Store:      app.Store,
		Staging:    app.Staging,
		Extractors: extract.NewRegistry(),
	}
	app.ChatService = &chat.Service{
		Docs:              app.Store,
		Generator:         app.Generator,
		OnGenerationError: cfg.OnGenerationError,
	}
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService, cfg.MaxUploadBytes)
	app.ChatHandler = chat.NewHandler(app.ChatService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Health:          health.NewService(),
		DocumentHandler: app.DocumentsHandler,
		ChatHandler:     app.ChatHandler,
		RateLimiter:     middleware.NewRateLimiter(nil),
	})

	return app, nil
}

func buildStaging(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.StagingStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("STAGING_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.StagingDir), nil
	}
}

func buildGenerator(cfg config.Config) (llm.Generator, error) {
	timeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second

	switch cfg.LLMProvider {
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			telemetry.Warn("bootstrap.llm_unconfigured", map[string]any{"provider": "openai", "reason": "OPENAI_API_KEY empty"})
			return llm.PlaceholderGenerator{}, nil
		}
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, openai.WithTimeout(timeout))
	case "gemini":
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			telemetry.Warn("bootstrap.llm_unconfigured", map[string]any{"provider": "gemini", "reason": "GEMINI_API_KEY empty"})
			return llm.PlaceholderGenerator{}, nil
		}
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel, gemini.WithTimeout(timeout))
	default:
		return llm.PlaceholderGenerator{}, nil
	}
}
