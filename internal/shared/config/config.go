package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	// DefaultMaxUploadBytes is the per-file upload ceiling enforced by the transport.
	DefaultMaxUploadBytes int64 = 10 << 20

	// OnGenerationErrorDegrade answers with a canned message when generation fails.
	OnGenerationErrorDegrade = "degrade"
	// OnGenerationErrorPropagate surfaces generation failures to the caller.
	OnGenerationErrorPropagate = "propagate"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	LLMProvider       string
	LLMModel          string
	GeminiAPIKey      string
	OpenAIAPIKey      string
	LLMTimeoutSeconds int
	OnGenerationError string
	StagingStoreType  string
	StagingDir        string
	AWSRegion         string
	S3Bucket          string
	S3Prefix          string
	SSEKMSKeyID       string
	MaxUploadBytes    int64
	ChatRateLimitRPS  float64
	ChatRateBurst     int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:              getEnv("PORT", "3000"),
		Env:               normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3001")),
		LLMProvider:       normalizeProvider(getEnv("LLM_PROVIDER", "gemini")),
		LLMModel:          getEnv("LLM_MODEL", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		LLMTimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 60),
		OnGenerationError: normalizeGenerationPolicy(getEnv("CHAT_ON_GENERATION_ERROR", OnGenerationErrorDegrade)),
		StagingStoreType:  normalizeStoreType(getEnv("STAGING_STORE", "local")),
		StagingDir:        getEnv("STAGING_DIR", os.TempDir()),
		AWSRegion:         getEnv("AWS_REGION", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", "staging/"),
		SSEKMSKeyID:       getEnv("SSE_KMS_KEY_ID", ""),
		MaxUploadBytes:    getEnvInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		ChatRateLimitRPS:  getEnvFloat("RATE_LIMIT_CHAT_RPS", 2),
		ChatRateBurst:     getEnvInt("RATE_LIMIT_CHAT_BURST", 10),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return def
	}
	return val
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "none", "off", "":
		return "none"
	default:
		return "gemini"
	}
}

func normalizeGenerationPolicy(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), OnGenerationErrorPropagate) {
		return OnGenerationErrorPropagate
	}
	return OnGenerationErrorDegrade
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
