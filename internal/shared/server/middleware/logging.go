package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"das-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log.
const (
	FilesCountKey   = "filesCount"
	FilesFailedKey  = "filesFailed"
	AnswerSourceKey = "answerSource"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		for _, key := range []string{FilesCountKey, FilesFailedKey, AnswerSourceKey} {
			if v, ok := c.Get(key); ok {
				fields[toSnake(key)] = v
			}
		}
		telemetry.Info("request.complete", fields)
	}
}

func toSnake(key string) string {
	var b strings.Builder
	for i, r := range key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
