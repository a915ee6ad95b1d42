package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"das-backend/internal/chat"
	"das-backend/internal/documents"
	"das-backend/internal/services/health"
	"das-backend/internal/shared/config"
	"das-backend/internal/shared/metrics"
	"das-backend/internal/shared/server/middleware"
	"das-backend/internal/shared/server/respond"
)

const chatRateLimitGroup = "CHAT"

// RouterDeps holds the handlers mounted by NewRouter.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	DocumentHandler *documents.Handler
	ChatHandler     *chat.Handler
	RateLimiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:   chatRules(deps.Config),
			Limiter: deps.RateLimiter,
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/chat" {
					return chatRateLimitGroup
				}
				return ""
			},
		}),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}
	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Route not found")
	})

	return r
}

func chatRules(cfg config.Config) map[string]middleware.RateLimitRule {
	if cfg.ChatRateLimitRPS <= 0 || cfg.ChatRateBurst <= 0 {
		return nil
	}
	return map[string]middleware.RateLimitRule{
		chatRateLimitGroup: {Rate: cfg.ChatRateLimitRPS, Burst: cfg.ChatRateBurst},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3000"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
