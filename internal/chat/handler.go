package chat

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"das-backend/internal/llm"
	"das-backend/internal/shared/server/middleware"
	"das-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}

	answer, err := h.Svc.Answer(c.Request.Context(), req.Message)
	if err != nil {
		var genErr *llm.GenerationError
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Message is required")
		case errors.As(err, &genErr):
			respond.Error(c, http.StatusBadGateway, "generation_failed", "Failed to generate a response")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", err.Error())
		}
		return
	}

	source := "llm"
	if answer.Degraded {
		source = "fallback"
	}
	c.Set(middleware.AnswerSourceKey, source)

	respond.OK(c, gin.H{
		"response": answer.Response,
		"sources":  answer.Sources,
	})
}
