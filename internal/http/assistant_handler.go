package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nagacare/internal/assistant"
	"nagacare/internal/service"
)

// AssistantHandler mantiene dependencias para el panel del asistente.
type AssistantHandler struct {
	logger      *zap.Logger
	registry    *assistant.Registry
	limiter     service.RateLimiter
	transcripts *service.TranscriptService
}

// NewAssistantHandler crea el handler. limiter y transcripts pueden ser nil.
func NewAssistantHandler(
	logger *zap.Logger,
	registry *assistant.Registry,
	limiter service.RateLimiter,
	transcripts *service.TranscriptService,
) *AssistantHandler {
	return &AssistantHandler{
		logger:      logger,
		registry:    registry,
		limiter:     limiter,
		transcripts: transcripts,
	}
}

// CreateSession maneja POST /assistant/sessions.
func (h *AssistantHandler) CreateSession(c *gin.Context) {
	conv, _ := h.registry.Open("")
	h.logger.Info("assistant session opened", zap.String("session_id", conv.ID()))
	c.JSON(http.StatusCreated, gin.H{"session": conv.Session()})
}

// ListSessions maneja GET /assistant/sessions.
func (h *AssistantHandler) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": h.registry.Sessions()})
}

// CloseSession maneja DELETE /assistant/sessions/:id.
func (h *AssistantHandler) CloseSession(c *gin.Context) {
	if !h.registry.Close(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// PostMessage maneja POST /assistant/sessions/:id/messages.
func (h *AssistantHandler) PostMessage(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid assistant message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	conv, ok := h.conversation(c)
	if !ok || !h.allow(c, conv.ID()) {
		return
	}

	reply, err := conv.SendMessage(c.Request.Context(), req.Content)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty message"})
			return
		}
		h.logger.Error("assistant message failed", zap.String("session_id", conv.ID()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply, "history": conv.History()})
}

// History maneja GET /assistant/sessions/:id/history.
func (h *AssistantHandler) History(c *gin.Context) {
	conv, ok := h.conversation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": conv.History()})
}

// ClearHistory maneja DELETE /assistant/sessions/:id/history.
func (h *AssistantHandler) ClearHistory(c *gin.Context) {
	conv, ok := h.conversation(c)
	if !ok {
		return
	}
	conv.Clear()
	c.Status(http.StatusNoContent)
}

// HealthTip maneja POST /assistant/sessions/:id/tips/:category.
func (h *AssistantHandler) HealthTip(c *gin.Context) {
	category, err := assistant.ParseTipCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "unknown tip category",
			"categories": assistant.TipCategories(),
		})
		return
	}

	conv, ok := h.conversation(c)
	if !ok || !h.allow(c, conv.ID()) {
		return
	}

	reply, err := conv.HealthTip(c.Request.Context(), category)
	if err != nil {
		h.logger.Error("health tip failed", zap.String("session_id", conv.ID()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get health tip"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "reply": reply})
}

// Transcript maneja GET /assistant/sessions/:id/transcript. Lee lo persistido,
// sobrevive a Clear y al vencimiento de la sesion en memoria.
func (h *AssistantHandler) Transcript(c *gin.Context) {
	messages, err := h.transcripts.ListBySession(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTranscriptNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "transcript storage not configured"})
			return
		}
		h.logger.Error("list transcript failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list transcript"})
		return
	}
	if c.Query("format") == "text" {
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.String(http.StatusOK, service.FormatTranscript(messages))
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *AssistantHandler) conversation(c *gin.Context) (*assistant.Conversation, bool) {
	conv, ok := h.registry.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return conv, true
}

func (h *AssistantHandler) allow(c *gin.Context, sessionID string) bool {
	if h.limiter == nil || h.limiter.Allow(sessionID) {
		return true
	}
	h.logger.Warn("assistant rate limited", zap.String("session_id", sessionID))
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	return false
}
