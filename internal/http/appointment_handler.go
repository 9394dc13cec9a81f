package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nagacare/internal/service"
)

// AppointmentHandler expone el flujo de turnos. Requiere RequireStorage y JWTAuthMiddleware.
type AppointmentHandler struct {
	logger *zap.Logger
	appts  *service.AppointmentService
}

func NewAppointmentHandler(logger *zap.Logger, appts *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{logger: logger, appts: appts}
}

// RequireStorage corta con 503 antes de autenticar cuando no hay base de datos.
func (h *AppointmentHandler) RequireStorage(c *gin.Context) {
	if !h.appts.Available() {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "appointments unavailable"})
		return
	}
	c.Next()
}

// Create maneja POST /appointments.
func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	var req struct {
		FacilityID  string    `json:"facility_id" binding:"required"`
		Service     string    `json:"service"`
		ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
		Notes       string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid appointment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	appt, err := h.appts.Request(c.Request.Context(), service.RequestAppointmentInput{
		UserID:      userID,
		FacilityID:  req.FacilityID,
		Service:     req.Service,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		h.writeError(c, "request appointment failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// List maneja GET /appointments.
func (h *AppointmentHandler) List(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	appts, err := h.appts.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "list appointments failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// Cancel maneja POST /appointments/:id/cancel.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	appt, err := h.appts.Cancel(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, "cancel appointment failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

func (h *AppointmentHandler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrAppointmentServiceNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "appointments unavailable"})
	case errors.Is(err, service.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
	case errors.Is(err, service.ErrAppointmentAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAppointmentInvalidInput),
		errors.Is(err, service.ErrAppointmentInPast),
		errors.Is(err, service.ErrAppointmentUnknownFacility),
		errors.Is(err, service.ErrAppointmentServiceNotOffered):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process appointment"})
	}
}
