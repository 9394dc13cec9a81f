package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers agrupa los handlers que monta el router.
type Handlers struct {
	Directory    *DirectoryHandler
	Contacts     *ContactsHandler
	Assistant    *AssistantHandler
	Users        *UserHandler
	Appointments *AppointmentHandler
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(logger *zap.Logger, h Handlers, tokens AccessTokenParser) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	facilities := r.Group("/facilities")
	facilities.GET("", h.Directory.ListFacilities)
	facilities.GET("/search", h.Directory.SearchFacilities)
	facilities.GET("/:id", h.Directory.GetFacility)
	facilities.GET("/:id/directions", h.Directory.Directions)

	r.GET("/barangays", h.Directory.ListBarangays)
	r.GET("/barangays/:name", h.Directory.GetBarangay)
	r.GET("/dashboard/summary", h.Directory.Summary)

	contacts := r.Group("/emergency-contacts")
	contacts.GET("", h.Contacts.ListContacts)
	contacts.GET("/:id/dial", h.Contacts.Dial)

	sessions := r.Group("/assistant/sessions")
	sessions.POST("", h.Assistant.CreateSession)
	sessions.GET("", h.Assistant.ListSessions)
	sessions.DELETE("/:id", h.Assistant.CloseSession)
	sessions.POST("/:id/messages", h.Assistant.PostMessage)
	sessions.GET("/:id/history", h.Assistant.History)
	sessions.DELETE("/:id/history", h.Assistant.ClearHistory)
	sessions.POST("/:id/tips/:category", h.Assistant.HealthTip)
	sessions.GET("/:id/transcript", h.Assistant.Transcript)

	auth := r.Group("/auth")
	auth.POST("/register", h.Users.Register)
	auth.POST("/login", h.Users.Login)
	auth.POST("/refresh", h.Users.RefreshToken)
	auth.POST("/logout", h.Users.Logout)

	appts := r.Group("/appointments", h.Appointments.RequireStorage, JWTAuthMiddleware(tokens))
	appts.POST("", h.Appointments.Create)
	appts.GET("", h.Appointments.List)
	appts.POST("/:id/cancel", h.Appointments.Cancel)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
