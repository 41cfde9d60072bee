// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/gin-gonic/gin"

	"awaaz/internal/config"
	"awaaz/internal/handler"
	"awaaz/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	processH *handler.ProcessHandler,
	documentH *handler.DocumentHandler,
	sessionH *handler.SessionHandler,
	renderH *handler.RenderHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Dialogue engine
	v1.POST("/process", processH.ProcessTurn)

	// Document photo extraction
	v1.POST("/documents/extract", documentH.ExtractDocument)

	// Session persistence
	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.SaveSession)
	sessions.GET("", sessionH.ListSessions)
	sessions.GET("/:id", sessionH.GetSession)
	sessions.PUT("/:id", sessionH.SaveSession)
	sessions.GET("/:id/document", renderH.GetDocumentURL)

	// Form rendering and export
	v1.POST("/generate-pdf", renderH.GeneratePDF)
	v1.GET("/export", exportH.Export)

	return r
}
