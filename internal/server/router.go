package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/casalivre/casalivre-backend/internal/handlers"
	"github.com/casalivre/casalivre-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName          string
	RequestLogMiddleware *middleware.RequestLogMiddleware
	DocumentHandler      *handlers.DocumentHandler
	TemplateHandler      *handlers.TemplateHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "casalivre-backend"
	}
	router.Use(otelgin.Middleware(serviceName))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	if cfg.RequestLogMiddleware != nil {
		router.Use(cfg.RequestLogMiddleware.Log())
	}

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Templates
		api.GET("/templates", cfg.TemplateHandler.List)
		api.GET("/templates/lint", cfg.TemplateHandler.Lint)
		// Documents
		api.POST("/documents", cfg.DocumentHandler.Create)
		api.GET("/documents/:id", cfg.DocumentHandler.Get)
		api.POST("/documents/:id/finalize", cfg.DocumentHandler.Finalize)
		api.POST("/documents/:id/send", cfg.DocumentHandler.Send)
		api.POST("/documents/:id/cancel", cfg.DocumentHandler.Cancel)
		api.GET("/documents/:id/pdf", cfg.DocumentHandler.GetPDF)
		api.POST("/documents/expire-sweep", cfg.DocumentHandler.ExpireSweep)
		// Signatures
		api.POST("/signatures/:id/sign", cfg.DocumentHandler.Sign)
		api.POST("/signatures/:id/refuse", cfg.DocumentHandler.Refuse)
	}

	return router
}
