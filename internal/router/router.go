package router

import (
	"github.com/gin-gonic/gin"

	"simplimed/internal/handler"
	"simplimed/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	uploadH *handler.UploadHandler,
	analyzeH *handler.AnalyzeHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	api := r.Group("/api")
	api.GET("/test", healthH.Test)
	api.GET("/health", healthH.Health)
	api.POST("/upload", uploadH.Upload)
	api.POST("/analyze", analyzeH.Analyze)

	return r
}
