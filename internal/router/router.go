package router

import (
	"github.com/gin-gonic/gin"

	"receiptscan/internal/handler"
	"receiptscan/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(scanH *handler.ScanHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")
	v1.POST("/scan", scanH.Scan)
	v1.POST("/scan/file", scanH.ScanFile)

	return r
}
