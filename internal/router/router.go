package router

import (
	"github.com/gin-gonic/gin"

	"screenguard/internal/handler"
	"screenguard/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(statusH *handler.StatusHandler, screenshotH *handler.ScreenshotHandler) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	r.GET("/status", statusH.Status)
	r.POST("/process_screenshot/", screenshotH.Process)

	return r
}
