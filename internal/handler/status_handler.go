package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusHandler handles the liveness endpoint.
type StatusHandler struct{}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Status handles GET /status
func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "API is running",
		"message": "Welcome to the OCR & Threat Detection API!",
	})
}
