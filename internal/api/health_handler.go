package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	service string
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service, version string) *HealthHandler {
	return &HealthHandler{service: service, version: version}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.service,
		"version": h.version,
	})
}
