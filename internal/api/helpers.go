// Package api implements the HTTP API for the service.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondData sends a 200 success envelope with the given payload.
func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondError sends a JSON error envelope. The message is the only detail
// exposed to callers; internal error text never leaves the service.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondBadRequest sends a 400 with message.
func respondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}

// respondUnauthorized sends a 401.
func respondUnauthorized(c *gin.Context) {
	respondError(c, http.StatusUnauthorized, "authentication required")
}

// respondInternalError sends a 500 with a fixed generic message.
func respondInternalError(c *gin.Context) {
	respondError(c, http.StatusInternalServerError, "internal server error")
}
