package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports liveness and whether payments are configured
func Health(paymentsConfigured bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":             "healthy",
			"timestamp":          time.Now().UTC().Format(time.RFC3339),
			"paymentsConfigured": paymentsConfigured,
		})
	}
}
