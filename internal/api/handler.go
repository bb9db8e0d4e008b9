package api

import (
	"net/http"

	"cloudhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getUserIDFromContext pulls the authenticated user's ID set by the auth
// middleware. Writes the error response itself when absent.
func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	userID, ok := userIDValue.(uint)
	if !ok {
		logger.L.Error("Invalid userID type in context", zap.Any("userIDValue", userIDValue))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID in context"})
		return 0, false
	}
	return userID, true
}
