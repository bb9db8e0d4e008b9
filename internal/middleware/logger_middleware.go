package middleware

import (
	"net/http"
	"strings"
	"time"

	"cloudhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// redactPath hides share tokens from request logs. The token is the
// credential itself, so /share/<id> must never appear in plaintext.
func redactPath(path string) string {
	if strings.HasPrefix(path, "/share/") {
		return "/share/:share_id"
	}
	return path
}

func GinZapLogger() gin.HandlerFunc {
	log := logger.L
	return func(c *gin.Context) {
		start := time.Now()
		path := redactPath(c.Request.URL.Path)
		query := c.Request.URL.RawQuery

		// Process request
		c.Next()

		// Log details after request is processed
		end := time.Now()
		latency := end.Sub(start)
		statusCode := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		userAgent := c.Request.UserAgent()
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		fields := []zap.Field{
			zap.Int("status", statusCode),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("ip", clientIP),
			zap.Duration("latency", latency),
			zap.String("user_agent", userAgent),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if errorMessage != "" {
			fields = append(fields, zap.String("error", errorMessage))
		}

		// Choose log level based on status code
		switch {
		case statusCode >= http.StatusInternalServerError:
			log.Error("Request", fields...)
		case statusCode >= http.StatusBadRequest:
			log.Warn("Request", fields...)
		default:
			log.Info("Request", fields...)
		}
	}
}
