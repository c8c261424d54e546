package gin

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggerMiddleware logs one line per request with method, path, status and
// duration. Requests that recorded errors are logged at error level.
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			msgs := make([]string, len(c.Errors))
			for i, err := range c.Errors {
				msgs[i] = err.Err.Error()
			}
			logger.Error("HTTP request with errors", append(attrs, "errors", strings.Join(msgs, "; "))...)
			return
		}
		if strings.HasPrefix(path, "/health") {
			logger.Debug("HTTP request", attrs...)
			return
		}
		logger.Info("HTTP request", attrs...)
	}
}

// RecoveryMiddleware turns handler panics into a 500 response.
func RecoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"err", fmt.Sprint(r),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Detail: detailInternal})
			}
		}()
		c.Next()
	}
}
