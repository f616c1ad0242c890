package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/constants"
	"go.uber.org/zap"
)

// AccessLog writes one structured log line per request. Health checks and
// metric scrapes are skipped.
func AccessLog(log *zap.Logger) gin.HandlerFunc {
	sugar := log.Sugar()
	excludedPaths := map[string]bool{
		"/health":  true,
		"/metrics": true,
	}

	return func(c *gin.Context) {
		if excludedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		query := c.Request.URL.RawQuery
		if query != "" {
			query = "?" + query
		}

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", query,
			"status", c.Writer.Status(),
			"ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"latency", latency.String(),
		}
		if userID := c.GetString(constants.ContextKeyUserID); userID != "" {
			fields = append(fields, "user_id", userID)
		}

		if c.Writer.Status() >= 500 {
			sugar.Errorw("HTTP request", fields...)
			return
		}
		sugar.Infow("HTTP request", fields...)
	}
}
