package middleware

import (
	"time"

	"spotbook/constants"
	"spotbook/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// SessionMiddleware tags every request with an id, reusing the caller's
// X-Request-ID when present.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextRequestID, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// RequestLogger logs one line per request once it has been served.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := "%s %s %d %s request_id=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.GetString(constants.ContextRequestID)}
		if status >= 500 {
			log.Error(line, args...)
			return
		}
		log.Info(line, args...)
	}
}
