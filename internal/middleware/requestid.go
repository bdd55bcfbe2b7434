package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/6540011013-oss/Room-Status-System/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// ActionKey is the gin context key under which the dispatcher records the resolved action.
const ActionKey = "action"

// RequestLog tags the request context with an id (taken from X-Request-ID or generated),
// echoes it back and writes one log line per request.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		logger.Ctx(c.Request.Context()).Info("http.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"action", c.GetString(ActionKey),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
