package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tasklister/tasklister-api/internal/constants"
)

const contextKeyLogger = "logger"

// RequestID propagates X-Request-ID or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, id)
		c.Header(constants.HeaderRequestID, id)
		c.Next()
	}
}

// Logger writes one line per request and exposes a request scoped logger
// to handlers through GetLogger.
func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.With("request_id", c.GetString(constants.ContextKeyRequestID))
		c.Set(contextKeyLogger, reqLog)

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}
		reqLog.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// GetLogger returns the request scoped logger, or the default logger when
// the Logger middleware is not installed.
func GetLogger(c *gin.Context) *slog.Logger {
	if value, exists := c.Get(contextKeyLogger); exists {
		if log, ok := value.(*slog.Logger); ok {
			return log
		}
	}
	return slog.Default()
}
