package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/response"
	"github.com/sangkips/stockdesk/internal/presentation/http/handler"
	"github.com/sangkips/stockdesk/pkg/utils"
	"go.uber.org/zap"
)

// LoggerMiddleware creates a structured logging middleware
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Reuse a well-formed client request ID, otherwise generate one
		requestID := c.GetHeader("X-Request-ID")
		if !utils.ValidRequestID(requestID) {
			requestID = utils.NewRequestID()
		}
		c.Set(response.RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if business := handler.GetBusinessID(c); business != "" {
			fields = append(fields, zap.String("business_id", business))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}

		for _, e := range c.Errors {
			logger.Error("request error", zap.String("request_id", requestID), zap.Error(e.Err))
		}
	}
}
