package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"agenda/internal/domain"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDCtx    = "request_id"
)

func (h *Handler) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		c.Set(requestIDCtx, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()
	}
}

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		logger := h.logger.With(
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.String("request_id", c.GetString(requestIDCtx)),
		)

		if status >= 500 {
			logger.Error("server error")
		} else if status >= 400 {
			logger.Warn("client error")
		} else {
			logger.Info("request processed")
		}
	}
}

func (h *Handler) errorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, err := range c.Errors {
			if domain.KindOf(err.Err) == domain.KindUnavailable {
				h.logger.Error("request error", zap.String("request_id", c.GetString(requestIDCtx)), zap.Error(err.Err))
				continue
			}
			h.logger.Debug("request rejected", zap.String("request_id", c.GetString(requestIDCtx)), zap.Error(err.Err))
		}
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Origin, Accept, User-Agent, X-Requested-With, X-Request-ID, Cache-Control")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Type, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// bookingRateLimit throttles booking attempts per client IP. Without a
// limiter every request passes.
func (h *Handler) bookingRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.limiter == nil {
			c.Next()
			return
		}

		allowed, err := h.limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			h.logger.Warn("redis rate limiter error", zap.Error(err))
			if !h.limiter.FailOpen() {
				errorResponse(c, http.StatusServiceUnavailable, "rate limiter unavailable")
				return
			}
		} else if !allowed {
			tooManyRequestsResponse(c)
			return
		}

		c.Next()
	}
}
