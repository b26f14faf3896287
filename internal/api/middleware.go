package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestLogFunc is called once per request before routing.
type RequestLogFunc func(path, method string)

// ZapRequestLog logs each request on logger.
func ZapRequestLog(logger *zap.Logger) RequestLogFunc {
	return func(path, method string) {
		logger.Info("Received request", zap.String("path", path), zap.String("method", method))
	}
}

// requestID tags the request with an id, reusing the caller's when present.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLog runs log for every request. A failing log call is reported on
// ops and the request carries on.
func requestLog(log RequestLogFunc, ops *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		func() {
			defer func() {
				if r := recover(); r != nil {
					ops.Warn("request log failed", zap.Any("panic", r), zap.String("request_id", c.GetString(requestIDKey)))
				}
			}()
			log(c.Request.URL.Path, c.Request.Method)
		}()
		c.Next()
	}
}

// requestFields adds the request id to access log entries.
func requestFields(c *gin.Context) []zapcore.Field {
	return []zapcore.Field{zap.String(requestIDKey, c.GetString(requestIDKey))}
}

// transportErrors answers 500 for failures handlers attached to c.Errors
// without writing a response.
func transportErrors(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			logger.Error("request failed",
				zap.Error(e.Err),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String(requestIDKey, c.GetString(requestIDKey)),
			)
		}
		if !c.Writer.Written() {
			c.String(http.StatusInternalServerError, BrokenBody)
		}
	}
}

// recoverBroken is the panic recovery response.
func recoverBroken(c *gin.Context, _ any) {
	if !c.Writer.Written() {
		c.String(http.StatusInternalServerError, BrokenBody)
	}
	c.Abort()
}
