package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/signalsfoundry/fronthaul-planner/internal/logging"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

// requestLogger attaches a request id and a request-scoped logger to the
// request context and logs each finished request.
func requestLogger(base logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.GetHeader(RequestIDHeader); id != "" {
			ctx = logging.ContextWithRequestID(ctx, id)
		}
		ctx, log := logging.WithRequestLogger(ctx, base)
		ctx = logging.ContextWithLogger(ctx, log)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, logging.RequestIDFromContext(ctx))

		start := time.Now()
		c.Next()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Float("seconds", time.Since(start).Seconds()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn(ctx, "request failed", fields...)
			return
		}
		log.Debug(ctx, "request handled", fields...)
	}
}

// recovery turns panics into a 500 with the usual error body.
func recovery(base logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log := logging.FromContext(c.Request.Context(), base)
		log.Error(c.Request.Context(), "handler panicked", logging.String("panic", fmt.Sprint(recovered)))

		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		abortWithError(c, http.StatusInternalServerError, codeInternal, message)
	})
}
