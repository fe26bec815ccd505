package middleware

import (
	"log/slog"
	"net/http"

	"equipment-reservation/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last public error a handler recorded when nothing was written yet.
// Handlers normally respond through httperr.AbortWithError, so this only catches stragglers.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if resp, ok := lastPublicError(c); ok {
			c.JSON(resp.Status, resp)
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.New(http.StatusInternalServerError, "Internal server error", nil))
	}
}

func lastPublicError(c *gin.Context) (httperr.Response, bool) {
	for i := len(c.Errors) - 1; i >= 0; i-- {
		if !c.Errors[i].IsType(gin.ErrorTypePublic) {
			continue
		}
		if resp, ok := c.Errors[i].Meta.(httperr.Response); ok {
			return resp, true
		}
	}
	return httperr.Response{}, false
}

func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic while serving request",
					"panic", rec,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", RequestID(c))
				c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.New(http.StatusInternalServerError, "Internal server error", nil))
			}
		}()
		c.Next()
	}
}
