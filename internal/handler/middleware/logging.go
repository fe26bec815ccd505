package middleware

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"equipment-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// NewLogger builds the process logger: JSON in release mode, text otherwise,
// timestamps rendered in the configured zone and format.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	zone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key != slog.TimeKey {
				return a
			}
			if t, ok := a.Value.Any().(time.Time); ok {
				a.Value = slog.StringValue(t.In(zone).Format(cfg.TimeFormat))
			}
			return a
		},
	}

	if gin.Mode() == gin.ReleaseMode {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RequestLogger writes one line per request. An incoming X-Request-ID is kept,
// otherwise a new one is minted and echoed back.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(started)),
			slog.String("client_ip", c.ClientIP()),
		}
		if key := c.GetHeader("Idempotency-Key"); key != "" {
			attrs = append(attrs, slog.String("idempotency_key", key))
		}
		// set by RequireAuth further down the chain
		if id, role, ok := adminFromContext(c); ok {
			attrs = append(attrs, slog.String("admin_id", id), slog.String("role", role))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		logger.LogAttrs(c.Request.Context(), level, "request", attrs...)
	}
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func adminFromContext(c *gin.Context) (id, role string, ok bool) {
	claims, exists := c.Get("jwt_claims")
	if !exists {
		return "", "", false
	}
	m, isMap := claims.(map[string]any)
	if !isMap {
		return "", "", false
	}
	id, _ = m["admin_id"].(string)
	role, _ = m["role"].(string)
	return id, role, id != ""
}
