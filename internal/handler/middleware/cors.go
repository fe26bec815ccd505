package middleware

import (
	"log/slog"

	"equipment-reservation/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware lets the booking frontend call the API with the access_token cookie.
// Idempotency-Key must be in CORS_ALLOW_HEADERS for browsers to send it on POST /api/reservations.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	slog.Debug("cors configured", "origins", cfg.AllowOrigins, "credentials", cfg.AllowCredentials)

	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
