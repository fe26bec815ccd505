package bootstrap

import (
	"log/slog"

	"equipment-reservation/internal/handler/middleware"
	"equipment-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(NewLogger),
)

// NewLogger also installs the logger as slog's default so packages without injection share it.
func NewLogger(cfg config.Config) *slog.Logger {
	logger := middleware.NewLogger(cfg.Log).With("store", cfg.Store.Driver)
	slog.SetDefault(logger)
	return logger
}
