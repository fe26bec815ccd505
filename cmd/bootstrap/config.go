package bootstrap

import (
	"equipment-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule supplies an already loaded config; main needs it before the graph exists
// to pick the store driver.
func ConfigModule(cfg config.Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
	)
}
