package bootstrap

import (
	"equipment-reservation/cmd/bootstrap/components"
	"equipment-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

// CoreModule is everything below the HTTP layer.
func CoreModule(cfg config.Config) fx.Option {
	return fx.Options(
		ConfigModule(cfg),
		LoggerModule,
		StoreModule(cfg.Store.Driver),
		JWTModule,
		components.UseCaseModule,
	)
}

func Module(cfg config.Config) fx.Option {
	return fx.Options(
		CoreModule(cfg),
		components.HandlerModule,
	)
}
