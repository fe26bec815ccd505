package components

import (
	"equipment-reservation/internal/handler"
	"equipment-reservation/internal/handler/api"
	reqdto "equipment-reservation/internal/handler/dto/request"
	"equipment-reservation/internal/handler/middleware"
	"equipment-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCategoryHandler,
		api.NewEquipmentHandler,
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.CatalogCache {
			return middleware.NewCatalogCache(cfg.Cache)
		},
		func(cfg config.Config) *middleware.IPRateLimiter {
			return middleware.NewIPRateLimiter(cfg.RateLimit)
		},
		func(
			auth *api.AuthHandler,
			category *api.CategoryHandler,
			equipment *api.EquipmentHandler,
			reservation *api.ReservationHandler,
		) handler.Handlers {
			return handler.Handlers{
				Auth:        auth,
				Category:    category,
				Equipment:   equipment,
				Reservation: reservation,
			}
		},
		func(
			auth *middleware.AuthMiddleware,
			cache *middleware.CatalogCache,
			limiter *middleware.IPRateLimiter,
		) handler.Middlewares {
			return handler.Middlewares{
				Auth:         auth,
				CatalogCache: cache,
				RateLimiter:  limiter,
			}
		},
	),
	fx.Invoke(
		reqdto.RegisterValidators,
		handler.NewRouter,
	),
)
