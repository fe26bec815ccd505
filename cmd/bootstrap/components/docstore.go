package components

import (
	"equipment-reservation/internal/infra/docstore"
	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/internal/usecase/queries"
	"equipment-reservation/internal/usecase/shared"

	"go.uber.org/fx"
)

// DocstoreModule is the MongoDB store. The same stores serve reads outside transactions.
var DocstoreModule = fx.Module("docstore",
	fx.Provide(
		NewMongoConfig,
		fx.Annotate(
			docstore.NewMongoUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			docstore.NewEquipmentStore,
			fx.As(new(queries.EquipmentReadStore)),
		),
		fx.Annotate(
			docstore.NewCategoryStore,
			fx.As(new(queries.CategoryReadStore)),
		),
		fx.Annotate(
			docstore.NewReservationStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			docstore.NewAdminStore,
			fx.As(new(queries.AdminReadStore)),
		),
	),
)

func NewMongoConfig(cfg config.Config) config.MongoConfig {
	return cfg.Mongo
}
