package components

import (
	"equipment-reservation/internal/infra/readstore"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/infra/uow"
	"equipment-reservation/internal/usecase/queries"
	"equipment-reservation/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PersistenceModule is the PostgreSQL store. Repositories are built per transaction by the UoW.
var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Equipment
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.EquipmentReadQueries)),
		),
		fx.Annotate(
			readstore.NewEquipmentReadStore,
			fx.As(new(queries.EquipmentReadStore)),
		),
		// Category
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.CategoryReadQueries)),
		),
		fx.Annotate(
			readstore.NewCategoryReadStore,
			fx.As(new(queries.CategoryReadStore)),
		),
		// Reservation
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReservationReadQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		// Admin
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.AdminReadQueries)),
		),
		fx.Annotate(
			readstore.NewAdminReadStore,
			fx.As(new(queries.AdminReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
