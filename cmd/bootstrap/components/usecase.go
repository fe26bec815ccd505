package components

import (
	"equipment-reservation/internal/pkg/clock"
	"equipment-reservation/internal/usecase"
	"equipment-reservation/internal/usecase/commands"
	"equipment-reservation/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewReservationCommands,
		commands.NewEquipmentCommands,
		commands.NewCategoryCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAdminQueries,
		queries.NewAvailabilityQueries,
		queries.NewEquipmentQueries,
		queries.NewCategoryQueries,
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
