package bootstrap

import (
	"context"
	"log/slog"

	"equipment-reservation/cmd/bootstrap/components"
	"equipment-reservation/internal/infra/db"
	"equipment-reservation/internal/infra/docstore"
	"equipment-reservation/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
)

// StoreModule wires either PostgreSQL or the MongoDB document store behind the same ports.
func StoreModule(driver string) fx.Option {
	if driver == config.StoreDriverMongo {
		return fx.Module("store/mongo",
			fx.Provide(NewMongo),
			components.DocstoreModule,
		)
	}
	return fx.Module("store/postgres",
		fx.Provide(NewDB),
		components.PersistenceModule,
	)
}

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

func NewMongo(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	client, database, cleanup, err := docstore.Connect(cfg.Mongo)
	if err != nil {
		return nil, nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := docstore.EnsureIndexes(ctx, database); err != nil {
				return err
			}
			logger.Info("MongoDBのインデックスを確認しました", "database", cfg.Mongo.Database)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return client, database, nil
}
