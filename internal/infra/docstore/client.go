package docstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"equipment-reservation/internal/pkg/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collEquipment     = "equipment"
	collReservations  = "reservations"
	collCategories    = "categories"
	collAdmins        = "admins"
	collNotifications = "notification_jobs"
	collIdempotency   = "idempotency_keys"
)

// Connect opens a client against a replica set; multi-document transactions need one.
func Connect(cfg config.MongoConfig) (*mongo.Client, *mongo.Database, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			slog.Error("failed to disconnect mongo", "error", err)
			return
		}
		slog.Info("mongo connection closed")
	}

	return client, client.Database(cfg.Database), cleanup, nil
}

// EnsureIndexes is idempotent. Reservations are only indexed by equipment_id; the overlap
// filter runs in the availability engine.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		collReservations: {
			{Keys: bson.D{{Key: "equipment_id", Value: 1}}},
			{Keys: bson.D{{Key: "start_time", Value: 1}, {Key: "_id", Value: 1}}},
		},
		collEquipment: {
			{Keys: bson.D{{Key: "category_id", Value: 1}}},
		},
		collCategories: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collAdmins: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collNotifications: {
			{Keys: bson.D{{Key: "topic", Value: 1}, {Key: "run_at", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// withTimeout leaves session contexts alone; the transaction owns their deadline.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}
