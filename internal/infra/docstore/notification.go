package docstore

import (
	"context"
	"time"

	"equipment-reservation/internal/pkg/config"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationStore struct {
	collection *mongo.Collection
	cfg        config.MongoConfig
}

func NewNotificationStore(db *mongo.Database, cfg config.MongoConfig) *NotificationStore {
	return &NotificationStore{collection: db.Collection(collNotifications), cfg: cfg}
}

func (s *NotificationStore) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	doc := notificationDoc{
		ID:        uuid.NewString(),
		Kind:      kind,
		Topic:     topic,
		Payload:   payload,
		RunAt:     runAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return wrapWriteErr("failed to create notification job", err)
	}
	return nil
}
