package repository

import (
	"context"
	"time"

	"equipment-reservation/internal/infra"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/pgconv"
)

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationJobParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
	db      sqlc.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db sqlc.DBTX) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	params := sqlc.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
	}

	if err := r.queries.CreateNotificationJob(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
