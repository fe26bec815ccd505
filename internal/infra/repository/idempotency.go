package repository

import (
	"context"
	"time"

	"equipment-reservation/internal/infra"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/pgconv"
	"equipment-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyWriteQueries interface {
	ClaimIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimIdempotencyKeyParams) (int64, error)
	GetIdempotencyKey(ctx context.Context, db sqlc.DBTX, key uuid.UUID) (sqlc.IdempotencyKeys, error)
	CompleteIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteIdempotencyKeyParams) error
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      sqlc.DBTX
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db sqlc.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
	}
}

// TryClaim inserts the key, or takes over an expired one. A concurrent claim on the same key
// blocks on the unique index until the other transaction finishes.
func (r *IdempotencyRepository) TryClaim(ctx context.Context, key uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (bool, error) {
	affected, err := r.queries.ClaimIdempotencyKey(ctx, r.db, sqlc.ClaimIdempotencyKeyParams{
		Key:         key,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
		Now:         pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return affected > 0, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, key, reservationID uuid.UUID) error {
	err := r.queries.CompleteIdempotencyKey(ctx, r.db, sqlc.CompleteIdempotencyKeyParams{
		Key:                 key,
		ResultReservationID: pgconv.UUIDToPgtype(reservationID),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, r.db, key)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	return &shared.IdempotencyRecord{
		Key:                 row.Key,
		Endpoint:            row.Endpoint,
		RequestHash:         row.RequestHash,
		ResultReservationID: pgconv.UUIDPtrFromPgtype(row.ResultReservationID),
		ExpiresAt:           pgconv.TimeFromPgtype(row.ExpiresAt),
	}, nil
}
