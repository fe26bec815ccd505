package docstore

import (
	"context"
	"errors"
	"time"

	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IdempotencyStore struct {
	collection *mongo.Collection
	cfg        config.MongoConfig
}

func NewIdempotencyStore(db *mongo.Database, cfg config.MongoConfig) *IdempotencyStore {
	return &IdempotencyStore{collection: db.Collection(collIdempotency), cfg: cfg}
}

// TryClaim reads before writing: a failed insert would abort the surrounding transaction.
// Two first-time claims racing on one key surface as a write conflict and the session retries.
func (s *IdempotencyStore) TryClaim(ctx context.Context, key uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	var existing idempotencyDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": key.String()}).Decode(&existing)
	switch {
	case err == nil:
		if existing.ExpiresAt.After(now) {
			return false, nil
		}
	case !errors.Is(err, mongo.ErrNoDocuments):
		return false, infra.WrapRepoErr("failed to read idempotency key", err)
	}

	doc := idempotencyDoc{
		Key:         key.String(),
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt.UTC(),
		CreatedAt:   now.UTC(),
	}
	_, err = s.collection.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return false, wrapWriteErr("failed to claim idempotency key", err)
	}
	return true, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key, reservationID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"result_reservation_id": reservationID.String()}}
	if _, err := s.collection.UpdateByID(ctx, key.String(), update); err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}

func (s *IdempotencyStore) Get(ctx context.Context, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var doc idempotencyDoc
	if err := s.collection.FindOne(ctx, bson.M{"_id": key.String()}).Decode(&doc); err != nil {
		return nil, wrapFindErr("idempotency key", err)
	}
	resultID, err := parseIDPtr(doc.ResultReservationID)
	if err != nil {
		return nil, wrapDecodeErr("idempotency key", err)
	}
	return &shared.IdempotencyRecord{
		Key:                 key,
		Endpoint:            doc.Endpoint,
		RequestHash:         doc.RequestHash,
		ResultReservationID: resultID,
		ExpiresAt:           doc.ExpiresAt,
	}, nil
}
