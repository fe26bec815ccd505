package docstore

import (
	"context"
	"strings"
	"time"

	"equipment-reservation/internal/domain/admin"
	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdminStore struct {
	collection *mongo.Collection
	cfg        config.MongoConfig
}

func NewAdminStore(db *mongo.Database, cfg config.MongoConfig) *AdminStore {
	return &AdminStore{collection: db.Collection(collAdmins), cfg: cfg}
}

func (s *AdminStore) Create(ctx context.Context, a *admin.Admin) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, toAdminDoc(a)); err != nil {
		return wrapWriteErr("failed to create admin", err)
	}
	return nil
}

func (s *AdminStore) UpdateLastLogin(ctx context.Context, adminID uuid.UUID, at time.Time) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"last_login": at.UTC(), "updated_at": at.UTC()}}
	if _, err := s.collection.UpdateByID(ctx, adminID.String(), update); err != nil {
		return wrapWriteErr("failed to update admin last login", err)
	}
	return nil
}

func (s *AdminStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AdminView, error) {
	doc, err := s.findOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return nil, err
	}
	view, err := doc.toView()
	if err != nil {
		return nil, wrapDecodeErr("admin", err)
	}
	return view, nil
}

func (s *AdminStore) FindByEmail(ctx context.Context, email string) (*queries.AdminView, string, error) {
	doc, err := s.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
	if err != nil {
		return nil, "", err
	}
	view, err := doc.toView()
	if err != nil {
		return nil, "", wrapDecodeErr("admin", err)
	}
	return view, doc.PasswordHash, nil
}

func (s *AdminStore) findOne(ctx context.Context, filter bson.M) (*adminDoc, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var doc adminDoc
	if err := s.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, wrapFindErr("admin", err)
	}
	return &doc, nil
}
