package docstore

import (
	"context"

	"equipment-reservation/internal/domain/category"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryStore struct {
	collection *mongo.Collection
	cfg        config.MongoConfig
}

func NewCategoryStore(db *mongo.Database, cfg config.MongoConfig) *CategoryStore {
	return &CategoryStore{collection: db.Collection(collCategories), cfg: cfg}
}

func (s *CategoryStore) Create(ctx context.Context, c *category.Category) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	doc := categoryDoc{
		ID:          c.ID().String(),
		Name:        c.Name(),
		Description: c.Description(),
		CreatedAt:   c.CreatedAt().UTC(),
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return wrapWriteErr("failed to create category", err)
	}
	return nil
}

func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var doc categoryDoc
	if err := s.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, wrapFindErr("category", err)
	}
	c, err := doc.toDomain()
	if err != nil {
		return nil, wrapDecodeErr("category", err)
	}
	return c, nil
}

func (s *CategoryStore) List(ctx context.Context) ([]*queries.CategoryView, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list categories", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapDecodeErr("categories", err)
	}

	items := make([]*queries.CategoryView, 0, len(docs))
	for _, d := range docs {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, wrapDecodeErr("category", err)
		}
		items = append(items, &queries.CategoryView{
			ID:          id,
			Name:        d.Name,
			Description: d.Description,
			CreatedAt:   d.CreatedAt,
		})
	}
	return items, nil
}
