package docstore

import (
	"context"

	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EquipmentStore struct {
	collection *mongo.Collection
	categories *mongo.Collection
	cfg        config.MongoConfig
}

func NewEquipmentStore(db *mongo.Database, cfg config.MongoConfig) *EquipmentStore {
	return &EquipmentStore{
		collection: db.Collection(collEquipment),
		categories: db.Collection(collCategories),
		cfg:        cfg,
	}
}

func (s *EquipmentStore) Create(ctx context.Context, e *equipment.Equipment) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, toEquipmentDoc(e)); err != nil {
		return wrapWriteErr("failed to create equipment", err)
	}
	return nil
}

func (s *EquipmentStore) Update(ctx context.Context, e *equipment.Equipment) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	doc := toEquipmentDoc(e)
	update := bson.M{
		"$set": bson.M{
			"name":           doc.Name,
			"description":    doc.Description,
			"category_id":    doc.CategoryID,
			"total_quantity": doc.TotalQuantity,
			"is_unlimited":   doc.IsUnlimited,
			"is_active":      doc.IsActive,
			"is_deleted":     doc.IsDeleted,
			"updated_at":     doc.UpdatedAt,
		},
	}
	result, err := s.collection.UpdateByID(ctx, doc.ID, update)
	if err != nil {
		return wrapWriteErr("failed to update equipment", err)
	}
	if result.MatchedCount == 0 {
		return infra.WrapRepoErr("equipment not found", nil, infra.KindNotFound)
	}
	return nil
}

// LockByID bumps lock_version so that any other transaction touching the same item
// hits a write conflict and is retried by the session.
func (s *EquipmentStore) LockByID(ctx context.Context, id uuid.UUID) (*equipment.Equipment, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc equipmentDoc
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, bson.M{"$inc": bson.M{"lock_version": 1}}, opts).Decode(&doc)
	if err != nil {
		return nil, wrapFindErr("equipment", err)
	}
	e, err := doc.toDomain()
	if err != nil {
		return nil, wrapDecodeErr("equipment", err)
	}
	return e, nil
}

func (s *EquipmentStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.EquipmentView, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var doc equipmentDoc
	if err := s.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, wrapFindErr("equipment", err)
	}
	names, err := s.categoryNames(ctx, []equipmentDoc{doc})
	if err != nil {
		return nil, err
	}
	view, err := doc.toView(lookupName(names, doc.CategoryID))
	if err != nil {
		return nil, wrapDecodeErr("equipment", err)
	}
	return view, nil
}

func (s *EquipmentStore) List(ctx context.Context, filter queries.EquipmentFilter) ([]*queries.EquipmentView, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	query := bson.M{"is_deleted": false}
	if !filter.IncludeInactive {
		query["is_active"] = true
	}
	if filter.CategoryID != nil {
		query["category_id"] = filter.CategoryID.String()
	}

	cursor, err := s.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list equipment", err)
	}
	defer cursor.Close(ctx)

	var docs []equipmentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapDecodeErr("equipment", err)
	}

	names, err := s.categoryNames(ctx, docs)
	if err != nil {
		return nil, err
	}
	items := make([]*queries.EquipmentView, 0, len(docs))
	for _, doc := range docs {
		view, err := doc.toView(lookupName(names, doc.CategoryID))
		if err != nil {
			return nil, wrapDecodeErr("equipment", err)
		}
		items = append(items, view)
	}
	return items, nil
}

func (s *EquipmentStore) categoryNames(ctx context.Context, docs []equipmentDoc) (map[string]string, error) {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.CategoryID != nil {
			ids = append(ids, *d.CategoryID)
		}
	}
	return namesByID(ctx, s.categories, ids)
}

// namesByID resolves the name field of the given documents in one round trip.
func namesByID(ctx context.Context, coll *mongo.Collection, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to resolve names", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID   string `bson:"_id"`
		Name string `bson:"name"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, wrapDecodeErr("names", err)
	}
	for _, r := range rows {
		names[r.ID] = r.Name
	}
	return names, nil
}

func lookupName(names map[string]string, id *string) *string {
	if id == nil {
		return nil
	}
	name, ok := names[*id]
	if !ok {
		return nil
	}
	return &name
}
