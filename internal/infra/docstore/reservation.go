package docstore

import (
	"context"

	"equipment-reservation/internal/domain/availability"
	"equipment-reservation/internal/domain/reservation"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReservationStore struct {
	collection *mongo.Collection
	equipment  *mongo.Collection
	cfg        config.MongoConfig
}

func NewReservationStore(db *mongo.Database, cfg config.MongoConfig) *ReservationStore {
	return &ReservationStore{
		collection: db.Collection(collReservations),
		equipment:  db.Collection(collEquipment),
		cfg:        cfg,
	}
}

func (s *ReservationStore) Create(ctx context.Context, res *reservation.Reservation) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, toReservationDoc(res)); err != nil {
		return wrapWriteErr("failed to create reservation", err)
	}
	return nil
}

func (s *ReservationStore) Update(ctx context.Context, res *reservation.Reservation) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	doc := toReservationDoc(res)
	update := bson.M{
		"$set": bson.M{
			"equipment_id":          doc.EquipmentID,
			"custom_equipment_name": doc.CustomEquipmentName,
			"quantity":              doc.Quantity,
			"start_time":            doc.StartTime,
			"end_time":              doc.EndTime,
			"status":                doc.Status,
			"note":                  doc.Note,
			"updated_at":            doc.UpdatedAt,
		},
	}
	result, err := s.collection.UpdateByID(ctx, doc.ID, update)
	if err != nil {
		return wrapWriteErr("failed to update reservation", err)
	}
	if result.MatchedCount == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (s *ReservationStore) LockByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc reservationDoc
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, bson.M{"$inc": bson.M{"lock_version": 1}}, opts).Decode(&doc)
	if err != nil {
		return nil, wrapFindErr("reservation", err)
	}
	res, err := doc.toDomain()
	if err != nil {
		return nil, wrapDecodeErr("reservation", err)
	}
	return res, nil
}

// BookingsForEquipment loads every reservation of the item regardless of status or time;
// the engine applies both filters.
func (s *ReservationStore) BookingsForEquipment(ctx context.Context, equipmentID uuid.UUID) ([]availability.Booking, error) {
	docs, err := s.byEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	bookings := make([]availability.Booking, 0, len(docs))
	for _, doc := range docs {
		res, err := doc.toDomain()
		if err != nil {
			return nil, wrapDecodeErr("reservation", err)
		}
		bookings = append(bookings, availability.FromReservation(res))
	}
	return bookings, nil
}

func (s *ReservationStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var doc reservationDoc
	if err := s.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, wrapFindErr("reservation", err)
	}
	views, err := s.toViews(ctx, []reservationDoc{doc})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// ListForEquipment is the document-store candidate fetch: equipment_id only, no range filter.
func (s *ReservationStore) ListForEquipment(ctx context.Context, equipmentID uuid.UUID, _ reservation.TimeSlot) ([]*queries.ReservationView, error) {
	docs, err := s.byEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, docs)
}

func (s *ReservationStore) List(ctx context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	query := bson.M{}
	if filter.EquipmentID != nil {
		query["equipment_id"] = filter.EquipmentID.String()
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}
	and := bson.A{}
	if filter.Window != nil {
		and = append(and,
			bson.M{"start_time": bson.M{"$lt": filter.Window.End().UTC()}},
			bson.M{"end_time": bson.M{"$gt": filter.Window.Start().UTC()}},
		)
	}
	if filter.AfterStart != nil && filter.AfterID != nil {
		after := filter.AfterStart.UTC()
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"start_time": bson.M{"$gt": after}},
			bson.M{"start_time": after, "_id": bson.M{"$gt": filter.AfterID.String()}},
		}})
	}
	if len(and) > 0 {
		query["$and"] = and
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(filter.Limit))

	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer cursor.Close(ctx)

	var docs []reservationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapDecodeErr("reservations", err)
	}
	return s.toViews(ctx, docs)
}

func (s *ReservationStore) byEquipment(ctx context.Context, equipmentID uuid.UUID) ([]reservationDoc, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.M{"equipment_id": equipmentID.String()})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations for equipment", err)
	}
	defer cursor.Close(ctx)

	var docs []reservationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapDecodeErr("reservations", err)
	}
	return docs, nil
}

func (s *ReservationStore) toViews(ctx context.Context, docs []reservationDoc) ([]*queries.ReservationView, error) {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.EquipmentID != nil {
			ids = append(ids, *d.EquipmentID)
		}
	}
	names, err := namesByID(ctx, s.equipment, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*queries.ReservationView, 0, len(docs))
	for _, d := range docs {
		v, err := d.toView(lookupName(names, d.EquipmentID))
		if err != nil {
			return nil, wrapDecodeErr("reservation", err)
		}
		views = append(views, v)
	}
	return views, nil
}
