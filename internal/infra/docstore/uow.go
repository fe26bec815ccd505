package docstore

import (
	"context"
	"log/slog"

	"equipment-reservation/internal/domain/availability"
	"equipment-reservation/internal/domain/category"
	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/domain/reservation"
	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

var errSessionStart = errs.New("failed to start mongo session")

type MongoUoW struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    config.MongoConfig
	logger *slog.Logger
}

func NewMongoUoW(client *mongo.Client, db *mongo.Database, cfg config.MongoConfig, logger *slog.Logger) *MongoUoW {
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoUoW{
		client: client,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// Within runs fn in a snapshot transaction. WithTransaction retries the callback on
// TransientTransactionError, which is what two writers bumping the same lock_version produce.
func (u *MongoUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	session, err := u.client.StartSession()
	if err != nil {
		return errs.Mark(err, errSessionStart)
	}
	defer session.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	attempt := 0
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		attempt++
		if attempt > 1 {
			u.logger.Warn("retrying mongo transaction", "attempt", attempt)
		}
		return nil, fn(sessCtx, &mongoTx{db: u.db, cfg: u.cfg})
	}, txOpts)
	return err
}

type mongoTx struct {
	db  *mongo.Database
	cfg config.MongoConfig
}

func (t *mongoTx) Equipment() shared.EquipmentRepository        { return NewEquipmentStore(t.db, t.cfg) }
func (t *mongoTx) Reservations() shared.ReservationRepository   { return NewReservationStore(t.db, t.cfg) }
func (t *mongoTx) Categories() shared.CategoryRepository        { return NewCategoryStore(t.db, t.cfg) }
func (t *mongoTx) Notifications() shared.NotificationRepository { return NewNotificationStore(t.db, t.cfg) }
func (t *mongoTx) Idempotency() shared.IdempotencyRepository    { return NewIdempotencyStore(t.db, t.cfg) }
func (t *mongoTx) Admins() shared.AdminRepository               { return NewAdminStore(t.db, t.cfg) }
func (t *mongoTx) Reads() shared.CommandReads                   { return &commandReads{db: t.db, cfg: t.cfg} }

type commandReads struct {
	db  *mongo.Database
	cfg config.MongoConfig
}

func (r *commandReads) LockEquipment(ctx context.Context, id uuid.UUID) (*equipment.Equipment, error) {
	return NewEquipmentStore(r.db, r.cfg).LockByID(ctx, id)
}

func (r *commandReads) LockReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return NewReservationStore(r.db, r.cfg).LockByID(ctx, id)
}

func (r *commandReads) CategoryByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return NewCategoryStore(r.db, r.cfg).FindByID(ctx, id)
}

func (r *commandReads) BookingsForEquipment(ctx context.Context, equipmentID uuid.UUID, _ reservation.TimeSlot) ([]availability.Booking, error) {
	return NewReservationStore(r.db, r.cfg).BookingsForEquipment(ctx, equipmentID)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	return NewIdempotencyStore(r.db, r.cfg).Get(ctx, key)
}
