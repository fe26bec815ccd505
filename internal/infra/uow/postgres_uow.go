package uow

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"equipment-reservation/internal/domain/availability"
	"equipment-reservation/internal/domain/category"
	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/domain/reservation"
	"equipment-reservation/internal/infra/repository"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/pkg/pgconv"
	"equipment-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxTxRetries = 3
	retryBase    = 50 * time.Millisecond
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// PostgresUoW runs command use cases in a pgx transaction, retrying on
// serialization failures and deadlocks.
type PostgresUoW struct {
	pool   *pgxpool.Pool
	q      *sqlc.Queries
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries, logger *slog.Logger) *PostgresUoW {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUoW{pool: pool, q: q, logger: logger}
}

// Within uses READ COMMITTED; capacity checks serialize on the equipment row lock instead.
// fn may run more than once and must not have side effects outside tx.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	var err error
	for attempt := 1; attempt <= maxTxRetries+1; attempt++ {
		err = u.attempt(ctx, opts, fn)
		if err == nil || !pgconv.IsRetryable(err) {
			return err
		}
		if attempt > maxTxRetries {
			break
		}

		wait := backoff(attempt)
		u.logger.Warn("retrying transaction", "attempt", attempt, "wait_ms", wait.Milliseconds(), "error", err.Error())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	u.logger.Error("transaction failed after max retries", "attempts", maxTxRetries+1, "error", err.Error())
	return errs.Mark(err, errMaxRetriesExceeded)
}

// attempt owns exactly one pgx.Tx so nothing is deferred across retries.
func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, &pgTx{dbtx: pgxTx, uow: u})
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errs.Is(rbErr, pgx.ErrTxClosed) {
		u.logger.Warn("rollback failed", "error", rbErr.Error())
	}
	return err
}

// exponential with up to 20% jitter
func backoff(attempt int) time.Duration {
	wait := retryBase << (attempt - 1)
	return wait + time.Duration(rand.Int64N(int64(wait)/5+1))
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	equipmentRepo    *repository.EquipmentRepository
	reservationRepo  *repository.ReservationRepository
	categoryRepo     *repository.CategoryRepository
	notificationRepo *repository.NotificationRepository
	idempotencyRepo  *repository.IdempotencyRepository
	adminRepo        *repository.AdminRepository
}

func (t *pgTx) equipment() *repository.EquipmentRepository {
	if t.equipmentRepo == nil {
		t.equipmentRepo = repository.NewEquipmentRepository(t.uow.q, t.dbtx)
	}
	return t.equipmentRepo
}

func (t *pgTx) reservations() *repository.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.uow.q, t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) categories() *repository.CategoryRepository {
	if t.categoryRepo == nil {
		t.categoryRepo = repository.NewCategoryRepository(t.uow.q, t.dbtx)
	}
	return t.categoryRepo
}

func (t *pgTx) idempotency() *repository.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.uow.q, t.dbtx)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Equipment() shared.EquipmentRepository      { return t.equipment() }
func (t *pgTx) Reservations() shared.ReservationRepository { return t.reservations() }
func (t *pgTx) Categories() shared.CategoryRepository      { return t.categories() }
func (t *pgTx) Idempotency() shared.IdempotencyRepository  { return t.idempotency() }
func (t *pgTx) Reads() shared.CommandReads                 { return &commandReads{tx: t} }

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.uow.q, t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Admins() shared.AdminRepository {
	if t.adminRepo == nil {
		t.adminRepo = repository.NewAdminRepository(t.uow.q, t.dbtx)
	}
	return t.adminRepo
}

type commandReads struct {
	tx *pgTx
}

func (r *commandReads) LockEquipment(ctx context.Context, id uuid.UUID) (*equipment.Equipment, error) {
	return r.tx.equipment().LockByID(ctx, id)
}

func (r *commandReads) LockReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.tx.reservations().LockByID(ctx, id)
}

func (r *commandReads) CategoryByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return r.tx.categories().FindByID(ctx, id)
}

func (r *commandReads) BookingsForEquipment(ctx context.Context, equipmentID uuid.UUID, window reservation.TimeSlot) ([]availability.Booking, error) {
	return r.tx.reservations().BookingsInRange(ctx, equipmentID, window)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	return r.tx.idempotency().Get(ctx, key)
}
