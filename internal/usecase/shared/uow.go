package shared

import (
	"context"
	"time"

	"equipment-reservation/internal/domain/admin"
	"equipment-reservation/internal/domain/availability"
	"equipment-reservation/internal/domain/category"
	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Equipment() EquipmentRepository
	Reservations() ReservationRepository
	Categories() CategoryRepository
	Notifications() NotificationRepository
	Idempotency() IdempotencyRepository
	Admins() AdminRepository
	Reads() CommandReads
}

// CommandReads are the reads a write needs, bound to the running transaction.
type CommandReads interface {
	// LockEquipment loads the equipment and serializes concurrent writers on it until commit.
	LockEquipment(ctx context.Context, id uuid.UUID) (*equipment.Equipment, error)
	// LockReservation loads the reservation for update.
	LockReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	CategoryByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
	// BookingsForEquipment returns capacity candidates for the equipment. Stores may
	// narrow by window; the engine filters again either way.
	BookingsForEquipment(ctx context.Context, equipmentID uuid.UUID, window reservation.TimeSlot) ([]availability.Booking, error)
	IdempotencyByKey(ctx context.Context, key uuid.UUID) (*IdempotencyRecord, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, e *equipment.Equipment) error
	Update(ctx context.Context, e *equipment.Equipment) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	Update(ctx context.Context, r *reservation.Reservation) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *category.Category) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type IdempotencyRepository interface {
	// TryClaim reserves key for this request. It returns false when a live record already holds it.
	TryClaim(ctx context.Context, key uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (bool, error)
	Complete(ctx context.Context, key, reservationID uuid.UUID) error
}

type AdminRepository interface {
	Create(ctx context.Context, a *admin.Admin) error
	UpdateLastLogin(ctx context.Context, adminID uuid.UUID, at time.Time) error
}
