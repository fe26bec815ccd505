package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"equipment-reservation/internal/domain/availability"
	"equipment-reservation/internal/domain/reservation"
	reqdto "equipment-reservation/internal/handler/dto/request"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/clock"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEquipmentNotFound      = errs.New("equipment not found")
	ErrEquipmentNotReservable = errs.New("equipment not reservable")
	ErrReservationNotFound    = errs.New("reservation not found")
	ErrCapacityExceeded       = errs.New("capacity exceeded")
	ErrInvalidReservation     = errs.New("invalid reservation")
	ErrStatusChangeRejected   = errs.New("status change rejected")
	ErrIdempotencyKeyReused   = errs.New("idempotency key reused with a different request")
	ErrIdempotencyInProgress  = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errs.New("idempotency check failed")
)

const (
	endpointCreateReservation = "POST /api/reservations"
	idempotencyTTL            = 24 * time.Hour

	jobKindEmail = "email"

	TopicReservationCreated   = "reservation_created"
	TopicReservationUpdated   = "reservation_updated"
	TopicReservationStatus    = "reservation_status_changed"
	TopicReservationCancelled = "reservation_cancelled"
)

type CreateReservationResult struct {
	ReservationID uuid.UUID
	IsReplayed    bool
}

type ReservationCommands interface {
	// Create books a reservation. idempotencyKey is optional; a repeated key with the same
	// body replays the first result.
	Create(ctx context.Context, req reqdto.CreateReservationRequest, idempotencyKey *uuid.UUID) (*CreateReservationResult, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateReservationRequest) error
	ChangeStatus(ctx context.Context, id uuid.UUID, req reqdto.ChangeStatusRequest) error
	CancelByRequester(ctx context.Context, id uuid.UUID, req reqdto.CancelReservationRequest) error
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, clock clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{
		uow:   uow,
		clock: clock,
	}
}

func (r *reservationCommandsImpl) Create(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	idempotencyKey *uuid.UUID,
) (*CreateReservationResult, error) {
	now := r.clock.Now()
	requestHash := calculateRequestHash(req)

	// With a key, validation waits for the replay lookup: a retry of an accepted request
	// must replay even once its start time has passed.
	var res *reservation.Reservation
	if idempotencyKey == nil {
		built, err := req.ToDomain(now)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidReservation)
		}
		res = built
	}

	var result *CreateReservationResult
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil

		if idempotencyKey != nil {
			replayID, err := r.claimIdempotencyKey(ctx, tx, *idempotencyKey, requestHash, now)
			if err != nil {
				return err
			}
			if replayID != nil {
				result = &CreateReservationResult{ReservationID: *replayID, IsReplayed: true}
				return nil
			}
		}
		if res == nil {
			built, err := req.ToDomain(now)
			if err != nil {
				return errs.Mark(err, ErrInvalidReservation)
			}
			res = built
		}

		if err := ensureCapacity(ctx, tx, res.Target(), res.TimeSlot(), res.Quantity(), nil); err != nil {
			return err
		}
		if err := tx.Reservations().Create(ctx, res); err != nil {
			return errs.Wrap(err, "failed to create reservation")
		}
		if err := enqueueNotification(ctx, tx, TopicReservationCreated, res, now); err != nil {
			return err
		}
		if idempotencyKey != nil {
			if err := tx.Idempotency().Complete(ctx, *idempotencyKey, res.ID()); err != nil {
				return errs.Mark(err, ErrIdempotencyCheckFailed)
			}
		}

		result = &CreateReservationResult{ReservationID: res.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Update re-checks capacity with the reservation itself excluded, so an edit that keeps
// its own units is never rejected by them.
func (r *reservationCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateReservationRequest) error {
	now := r.clock.Now()
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := lockReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := req.ApplyTo(res, now); err != nil {
			return errs.Mark(err, ErrInvalidReservation)
		}

		exclude := res.ID()
		if err := ensureCapacity(ctx, tx, res.Target(), res.TimeSlot(), res.Quantity(), &exclude); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Wrap(err, "failed to update reservation")
		}
		return enqueueNotification(ctx, tx, TopicReservationUpdated, res, now)
	})
}

func (r *reservationCommandsImpl) ChangeStatus(ctx context.Context, id uuid.UUID, req reqdto.ChangeStatusRequest) error {
	next, err := req.ToDomain()
	if err != nil {
		return errs.Mark(err, ErrInvalidReservation)
	}

	now := r.clock.Now()
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := lockReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := res.TransitionTo(next, now); err != nil {
			return errs.Mark(err, ErrStatusChangeRejected)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Wrap(err, "failed to update reservation status")
		}
		return enqueueNotification(ctx, tx, TopicReservationStatus, res, now)
	})
}

func (r *reservationCommandsImpl) CancelByRequester(ctx context.Context, id uuid.UUID, req reqdto.CancelReservationRequest) error {
	now := r.clock.Now()
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := lockReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := res.CancelByRequester(req.Contact, now); err != nil {
			return errs.Mark(err, ErrStatusChangeRejected)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Wrap(err, "failed to cancel reservation")
		}
		return enqueueNotification(ctx, tx, TopicReservationCancelled, res, now)
	})
}

// claimIdempotencyKey returns the reservation to replay, or nil when this request owns the key.
func (r *reservationCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key uuid.UUID,
	requestHash string,
	now time.Time,
) (*uuid.UUID, error) {
	claimed, err := tx.Idempotency().TryClaim(ctx, key, endpointCreateReservation, requestHash, now, now.Add(idempotencyTTL))
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if claimed {
		return nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if existing.Endpoint != endpointCreateReservation || existing.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyReused
	}
	if existing.ResultReservationID == nil {
		return nil, ErrIdempotencyInProgress
	}
	return existing.ResultReservationID, nil
}

// ensureCapacity runs the availability engine against committed reservations while the
// equipment is locked. Ad-hoc targets carry no stock and always pass.
func ensureCapacity(
	ctx context.Context,
	tx shared.Tx,
	target reservation.Target,
	slot reservation.TimeSlot,
	quantity reservation.Quantity,
	exclude *uuid.UUID,
) error {
	equipmentID, ok := target.EquipmentID()
	if !ok {
		return nil
	}

	eq, err := tx.Reads().LockEquipment(ctx, equipmentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrEquipmentNotFound
		}
		return errs.Wrap(err, "failed to lock equipment")
	}
	if !eq.IsReservable() {
		return ErrEquipmentNotReservable
	}

	bookings, err := tx.Reads().BookingsForEquipment(ctx, equipmentID, slot)
	if err != nil {
		return errs.Wrap(err, "failed to load reservations for equipment")
	}

	result := availability.Evaluate(eq.Stock(), bookings, equipmentID, slot, quantity.Int(), exclude)
	if !result.Available {
		return errs.Mark(
			errs.Newf("requested %d, %d of %d reserved", quantity.Int(), result.Reserved, eq.TotalQuantity()),
			ErrCapacityExceeded,
		)
	}
	return nil
}

func lockReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reads().LockReservation(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Wrap(err, "failed to lock reservation")
	}
	return res, nil
}

type reservationNotification struct {
	ReservationID uuid.UUID  `json:"reservation_id"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	EquipmentID   *uuid.UUID `json:"equipment_id,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	Contact       string     `json:"contact"`
}

func enqueueNotification(ctx context.Context, tx shared.Tx, topic string, res *reservation.Reservation, now time.Time) error {
	msg := reservationNotification{
		ReservationID: res.ID(),
		Type:          topic,
		Status:        res.Status().String(),
		StartTime:     res.TimeSlot().Start(),
		EndTime:       res.TimeSlot().End(),
		Contact:       res.Requester().Contact(),
	}
	if id, ok := res.Target().EquipmentID(); ok {
		msg.EquipmentID = &id
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return errs.Wrap(err, "failed to encode notification")
	}
	if err := tx.Notifications().CreateJob(ctx, jobKindEmail, topic, payload, now); err != nil {
		return errs.Wrap(err, "failed to enqueue notification")
	}
	return nil
}

func calculateRequestHash(req reqdto.CreateReservationRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
