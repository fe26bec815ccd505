package queries

import (
	"context"
	"time"

	"equipment-reservation/internal/domain/availability"
	"equipment-reservation/internal/domain/reservation"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEquipmentNotFound = errs.New("equipment not found")
	ErrInvalidInterval   = errs.New("start time must be before end time")
	ErrInvalidQuantity   = errs.New("quantity must be at least 1")
)

type AvailabilityInput struct {
	EquipmentID          uuid.UUID
	Start                time.Time
	End                  time.Time
	Quantity             int
	ExcludeReservationID *uuid.UUID
}

type AvailabilityView struct {
	Available bool
	Remaining availability.Remaining
	Reserved  int
	Equipment *EquipmentView
}

type AvailabilityQueries interface {
	GetReservedQuantity(ctx context.Context, equipmentID uuid.UUID, start, end time.Time, exclude *uuid.UUID) (int, error)
	CheckAvailability(ctx context.Context, in AvailabilityInput) (*AvailabilityView, error)
	FindOverlapping(ctx context.Context, equipmentID uuid.UUID, start, end time.Time) ([]*ReservationView, error)
}

type availabilityQueriesImpl struct {
	equipment    EquipmentReadStore
	reservations ReservationReadStore
}

func NewAvailabilityQueries(equipment EquipmentReadStore, reservations ReservationReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{
		equipment:    equipment,
		reservations: reservations,
	}
}

func (q *availabilityQueriesImpl) GetReservedQuantity(ctx context.Context, equipmentID uuid.UUID, start, end time.Time, exclude *uuid.UUID) (int, error) {
	window, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return 0, ErrInvalidInterval
	}
	if _, err := q.loadEquipment(ctx, equipmentID); err != nil {
		return 0, err
	}

	candidates, err := q.candidates(ctx, equipmentID, window)
	if err != nil {
		return 0, err
	}
	return availability.ReservedQuantity(candidates, equipmentID, window, exclude), nil
}

func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, in AvailabilityInput) (*AvailabilityView, error) {
	window, err := reservation.NewTimeSlot(in.Start, in.End)
	if err != nil {
		return nil, ErrInvalidInterval
	}
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	eq, err := q.loadEquipment(ctx, in.EquipmentID)
	if err != nil {
		return nil, err
	}

	candidates, err := q.candidates(ctx, in.EquipmentID, window)
	if err != nil {
		return nil, err
	}

	res := availability.Evaluate(eq.Stock(), candidates, in.EquipmentID, window, in.Quantity, in.ExcludeReservationID)
	return &AvailabilityView{
		Available: res.Available,
		Remaining: res.Remaining,
		Reserved:  res.Reserved,
		Equipment: eq,
	}, nil
}

func (q *availabilityQueriesImpl) FindOverlapping(ctx context.Context, equipmentID uuid.UUID, start, end time.Time) ([]*ReservationView, error) {
	window, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return nil, ErrInvalidInterval
	}
	if _, err := q.loadEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	candidates, err := q.candidates(ctx, equipmentID, window)
	if err != nil {
		return nil, err
	}
	return availability.FindOverlapping(candidates, equipmentID, window), nil
}

func (q *availabilityQueriesImpl) loadEquipment(ctx context.Context, id uuid.UUID) (*EquipmentView, error) {
	eq, err := q.equipment.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, errs.Wrap(err, "failed to load equipment")
	}
	if eq.IsDeleted {
		return nil, ErrEquipmentNotFound
	}
	return eq, nil
}

func (q *availabilityQueriesImpl) candidates(ctx context.Context, equipmentID uuid.UUID, window reservation.TimeSlot) ([]*ReservationView, error) {
	rows, err := q.reservations.ListForEquipment(ctx, equipmentID, window)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load reservations")
	}
	return rows, nil
}
