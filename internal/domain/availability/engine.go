// Package availability computes committed capacity for equipment over half-open time windows.
//
// The functions here are pure: callers load candidate reservations from a store (already narrowed
// by date range, or not at all) and the engine applies the equipment, status and overlap filters
// itself, so the result never depends on how precise the store query was.
package availability

import (
	"slices"

	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/domain/reservation"

	"github.com/google/uuid"
)

// Booking is the slice of a reservation the engine needs.
type Booking struct {
	ID          uuid.UUID
	EquipmentID uuid.UUID // uuid.Nil for ad-hoc items
	Slot        reservation.TimeSlot
	Quantity    int
	Status      reservation.Status
}

type Candidate interface {
	Booking() Booking
}

func (b Booking) Booking() Booking { return b }

func FromReservation(r *reservation.Reservation) Booking {
	equipmentID, _ := r.Target().EquipmentID()
	return Booking{
		ID:          r.ID(),
		EquipmentID: equipmentID,
		Slot:        r.TimeSlot(),
		Quantity:    r.Quantity().Int(),
		Status:      r.Status(),
	}
}

// Remaining is either a unit count (never negative) or unlimited.
type Remaining struct {
	units     int
	unlimited bool
}

func Units(n int) Remaining {
	if n < 0 {
		n = 0
	}
	return Remaining{units: n}
}

func Unlimited() Remaining {
	return Remaining{unlimited: true}
}

func (r Remaining) IsUnlimited() bool { return r.unlimited }

// Count returns the unit count; ok is false when unlimited.
func (r Remaining) Count() (n int, ok bool) {
	if r.unlimited {
		return 0, false
	}
	return r.units, true
}

type Result struct {
	Available bool
	Remaining Remaining
	Reserved  int
}

func counts(b Booking, equipmentID uuid.UUID, window reservation.TimeSlot) bool {
	return b.EquipmentID == equipmentID &&
		b.EquipmentID != uuid.Nil &&
		b.Status.IsActive() &&
		b.Slot.Overlaps(window)
}

// ReservedQuantity sums the quantity of active reservations on equipmentID overlapping window.
// exclude, when non-nil, is left out of the sum.
func ReservedQuantity[C Candidate](candidates []C, equipmentID uuid.UUID, window reservation.TimeSlot, exclude *uuid.UUID) int {
	total := 0
	for _, c := range candidates {
		b := c.Booking()
		if exclude != nil && b.ID == *exclude {
			continue
		}
		if counts(b, equipmentID, window) {
			total += b.Quantity
		}
	}
	return total
}

// Check decides a request against stock given the already committed quantity.
func Check(stock equipment.Stock, reserved, requested int) Result {
	if stock.Unlimited {
		return Result{Available: true, Remaining: Unlimited(), Reserved: reserved}
	}
	free := stock.Total - reserved
	return Result{
		Available: requested <= free,
		Remaining: Units(free),
		Reserved:  reserved,
	}
}

func Evaluate[C Candidate](
	stock equipment.Stock,
	candidates []C,
	equipmentID uuid.UUID,
	window reservation.TimeSlot,
	requested int,
	exclude *uuid.UUID,
) Result {
	return Check(stock, ReservedQuantity(candidates, equipmentID, window, exclude), requested)
}

// FindOverlapping returns the active reservations on equipmentID overlapping window, by start time.
func FindOverlapping[C Candidate](candidates []C, equipmentID uuid.UUID, window reservation.TimeSlot) []C {
	out := make([]C, 0, len(candidates))
	for _, c := range candidates {
		if counts(c.Booking(), equipmentID, window) {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b C) int {
		return a.Booking().Slot.Start().Compare(b.Booking().Slot.Start())
	})
	return out
}
