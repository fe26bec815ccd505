package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot      = errors.New("invalid time slot")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidTarget        = errors.New("either equipment id or custom equipment name is required")
	ErrCustomNameTooLong    = errors.New("custom equipment name is too long")
	ErrInvalidRequester     = errors.New("requester name and contact are required")
	ErrNoteTooLong          = errors.New("note is too long")
	ErrInvalidStatus        = errors.New("invalid reservation status")
	ErrStartInPast          = errors.New("reservation cannot start in the past")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrAlreadyStarted       = errors.New("reservation has already started")
	ErrNotEditable          = errors.New("only pending or approved reservations can be edited")
	ErrContactMismatch      = errors.New("contact does not match the reservation")
)

type Reservation struct {
	id        uuid.UUID
	target    Target
	timeSlot  TimeSlot
	quantity  Quantity
	status    Status
	requester Requester
	note      Note
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation builds a pending reservation. now comes from the caller's clock.
func NewReservation(
	target Target,
	slot TimeSlot,
	quantity Quantity,
	requester Requester,
	note Note,
	now time.Time,
) (*Reservation, error) {
	if slot.Start().Before(now) {
		return nil, ErrStartInPast
	}

	return &Reservation{
		id:        uuid.New(),
		target:    target,
		timeSlot:  slot,
		quantity:  quantity,
		status:    StatusPending,
		requester: requester,
		note:      note,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	target Target,
	slot TimeSlot,
	quantity Quantity,
	status Status,
	requester Requester,
	note Note,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		target:    target,
		timeSlot:  slot,
		quantity:  quantity,
		status:    status,
		requester: requester,
		note:      note,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) Target() Target       { return r.target }
func (r *Reservation) TimeSlot() TimeSlot   { return r.timeSlot }
func (r *Reservation) Quantity() Quantity   { return r.quantity }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) Requester() Requester { return r.requester }
func (r *Reservation) Note() Note           { return r.note }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

// Edit replaces the bookable fields. Capacity is checked by the caller.
func (r *Reservation) Edit(target Target, slot TimeSlot, quantity Quantity, note Note, now time.Time) error {
	if !r.status.IsActive() {
		return ErrNotEditable
	}
	r.target = target
	r.timeSlot = slot
	r.quantity = quantity
	r.note = note
	r.updatedAt = now
	return nil
}

func (r *Reservation) TransitionTo(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !r.status.CanTransitionTo(next) {
		return ErrTransitionNotAllowed
	}
	if next == StatusCancelled && !now.Before(r.timeSlot.Start()) {
		return ErrAlreadyStarted
	}
	r.status = next
	r.updatedAt = now
	return nil
}

// CancelByRequester cancels on behalf of the requester after checking the contact proof.
func (r *Reservation) CancelByRequester(contact string, now time.Time) error {
	if !r.requester.OwnsContact(contact) {
		return ErrContactMismatch
	}
	return r.TransitionTo(StatusCancelled, now)
}
