package request

import (
	"strings"
	"time"

	"equipment-reservation/internal/domain/reservation"
	"equipment-reservation/internal/pkg/patch"

	"github.com/google/uuid"
)

// CreateReservationRequest names either a catalog item (equipment_id) or an ad-hoc one
// (custom_equipment_name). The catalog reference wins when both are sent.
type CreateReservationRequest struct {
	EquipmentID         *uuid.UUID `json:"equipment_id,omitempty"`
	CustomEquipmentName *string    `json:"custom_equipment_name,omitempty" binding:"omitempty,max=200"`
	Quantity            int        `json:"quantity" binding:"required,min=1"`
	StartTime           time.Time  `json:"start_time" binding:"required"`
	EndTime             time.Time  `json:"end_time" binding:"required"`
	RequesterName       string     `json:"requester_name" binding:"required,max=200"`
	RequesterContact    string     `json:"requester_contact" binding:"required,max=200"`
	Department          string     `json:"department" binding:"max=200"`
	Note                *string    `json:"note,omitempty" binding:"omitempty,max=2000"`
}

func (r CreateReservationRequest) ToDomain(now time.Time) (*reservation.Reservation, error) {
	target, err := reservation.ResolveTarget(r.EquipmentID, r.CustomEquipmentName)
	if err != nil {
		return nil, err
	}
	slot, err := reservation.NewTimeSlot(r.StartTime, r.EndTime)
	if err != nil {
		return nil, err
	}
	quantity, err := reservation.NewQuantity(r.Quantity)
	if err != nil {
		return nil, err
	}
	requester, err := reservation.NewRequester(r.RequesterName, r.RequesterContact, r.Department)
	if err != nil {
		return nil, err
	}
	note, err := reservation.NewNote(strings.TrimSpace(patch.Coalesce(r.Note, "")))
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(target, slot, quantity, requester, note, now)
}

// UpdateReservationRequest is an admin edit; absent fields keep their current value.
type UpdateReservationRequest struct {
	EquipmentID         *uuid.UUID `json:"equipment_id,omitempty"`
	CustomEquipmentName *string    `json:"custom_equipment_name,omitempty" binding:"omitempty,max=200"`
	Quantity            *int       `json:"quantity,omitempty" binding:"omitempty,min=1"`
	StartTime           *time.Time `json:"start_time,omitempty"`
	EndTime             *time.Time `json:"end_time,omitempty"`
	Note                *string    `json:"note,omitempty" binding:"omitempty,max=2000"`
}

func (r UpdateReservationRequest) ApplyTo(res *reservation.Reservation, now time.Time) error {
	target := res.Target()
	if r.EquipmentID != nil || r.CustomEquipmentName != nil {
		var err error
		target, err = reservation.ResolveTarget(r.EquipmentID, r.CustomEquipmentName)
		if err != nil {
			return err
		}
	}
	slot, err := reservation.NewTimeSlot(
		patch.Coalesce(r.StartTime, res.TimeSlot().Start()),
		patch.Coalesce(r.EndTime, res.TimeSlot().End()),
	)
	if err != nil {
		return err
	}
	quantity, err := reservation.NewQuantity(patch.Coalesce(r.Quantity, res.Quantity().Int()))
	if err != nil {
		return err
	}
	note := res.Note()
	if r.Note != nil {
		if note, err = reservation.NewNote(strings.TrimSpace(*r.Note)); err != nil {
			return err
		}
	}
	return res.Edit(target, slot, quantity, note, now)
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,reservation_status"`
}

func (r ChangeStatusRequest) ToDomain() (reservation.Status, error) {
	return reservation.ParseStatus(r.Status)
}

type CancelReservationRequest struct {
	Contact string `json:"contact" binding:"required,max=200"`
}

// AvailabilityQuery binds GET /equipment/:id/availability. Times are RFC 3339.
type AvailabilityQuery struct {
	Start                time.Time `form:"start" binding:"required"`
	End                  time.Time `form:"end" binding:"required"`
	Quantity             int       `form:"quantity,default=1" binding:"min=1"`
	ExcludeReservationID string    `form:"excludeReservationId" binding:"omitempty,uuid"`
}

func (q AvailabilityQuery) Exclude() *uuid.UUID {
	if q.ExcludeReservationID == "" {
		return nil
	}
	id, err := uuid.Parse(q.ExcludeReservationID)
	if err != nil {
		return nil
	}
	return &id
}

type WindowQuery struct {
	Start time.Time `form:"start" binding:"required"`
	End   time.Time `form:"end" binding:"required"`
}

type ListReservationsQuery struct {
	EquipmentID string    `form:"equipment_id" binding:"omitempty,uuid"`
	Status      []string  `form:"status" binding:"omitempty,dive,reservation_status"`
	Start       time.Time `form:"start"`
	End         time.Time `form:"end"`
	Cursor      string    `form:"cursor"`
	Limit       int       `form:"limit" binding:"omitempty,min=1,max=200"`
}
