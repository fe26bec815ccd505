package response

import (
	"time"

	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID                  uuid.UUID  `json:"id"`
	EquipmentID         *uuid.UUID `json:"equipment_id,omitempty"`
	EquipmentName       *string    `json:"equipment_name,omitempty"`
	CustomEquipmentName *string    `json:"custom_equipment_name,omitempty"`
	Quantity            int        `json:"quantity"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             time.Time  `json:"end_time"`
	Status              string     `json:"status"`
	RequesterName       string     `json:"requester_name"`
	Department          string     `json:"department"`
	Note                string     `json:"note"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// AdminReservationResponse adds the requester contact, which public responses omit.
type AdminReservationResponse struct {
	ReservationResponse
	RequesterContact string `json:"requester_contact"`
}

type ReservationListResponse struct {
	Reservations []*AdminReservationResponse `json:"reservations"`
	NextCursor   *string                     `json:"next_cursor,omitempty"`
}

// AvailabilityResponse reports remaining as null for unlimited equipment.
type AvailabilityResponse struct {
	Available bool               `json:"available"`
	Remaining *int               `json:"remaining"`
	Unlimited bool               `json:"unlimited"`
	Reserved  int                `json:"reserved"`
	Equipment *EquipmentResponse `json:"equipment"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	var res ReservationResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	res := make([]*ReservationResponse, len(views))
	for i, v := range views {
		res[i] = FromReservationView(v)
	}
	return res
}

func FromAdminReservationView(v *queries.ReservationView) *AdminReservationResponse {
	return &AdminReservationResponse{
		ReservationResponse: *FromReservationView(v),
		RequesterContact:    v.RequesterContact,
	}
}

func FromReservationList(views []*queries.ReservationView, next *queries.Cursor) *ReservationListResponse {
	res := &ReservationListResponse{Reservations: make([]*AdminReservationResponse, len(views))}
	for i, v := range views {
		res.Reservations[i] = FromAdminReservationView(v)
	}
	if next != nil && next.After != "" {
		res.NextCursor = &next.After
	}
	return res
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	res := &AvailabilityResponse{
		Available: v.Available,
		Unlimited: v.Remaining.IsUnlimited(),
		Reserved:  v.Reserved,
		Equipment: FromEquipmentView(v.Equipment),
	}
	if n, ok := v.Remaining.Count(); ok {
		res.Remaining = &n
	}
	return res
}
