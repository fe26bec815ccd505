//go:build unit || e2e

package builder

import (
	"time"

	"equipment-reservation/internal/domain/reservation"
	reqdto "equipment-reservation/internal/handler/dto/request"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID                  uuid.UUID
	EquipmentID         *uuid.UUID
	CustomEquipmentName *string
	Quantity            int
	StartTime           time.Time
	EndTime             time.Time
	Status              reservation.Status
	RequesterName       string
	RequesterContact    string
	Department          string
	Note                string
}

// NewReservationBuilder books one unit for two hours starting tomorrow at 09:00 UTC.
func NewReservationBuilder() *ReservationBuilder {
	equipmentID := uuid.New()
	start := time.Now().UTC().Truncate(24 * time.Hour).Add(24*time.Hour + 9*time.Hour)
	return &ReservationBuilder{
		ID:               uuid.New(),
		EquipmentID:      &equipmentID,
		Quantity:         1,
		StartTime:        start,
		EndTime:          start.Add(2 * time.Hour),
		Status:           reservation.StatusPending,
		RequesterName:    "Hanako Sato",
		RequesterContact: "hanako@example.com",
		Department:       "ICU",
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) ForEquipment(id uuid.UUID) *ReservationBuilder {
	b.EquipmentID = &id
	b.CustomEquipmentName = nil
	return b
}

func (b *ReservationBuilder) AdHoc(name string) *ReservationBuilder {
	b.EquipmentID = nil
	b.CustomEquipmentName = &name
	return b
}

func (b *ReservationBuilder) Window(start, end time.Time) *ReservationBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *ReservationBuilder) WithQuantity(n int) *ReservationBuilder {
	b.Quantity = n
	return b
}

func (b *ReservationBuilder) WithStatus(s reservation.Status) *ReservationBuilder {
	b.Status = s
	return b
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	target, err := reservation.ResolveTarget(b.EquipmentID, b.CustomEquipmentName)
	if err != nil {
		return nil, err
	}
	slot, err := reservation.NewTimeSlot(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	quantity, err := reservation.NewQuantity(b.Quantity)
	if err != nil {
		return nil, err
	}
	requester, err := reservation.NewRequester(b.RequesterName, b.RequesterContact, b.Department)
	if err != nil {
		return nil, err
	}
	note, err := reservation.NewNote(b.Note)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return reservation.ReconstructReservation(b.ID, target, slot, quantity, b.Status, requester, note, now, now), nil
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	now := time.Now()
	return &queries.ReservationView{
		ID:                  b.ID,
		EquipmentID:         b.EquipmentID,
		CustomEquipmentName: b.CustomEquipmentName,
		Quantity:            b.Quantity,
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		Status:              b.Status.String(),
		RequesterName:       b.RequesterName,
		RequesterContact:    b.RequesterContact,
		Department:          b.Department,
		Note:                b.Note,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func (b *ReservationBuilder) BuildCreateDTO() reqdto.CreateReservationRequest {
	req := reqdto.CreateReservationRequest{
		EquipmentID:         b.EquipmentID,
		CustomEquipmentName: b.CustomEquipmentName,
		Quantity:            b.Quantity,
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		RequesterName:       b.RequesterName,
		RequesterContact:    b.RequesterContact,
		Department:          b.Department,
	}
	if b.Note != "" {
		note := b.Note
		req.Note = &note
	}
	return req
}
