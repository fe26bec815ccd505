package queries

import (
	"time"

	"equipment-reservation/internal/domain/availability"
	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/domain/reservation"

	"github.com/google/uuid"
)

type EquipmentView struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	CategoryName  *string    `json:"category_name,omitempty"`
	TotalQuantity int        `json:"total_quantity"`
	IsUnlimited   bool       `json:"is_unlimited"`
	IsActive      bool       `json:"is_active"`
	IsDeleted     bool       `json:"is_deleted"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (v *EquipmentView) Stock() equipment.Stock {
	return equipment.Stock{Total: v.TotalQuantity, Unlimited: v.IsUnlimited}
}

func (v *EquipmentView) IsReservable() bool {
	return v.IsActive && !v.IsDeleted
}

type CategoryView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReservationView struct {
	ID                  uuid.UUID  `json:"id"`
	EquipmentID         *uuid.UUID `json:"equipment_id,omitempty"`
	EquipmentName       *string    `json:"equipment_name,omitempty"`
	CustomEquipmentName *string    `json:"custom_equipment_name,omitempty"`
	Quantity            int        `json:"quantity"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             time.Time  `json:"end_time"`
	Status              string     `json:"status"`
	RequesterName       string     `json:"requester_name"`
	RequesterContact    string     `json:"requester_contact"`
	Department          string     `json:"department"`
	Note                string     `json:"note"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Booking lets reservation views feed the availability engine directly.
func (v *ReservationView) Booking() availability.Booking {
	b := availability.Booking{
		ID:       v.ID,
		Slot:     reservation.ReconstructTimeSlot(v.StartTime, v.EndTime),
		Quantity: v.Quantity,
		Status:   reservation.Status(v.Status),
	}
	if v.EquipmentID != nil {
		b.EquipmentID = *v.EquipmentID
	}
	return b
}

type AdminView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
