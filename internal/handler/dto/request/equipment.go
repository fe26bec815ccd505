package request

import (
	"time"

	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/pkg/patch"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateEquipmentRequest struct {
	Name          string     `json:"name" binding:"required,max=200"`
	Description   string     `json:"description" binding:"max=4000"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	TotalQuantity int        `json:"total_quantity" binding:"min=0"`
	IsUnlimited   bool       `json:"is_unlimited"`
}

func (r CreateEquipmentRequest) ToDomain(now time.Time) (*equipment.Equipment, error) {
	stock := equipment.Stock{Total: r.TotalQuantity, Unlimited: r.IsUnlimited}
	return equipment.NewEquipment(r.Name, r.Description, r.CategoryID, stock, now)
}

type UpdateEquipmentRequest struct {
	Name          *string    `json:"name,omitempty" binding:"omitempty,max=200"`
	Description   *string    `json:"description,omitempty" binding:"omitempty,max=4000"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	TotalQuantity *int       `json:"total_quantity,omitempty" binding:"omitempty,min=0"`
	IsUnlimited   *bool      `json:"is_unlimited,omitempty"`
	IsActive      *bool      `json:"is_active,omitempty"`
}

func (r UpdateEquipmentRequest) ApplyTo(e *equipment.Equipment, now time.Time) error {
	err := e.Rename(
		patch.Coalesce(r.Name, e.Name()),
		patch.Coalesce(r.Description, e.Description()),
		patch.CoalescePtr(r.CategoryID, e.CategoryID()),
		now,
	)
	if err != nil {
		return err
	}
	stock := equipment.Stock{
		Total:     patch.Coalesce(r.TotalQuantity, e.TotalQuantity()),
		Unlimited: patch.Coalesce(r.IsUnlimited, e.IsUnlimited()),
	}
	if err := e.SetStock(stock, now); err != nil {
		return err
	}
	return e.SetActive(patch.Coalesce(r.IsActive, e.IsActive()), now)
}

// ListEquipmentQuery is the public catalog filter. Inactive items are never listed.
type ListEquipmentQuery struct {
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

func (q ListEquipmentQuery) Filter(includeInactive bool) queries.EquipmentFilter {
	filter := queries.EquipmentFilter{IncludeInactive: includeInactive}
	if q.CategoryID != "" {
		id := uuid.MustParse(q.CategoryID)
		filter.CategoryID = &id
	}
	return filter
}

type AdminListEquipmentQuery struct {
	ListEquipmentQuery
	IncludeInactive bool `form:"include_inactive"`
}
