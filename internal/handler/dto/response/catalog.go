package response

import (
	"time"

	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type EquipmentResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	CategoryName  *string    `json:"category_name,omitempty"`
	TotalQuantity int        `json:"total_quantity"`
	IsUnlimited   bool       `json:"is_unlimited"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func FromCategoryViews(views []*queries.CategoryView) []*CategoryResponse {
	res := make([]*CategoryResponse, 0, len(views))
	_ = copier.Copy(&res, views)
	return res
}

func FromEquipmentView(v *queries.EquipmentView) *EquipmentResponse {
	var res EquipmentResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromEquipmentViews(views []*queries.EquipmentView) []*EquipmentResponse {
	res := make([]*EquipmentResponse, len(views))
	for i, v := range views {
		res[i] = FromEquipmentView(v)
	}
	return res
}
