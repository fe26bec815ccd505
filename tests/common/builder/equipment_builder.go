//go:build unit || e2e

package builder

import (
	"time"

	"equipment-reservation/internal/domain/equipment"
	reqdto "equipment-reservation/internal/handler/dto/request"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type EquipmentBuilder struct {
	ID            uuid.UUID
	Name          string
	Description   string
	CategoryID    *uuid.UUID
	TotalQuantity int
	IsUnlimited   bool
	IsActive      bool
	IsDeleted     bool
}

func NewEquipmentBuilder() *EquipmentBuilder {
	return &EquipmentBuilder{
		ID:            uuid.New(),
		Name:          "Infusion pump",
		Description:   "Volumetric infusion pump",
		TotalQuantity: 5,
		IsActive:      true,
	}
}

func (b *EquipmentBuilder) With(mutate func(*EquipmentBuilder)) *EquipmentBuilder {
	mutate(b)
	return b
}

func (b *EquipmentBuilder) WithStock(total int) *EquipmentBuilder {
	b.TotalQuantity = total
	b.IsUnlimited = false
	return b
}

func (b *EquipmentBuilder) Unlimited() *EquipmentBuilder {
	b.IsUnlimited = true
	return b
}

func (b *EquipmentBuilder) BuildDomain() *equipment.Equipment {
	now := time.Now()
	return equipment.ReconstructEquipment(
		b.ID,
		b.Name,
		b.Description,
		b.CategoryID,
		equipment.Stock{Total: b.TotalQuantity, Unlimited: b.IsUnlimited},
		b.IsActive,
		b.IsDeleted,
		now,
		now,
	)
}

func (b *EquipmentBuilder) BuildView() *queries.EquipmentView {
	now := time.Now()
	return &queries.EquipmentView{
		ID:            b.ID,
		Name:          b.Name,
		Description:   b.Description,
		CategoryID:    b.CategoryID,
		TotalQuantity: b.TotalQuantity,
		IsUnlimited:   b.IsUnlimited,
		IsActive:      b.IsActive,
		IsDeleted:     b.IsDeleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *EquipmentBuilder) BuildCreateDTO() reqdto.CreateEquipmentRequest {
	return reqdto.CreateEquipmentRequest{
		Name:          b.Name,
		Description:   b.Description,
		CategoryID:    b.CategoryID,
		TotalQuantity: b.TotalQuantity,
		IsUnlimited:   b.IsUnlimited,
	}
}
