package converter

import (
	"equipment-reservation/internal/domain/equipment"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/pgconv"
)

func EquipmentToInfra(e *equipment.Equipment) sqlc.CreateEquipmentParams {
	return sqlc.CreateEquipmentParams{
		ID:            e.ID(),
		Name:          e.Name(),
		Description:   e.Description(),
		CategoryID:    pgconv.UUIDPtrToPgtype(e.CategoryID()),
		TotalQuantity: int32(e.TotalQuantity()), // #nosec G115 -- validated by the request layer
		IsUnlimited:   e.IsUnlimited(),
		IsActive:      e.IsActive(),
		IsDeleted:     e.IsDeleted(),
		CreatedAt:     pgconv.TimeToPgtype(e.CreatedAt()),
		UpdatedAt:     pgconv.TimeToPgtype(e.UpdatedAt()),
	}
}

func EquipmentUpdateToInfra(e *equipment.Equipment) sqlc.UpdateEquipmentParams {
	return sqlc.UpdateEquipmentParams{
		ID:            e.ID(),
		Name:          e.Name(),
		Description:   e.Description(),
		CategoryID:    pgconv.UUIDPtrToPgtype(e.CategoryID()),
		TotalQuantity: int32(e.TotalQuantity()), // #nosec G115 -- validated by the request layer
		IsUnlimited:   e.IsUnlimited(),
		IsActive:      e.IsActive(),
		IsDeleted:     e.IsDeleted(),
		UpdatedAt:     pgconv.TimeToPgtype(e.UpdatedAt()),
	}
}

func EquipmentFromInfra(row sqlc.Equipment) *equipment.Equipment {
	return equipment.ReconstructEquipment(
		row.ID,
		row.Name,
		row.Description,
		pgconv.UUIDPtrFromPgtype(row.CategoryID),
		equipment.Stock{Total: int(row.TotalQuantity), Unlimited: row.IsUnlimited},
		row.IsActive,
		row.IsDeleted,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
