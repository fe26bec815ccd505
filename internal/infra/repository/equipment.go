package repository

import (
	"context"

	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/infra/repository/converter"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type EquipmentWriteQueries interface {
	CreateEquipment(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateEquipmentParams) error
	UpdateEquipment(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateEquipmentParams) (int64, error)
	LockEquipmentByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Equipment, error)
}

type EquipmentRepository struct {
	queries EquipmentWriteQueries
	db      sqlc.DBTX
}

func NewEquipmentRepository(queries EquipmentWriteQueries, db sqlc.DBTX) *EquipmentRepository {
	return &EquipmentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *equipment.Equipment) error {
	if err := r.queries.CreateEquipment(ctx, r.db, converter.EquipmentToInfra(e)); err != nil {
		return wrapWriteErr("failed to create equipment", err)
	}
	return nil
}

func (r *EquipmentRepository) Update(ctx context.Context, e *equipment.Equipment) error {
	affected, err := r.queries.UpdateEquipment(ctx, r.db, converter.EquipmentUpdateToInfra(e))
	if err != nil {
		return wrapWriteErr("failed to update equipment", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("equipment not found", nil, infra.KindNotFound)
	}
	return nil
}

// LockByID takes a row lock held until the surrounding transaction ends.
func (r *EquipmentRepository) LockByID(ctx context.Context, id uuid.UUID) (*equipment.Equipment, error) {
	row, err := r.queries.LockEquipmentByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("equipment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock equipment", err)
	}
	return converter.EquipmentFromInfra(row), nil
}
