package queries

import (
	"context"

	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

type EquipmentFilter struct {
	CategoryID      *uuid.UUID
	IncludeInactive bool
}

type EquipmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EquipmentView, error)
	List(ctx context.Context, filter EquipmentFilter) ([]*EquipmentView, error)
}

type EquipmentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*EquipmentView, error)
	List(ctx context.Context, filter EquipmentFilter) ([]*EquipmentView, error)
}

type equipmentQueriesImpl struct {
	readStore EquipmentReadStore
}

func NewEquipmentQueries(readStore EquipmentReadStore) EquipmentQueries {
	return &equipmentQueriesImpl{readStore: readStore}
}

// GetByID hides soft-deleted equipment.
func (q *equipmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*EquipmentView, error) {
	eq, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, errs.Wrap(err, "failed to get equipment")
	}
	if eq.IsDeleted {
		return nil, ErrEquipmentNotFound
	}
	return eq, nil
}

func (q *equipmentQueriesImpl) List(ctx context.Context, filter EquipmentFilter) ([]*EquipmentView, error) {
	items, err := q.readStore.List(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list equipment")
	}
	return items, nil
}
