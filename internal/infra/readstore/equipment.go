package readstore

import (
	"context"

	"equipment-reservation/internal/infra"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/pgconv"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type EquipmentReadQueries interface {
	GetEquipmentViewByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetEquipmentViewByIDRow, error)
	ListEquipmentViews(ctx context.Context, db sqlc.DBTX, arg sqlc.ListEquipmentViewsParams) ([]sqlc.ListEquipmentViewsRow, error)
}

type EquipmentReadStore struct {
	queries EquipmentReadQueries
	db      sqlc.DBTX
}

func NewEquipmentReadStore(queries EquipmentReadQueries, db sqlc.DBTX) *EquipmentReadStore {
	return &EquipmentReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *EquipmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.EquipmentView, error) {
	row, err := r.queries.GetEquipmentViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("equipment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get equipment view by id", err)
	}
	return toEquipmentView(sqlc.ListEquipmentViewsRow(row)), nil
}

func (r *EquipmentReadStore) List(ctx context.Context, filter queries.EquipmentFilter) ([]*queries.EquipmentView, error) {
	rows, err := r.queries.ListEquipmentViews(ctx, r.db, sqlc.ListEquipmentViewsParams{
		IncludeInactive: filter.IncludeInactive,
		CategoryID:      pgconv.UUIDPtrToPgtype(filter.CategoryID),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list equipment", err)
	}

	items := make([]*queries.EquipmentView, 0, len(rows))
	for _, row := range rows {
		items = append(items, toEquipmentView(row))
	}
	return items, nil
}

func toEquipmentView(row sqlc.ListEquipmentViewsRow) *queries.EquipmentView {
	return &queries.EquipmentView{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description,
		CategoryID:    pgconv.UUIDPtrFromPgtype(row.CategoryID),
		CategoryName:  pgconv.StringPtrFromPgtype(row.CategoryName),
		TotalQuantity: int(row.TotalQuantity),
		IsUnlimited:   row.IsUnlimited,
		IsActive:      row.IsActive,
		IsDeleted:     row.IsDeleted,
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
