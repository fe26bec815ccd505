package readstore

import (
	"context"

	"equipment-reservation/internal/infra"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/pgconv"
	"equipment-reservation/internal/usecase/queries"
)

type CategoryReadQueries interface {
	ListCategories(ctx context.Context, db sqlc.DBTX) ([]sqlc.Categories, error)
}

type CategoryReadStore struct {
	queries CategoryReadQueries
	db      sqlc.DBTX
}

func NewCategoryReadStore(queries CategoryReadQueries, db sqlc.DBTX) *CategoryReadStore {
	return &CategoryReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CategoryReadStore) List(ctx context.Context) ([]*queries.CategoryView, error) {
	rows, err := r.queries.ListCategories(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list categories", err)
	}

	items := make([]*queries.CategoryView, 0, len(rows))
	for _, row := range rows {
		items = append(items, &queries.CategoryView{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return items, nil
}
