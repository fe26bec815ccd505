package repository

import (
	"context"

	"equipment-reservation/internal/domain/category"
	"equipment-reservation/internal/infra"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CategoryWriteQueries interface {
	CreateCategory(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCategoryParams) error
	GetCategoryByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Categories, error)
}

type CategoryRepository struct {
	queries CategoryWriteQueries
	db      sqlc.DBTX
}

func NewCategoryRepository(queries CategoryWriteQueries, db sqlc.DBTX) *CategoryRepository {
	return &CategoryRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	err := r.queries.CreateCategory(ctx, r.db, sqlc.CreateCategoryParams{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		CreatedAt:   pgconv.TimeToPgtype(c.CreatedAt()),
	})
	if err != nil {
		return wrapWriteErr("failed to create category", err)
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	row, err := r.queries.GetCategoryByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("category not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get category", err)
	}
	return category.ReconstructCategory(row.ID, row.Name, row.Description, pgconv.TimeFromPgtype(row.CreatedAt)), nil
}
