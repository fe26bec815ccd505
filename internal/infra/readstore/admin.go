package readstore

import (
	"context"

	"equipment-reservation/internal/infra"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/pgconv"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type AdminReadQueries interface {
	GetAdminByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Admins, error)
	GetAdminByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Admins, error)
}

type AdminReadStore struct {
	queries AdminReadQueries
	db      sqlc.DBTX
}

func NewAdminReadStore(queries AdminReadQueries, db sqlc.DBTX) *AdminReadStore {
	return &AdminReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *AdminReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AdminView, error) {
	row, err := r.queries.GetAdminByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("admin not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find admin by ID", err)
	}
	return toAdminView(row), nil
}

func (r *AdminReadStore) FindByEmail(ctx context.Context, email string) (*queries.AdminView, string, error) {
	row, err := r.queries.GetAdminByEmail(ctx, r.db, email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("admin not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find admin by email", err)
	}
	return toAdminView(row), row.PasswordHash, nil
}

func toAdminView(row sqlc.Admins) *queries.AdminView {
	return &queries.AdminView{
		ID:        row.ID,
		Email:     row.Email,
		Role:      row.Role,
		IsActive:  row.IsActive,
		LastLogin: pgconv.TimePtrFromPgtype(row.LastLogin),
	}
}
