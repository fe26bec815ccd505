package repository

import (
	"context"
	"time"

	"equipment-reservation/internal/domain/admin"
	"equipment-reservation/internal/infra"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type AdminWriteQueries interface {
	CreateAdmin(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateAdminParams) error
	UpdateAdminLastLogin(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateAdminLastLoginParams) error
}

type AdminRepository struct {
	queries AdminWriteQueries
	db      sqlc.DBTX
}

func NewAdminRepository(queries AdminWriteQueries, db sqlc.DBTX) *AdminRepository {
	return &AdminRepository{
		queries: queries,
		db:      db,
	}
}

func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	err := r.queries.CreateAdmin(ctx, r.db, sqlc.CreateAdminParams{
		ID:           a.ID(),
		Email:        a.Email().Value(),
		PasswordHash: a.PasswordHash(),
		Role:         a.Role().String(),
		IsActive:     a.IsActive(),
		CreatedAt:    pgconv.TimeToPgtype(a.CreatedAt()),
		UpdatedAt:    pgconv.TimeToPgtype(a.UpdatedAt()),
	})
	if err != nil {
		return wrapWriteErr("failed to create admin", err)
	}
	return nil
}

func (r *AdminRepository) UpdateLastLogin(ctx context.Context, adminID uuid.UUID, at time.Time) error {
	err := r.queries.UpdateAdminLastLogin(ctx, r.db, sqlc.UpdateAdminLastLoginParams{
		ID:        adminID,
		LastLogin: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update admin last login", err)
	}
	return nil
}
