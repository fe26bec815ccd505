package queries

import (
	"context"

	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrAdminNotFound = errs.New("admin not found")
	ErrAdminInactive = errs.New("admin inactive")
)

type AdminReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AdminView, error)
	// FindByEmail also returns the stored password hash.
	FindByEmail(ctx context.Context, email string) (*AdminView, string, error)
}

type AdminQueries interface {
	GetCurrentAdmin(ctx context.Context, adminID uuid.UUID) (*AdminView, error)
}

type adminQueriesImpl struct {
	readStore AdminReadStore
}

func NewAdminQueries(readStore AdminReadStore) AdminQueries {
	return &adminQueriesImpl{readStore: readStore}
}

func (q *adminQueriesImpl) GetCurrentAdmin(ctx context.Context, adminID uuid.UUID) (*AdminView, error) {
	admin, err := q.readStore.FindByID(ctx, adminID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	if !admin.IsActive {
		return nil, ErrAdminInactive
	}

	return admin, nil
}
