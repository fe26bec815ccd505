package commands

import (
	"context"

	reqdto "equipment-reservation/internal/handler/dto/request"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/clock"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory   = errs.New("invalid category")
	ErrDuplicateCategory = errs.New("category already exists")
)

type CategoryCommands interface {
	Create(ctx context.Context, req reqdto.CreateCategoryRequest) (uuid.UUID, error)
}

type categoryCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCategoryCommands(uow shared.UnitOfWork, clock clock.Clock) CategoryCommands {
	return &categoryCommandsImpl{uow: uow, clock: clock}
}

func (c *categoryCommandsImpl) Create(ctx context.Context, req reqdto.CreateCategoryRequest) (uuid.UUID, error) {
	cat, err := req.ToDomain(c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidCategory)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Categories().Create(ctx, cat); err != nil {
			if infraDuplicate(err) {
				return ErrDuplicateCategory
			}
			return errs.Wrap(err, "failed to create category")
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return cat.ID(), nil
}

func infraDuplicate(err error) bool {
	return infra.IsKind(err, infra.KindDuplicateKey)
}
