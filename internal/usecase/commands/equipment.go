package commands

import (
	"context"

	"equipment-reservation/internal/domain/equipment"
	reqdto "equipment-reservation/internal/handler/dto/request"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/clock"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidEquipment = errs.New("invalid equipment")
	ErrCategoryNotFound = errs.New("category not found")
)

type EquipmentCommands interface {
	Create(ctx context.Context, req reqdto.CreateEquipmentRequest) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateEquipmentRequest) error
	// Delete is a soft delete; existing reservations keep pointing at the row.
	Delete(ctx context.Context, id uuid.UUID) error
}

type equipmentCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewEquipmentCommands(uow shared.UnitOfWork, clock clock.Clock) EquipmentCommands {
	return &equipmentCommandsImpl{uow: uow, clock: clock}
}

func (e *equipmentCommandsImpl) Create(ctx context.Context, req reqdto.CreateEquipmentRequest) (uuid.UUID, error) {
	item, err := req.ToDomain(e.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidEquipment)
	}

	err = e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureCategory(ctx, tx, item.CategoryID()); err != nil {
			return err
		}
		if err := tx.Equipment().Create(ctx, item); err != nil {
			return errs.Wrap(err, "failed to create equipment")
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return item.ID(), nil
}

func (e *equipmentCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateEquipmentRequest) error {
	now := e.clock.Now()
	return e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := lockEquipment(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := req.ApplyTo(item, now); err != nil {
			return errs.Mark(err, ErrInvalidEquipment)
		}
		if err := ensureCategory(ctx, tx, item.CategoryID()); err != nil {
			return err
		}
		if err := tx.Equipment().Update(ctx, item); err != nil {
			return errs.Wrap(err, "failed to update equipment")
		}
		return nil
	})
}

func (e *equipmentCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	now := e.clock.Now()
	return e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := lockEquipment(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := item.SoftDelete(now); err != nil {
			if errs.Is(err, equipment.ErrAlreadyDeleted) {
				return ErrEquipmentNotFound
			}
			return errs.Mark(err, ErrInvalidEquipment)
		}
		if err := tx.Equipment().Update(ctx, item); err != nil {
			return errs.Wrap(err, "failed to delete equipment")
		}
		return nil
	})
}

func lockEquipment(ctx context.Context, tx shared.Tx, id uuid.UUID) (*equipment.Equipment, error) {
	item, err := tx.Reads().LockEquipment(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, errs.Wrap(err, "failed to lock equipment")
	}
	if item.IsDeleted() {
		return nil, ErrEquipmentNotFound
	}
	return item, nil
}

func ensureCategory(ctx context.Context, tx shared.Tx, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := tx.Reads().CategoryByID(ctx, *id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrCategoryNotFound
		}
		return errs.Wrap(err, "failed to load category")
	}
	return nil
}
