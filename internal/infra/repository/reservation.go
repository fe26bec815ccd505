package repository

import (
	"context"

	"equipment-reservation/internal/domain/availability"
	"equipment-reservation/internal/domain/reservation"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/infra/repository/converter"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) error
	UpdateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationParams) (int64, error)
	LockReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	ListActiveReservationsInRange(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveReservationsInRangeParams) ([]sqlc.ListActiveReservationsInRangeRow, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      sqlc.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db sqlc.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	if err := r.queries.CreateReservation(ctx, r.db, converter.ReservationToInfra(res)); err != nil {
		return wrapWriteErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	affected, err := r.queries.UpdateReservation(ctx, r.db, converter.ReservationUpdateToInfra(res))
	if err != nil {
		return wrapWriteErr("failed to update reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) LockByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.LockReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}

	res, err := converter.ReservationFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation is invalid", err)
	}
	return res, nil
}

func (r *ReservationRepository) BookingsInRange(ctx context.Context, equipmentID uuid.UUID, window reservation.TimeSlot) ([]availability.Booking, error) {
	rows, err := r.queries.ListActiveReservationsInRange(ctx, r.db, sqlc.ListActiveReservationsInRangeParams{
		EquipmentID: equipmentID,
		WindowEnd:   pgconv.TimeToPgtype(window.End()),
		WindowStart: pgconv.TimeToPgtype(window.Start()),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations for equipment", err)
	}

	bookings := make([]availability.Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, availability.Booking{
			ID:          row.ID,
			EquipmentID: equipmentID,
			Slot:        reservation.ReconstructTimeSlot(row.StartTime.Time, row.EndTime.Time),
			Quantity:    int(row.Quantity),
			Status:      reservation.Status(row.Status),
		})
	}
	return bookings, nil
}
