package readstore

import (
	"context"

	"equipment-reservation/internal/domain/reservation"
	"equipment-reservation/internal/infra"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/pgconv"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationReadQueries interface {
	GetReservationViewByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetReservationViewByIDRow, error)
	ListActiveReservationsInRange(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveReservationsInRangeParams) ([]sqlc.ListActiveReservationsInRangeRow, error)
	ListReservationViews(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationViewsParams) ([]sqlc.ListReservationViewsRow, error)
}

type ReservationReadStore struct {
	queries ReservationReadQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get reservation view by id", err)
	}
	return toReservationView(sqlc.ListReservationViewsRow(row)), nil
}

// ListForEquipment pushes the overlap predicate down to the index on (equipment_id, start_time, end_time).
func (r *ReservationReadStore) ListForEquipment(ctx context.Context, equipmentID uuid.UUID, window reservation.TimeSlot) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListActiveReservationsInRange(ctx, r.db, sqlc.ListActiveReservationsInRangeParams{
		EquipmentID: equipmentID,
		WindowEnd:   pgconv.TimeToPgtype(window.End()),
		WindowStart: pgconv.TimeToPgtype(window.Start()),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations for equipment", err)
	}

	items := make([]*queries.ReservationView, 0, len(rows))
	for _, row := range rows {
		items = append(items, toReservationView(sqlc.ListReservationViewsRow(row)))
	}
	return items, nil
}

func (r *ReservationReadStore) List(ctx context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
	params := sqlc.ListReservationViewsParams{
		EquipmentID: pgconv.UUIDPtrToPgtype(filter.EquipmentID),
		Statuses:    filter.Statuses,
		AfterStart:  pgconv.TimePtrToPgtype(filter.AfterStart),
		AfterID:     pgconv.UUIDPtrToPgtype(filter.AfterID),
		LimitCount:  int32(filter.Limit), // #nosec G115 -- bounded by queries.MaxListLimit
	}
	if filter.Window != nil {
		params.WindowStart = pgconv.TimeToPgtype(filter.Window.Start())
		params.WindowEnd = pgconv.TimeToPgtype(filter.Window.End())
	}

	rows, err := r.queries.ListReservationViews(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	items := make([]*queries.ReservationView, 0, len(rows))
	for _, row := range rows {
		items = append(items, toReservationView(row))
	}
	return items, nil
}

func toReservationView(row sqlc.ListReservationViewsRow) *queries.ReservationView {
	return &queries.ReservationView{
		ID:                  row.ID,
		EquipmentID:         pgconv.UUIDPtrFromPgtype(row.EquipmentID),
		EquipmentName:       pgconv.StringPtrFromPgtype(row.EquipmentName),
		CustomEquipmentName: pgconv.StringPtrFromPgtype(row.CustomEquipmentName),
		Quantity:            int(row.Quantity),
		StartTime:           pgconv.TimeFromPgtype(row.StartTime),
		EndTime:             pgconv.TimeFromPgtype(row.EndTime),
		Status:              row.Status,
		RequesterName:       row.RequesterName,
		RequesterContact:    row.RequesterContact,
		Department:          row.Department,
		Note:                row.Note,
		CreatedAt:           pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:           pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
