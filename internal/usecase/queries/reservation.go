package queries

import (
	"context"
	"time"

	"equipment-reservation/internal/domain/reservation"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrInvalidCursor       = errs.New("invalid cursor")
	ErrInvalidStatusFilter = errs.New("invalid status filter")
)

type ReservationFilter struct {
	EquipmentID *uuid.UUID
	Statuses    []string
	Window      *reservation.TimeSlot
	AfterStart  *time.Time
	AfterID     *uuid.UUID
	Limit       int
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// ListForEquipment returns capacity candidates for one equipment item.
	ListForEquipment(ctx context.Context, equipmentID uuid.UUID, window reservation.TimeSlot) ([]*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error)
}

type ReservationListParams struct {
	EquipmentID *uuid.UUID
	Statuses    []string
	Start       *time.Time
	End         *time.Time
	Cursor      *Cursor
	Limit       int
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, params ReservationListParams) ([]*ReservationView, *Cursor, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Wrap(err, "failed to get reservation")
	}
	return view, nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, params ReservationListParams) ([]*ReservationView, *Cursor, error) {
	filter, err := buildReservationFilter(params)
	if err != nil {
		return nil, nil, err
	}
	limit := filter.Limit

	// one extra row tells us whether another page exists
	filter.Limit = limit + 1
	rows, err := q.readStore.List(ctx, filter)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to list reservations")
	}

	if len(rows) <= limit {
		return rows, nil, nil
	}
	rows = rows[:limit]
	last := rows[len(rows)-1]
	return rows, &Cursor{After: EncodeAfterCursor(last.StartTime, last.ID)}, nil
}

func buildReservationFilter(params ReservationListParams) (ReservationFilter, error) {
	filter := ReservationFilter{
		EquipmentID: params.EquipmentID,
		Limit:       ValidateLimit(params.Limit),
	}

	for _, s := range params.Statuses {
		status, err := reservation.ParseStatus(s)
		if err != nil {
			return ReservationFilter{}, ErrInvalidStatusFilter
		}
		filter.Statuses = append(filter.Statuses, status.String())
	}

	switch {
	case params.Start != nil && params.End != nil:
		window, err := reservation.NewTimeSlot(*params.Start, *params.End)
		if err != nil {
			return ReservationFilter{}, ErrInvalidInterval
		}
		filter.Window = &window
	case params.Start != nil || params.End != nil:
		return ReservationFilter{}, ErrInvalidInterval
	}

	if params.Cursor != nil && params.Cursor.After != "" {
		afterStart, afterID, err := DecodeAfterCursor(params.Cursor.After)
		if err != nil {
			return ReservationFilter{}, errs.Mark(err, ErrInvalidCursor)
		}
		filter.AfterStart = &afterStart
		filter.AfterID = &afterID
	}

	return filter, nil
}
