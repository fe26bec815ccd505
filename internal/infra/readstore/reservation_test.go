//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"equipment-reservation/internal/domain/reservation"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/infra/readstore"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/usecase/queries"
	readstoremock "equipment-reservation/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errDBConnectionLost = errors.New("database connection lost")

func createReservationRow(equipmentID *uuid.UUID, start time.Time, status string) sqlc.ListReservationViewsRow {
	row := sqlc.ListReservationViewsRow{
		ID:               uuid.New(),
		Quantity:         2,
		StartTime:        pgtype.Timestamptz{Time: start, Valid: true},
		EndTime:          pgtype.Timestamptz{Time: start.Add(time.Hour), Valid: true},
		Status:           status,
		RequesterName:    "Hanako Sato",
		RequesterContact: "hanako@example.com",
		Department:       "ICU",
		CreatedAt:        pgtype.Timestamptz{Time: time.Now(), Valid: true},
		UpdatedAt:        pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	if equipmentID != nil {
		row.EquipmentID = pgtype.UUID{Bytes: *equipmentID, Valid: true}
		row.EquipmentName = pgtype.Text{String: "Infusion pump", Valid: true}
	} else {
		row.CustomEquipmentName = pgtype.Text{String: "Borrowed ultrasound", Valid: true}
	}
	return row
}

// =============================================================================
// FindByID Tests
// =============================================================================

func TestReservationReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	reservationID := uuid.New()
	equipmentID := uuid.New()

	testCases := []struct {
		name          string
		setupMock     func(*readstoremock.MockReservationReadQueries, uuid.UUID)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: reservation found",
			setupMock: func(mock *readstoremock.MockReservationReadQueries, id uuid.UUID) {
				row := createReservationRow(&equipmentID, time.Now().Add(24*time.Hour), "pending")
				row.ID = id
				mock.EXPECT().GetReservationViewByID(ctx, gomock.Any(), id).Return(sqlc.GetReservationViewByIDRow(row), nil)
			},
		},
		{
			name: "error: reservation not found",
			setupMock: func(mock *readstoremock.MockReservationReadQueries, id uuid.UUID) {
				mock.EXPECT().GetReservationViewByID(ctx, gomock.Any(), id).Return(sqlc.GetReservationViewByIDRow{}, pgx.ErrNoRows)
			},
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name: "error: database error",
			setupMock: func(mock *readstoremock.MockReservationReadQueries, id uuid.UUID) {
				mock.EXPECT().GetReservationViewByID(ctx, gomock.Any(), id).Return(sqlc.GetReservationViewByIDRow{}, errDBConnectionLost)
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
			store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

			tc.setupMock(mockQueries, reservationID)

			result, actualError := store.FindByID(ctx, reservationID)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
				assert.Nil(t, result, "result should be nil when error occurs")
			} else {
				require.NoError(t, actualError)
				require.NotNil(t, result)
				assert.Equal(t, reservationID, result.ID)
				require.NotNil(t, result.EquipmentID)
				assert.Equal(t, equipmentID, *result.EquipmentID)
				assert.Equal(t, "Infusion pump", *result.EquipmentName)
				assert.Nil(t, result.CustomEquipmentName)
			}
		})
	}
}

// =============================================================================
// ListForEquipment Tests
// =============================================================================

func TestReservationReadStore_ListForEquipment(t *testing.T) {
	ctx := context.Background()
	equipmentID := uuid.New()
	start := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	window := reservation.ReconstructTimeSlot(start, start.Add(4*time.Hour))

	t.Run("success: window is pushed down and rows feed the engine", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		rows := []sqlc.ListActiveReservationsInRangeRow{
			sqlc.ListActiveReservationsInRangeRow(createReservationRow(&equipmentID, start, "approved")),
			sqlc.ListActiveReservationsInRangeRow(createReservationRow(&equipmentID, start.Add(time.Hour), "pending")),
		}
		mockQueries.EXPECT().ListActiveReservationsInRange(ctx, gomock.Any(), sqlc.ListActiveReservationsInRangeParams{
			EquipmentID: equipmentID,
			WindowEnd:   pgtype.Timestamptz{Time: window.End(), Valid: true},
			WindowStart: pgtype.Timestamptz{Time: window.Start(), Valid: true},
		}).Return(rows, nil)

		views, err := store.ListForEquipment(ctx, equipmentID, window)

		require.NoError(t, err)
		require.Len(t, views, 2)
		b := views[0].Booking()
		assert.Equal(t, equipmentID, b.EquipmentID)
		assert.Equal(t, reservation.StatusApproved, b.Status)
		assert.Equal(t, 2, b.Quantity)
		assert.True(t, b.Slot.Start().Equal(start))
	})

	t.Run("success: no rows yields an empty slice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().ListActiveReservationsInRange(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)

		views, err := store.ListForEquipment(ctx, equipmentID, window)

		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("error: database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().ListActiveReservationsInRange(ctx, gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)

		views, err := store.ListForEquipment(ctx, equipmentID, window)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.Nil(t, views)
	})
}

// =============================================================================
// List Tests
// =============================================================================

func TestReservationReadStore_List(t *testing.T) {
	ctx := context.Background()
	equipmentID := uuid.New()
	afterID := uuid.New()
	afterStart := time.Date(2030, 2, 1, 10, 0, 0, 0, time.UTC)
	start := time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC)
	window := reservation.ReconstructTimeSlot(start, start.Add(48*time.Hour))

	testCases := []struct {
		name          string
		filter        queries.ReservationFilter
		expectParams  sqlc.ListReservationViewsParams
		rows          []sqlc.ListReservationViewsRow
		expectedCount int
	}{
		{
			name:   "no filters - first page",
			filter: queries.ReservationFilter{Limit: 21},
			expectParams: sqlc.ListReservationViewsParams{
				LimitCount: 21,
			},
			rows: []sqlc.ListReservationViewsRow{
				createReservationRow(&equipmentID, start, "pending"),
				createReservationRow(nil, start.Add(time.Hour), "approved"),
			},
			expectedCount: 2,
		},
		{
			name: "all filters with keyset cursor",
			filter: queries.ReservationFilter{
				EquipmentID: &equipmentID,
				Statuses:    []string{"pending", "approved"},
				Window:      &window,
				AfterStart:  &afterStart,
				AfterID:     &afterID,
				Limit:       11,
			},
			expectParams: sqlc.ListReservationViewsParams{
				EquipmentID: pgtype.UUID{Bytes: equipmentID, Valid: true},
				Statuses:    []string{"pending", "approved"},
				WindowStart: pgtype.Timestamptz{Time: window.Start(), Valid: true},
				WindowEnd:   pgtype.Timestamptz{Time: window.End(), Valid: true},
				AfterStart:  pgtype.Timestamptz{Time: afterStart, Valid: true},
				AfterID:     pgtype.UUID{Bytes: afterID, Valid: true},
				LimitCount:  11,
			},
			rows: []sqlc.ListReservationViewsRow{
				createReservationRow(&equipmentID, afterStart.Add(time.Hour), "approved"),
			},
			expectedCount: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
			store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

			mockQueries.EXPECT().ListReservationViews(ctx, gomock.Any(), tc.expectParams).Return(tc.rows, nil)

			views, err := store.List(ctx, tc.filter)

			require.NoError(t, err)
			assert.Len(t, views, tc.expectedCount)
		})
	}

	t.Run("ad-hoc rows keep their custom name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().ListReservationViews(ctx, gomock.Any(), gomock.Any()).
			Return([]sqlc.ListReservationViewsRow{createReservationRow(nil, start, "pending")}, nil)

		views, err := store.List(ctx, queries.ReservationFilter{Limit: 5})

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Nil(t, views[0].EquipmentID)
		require.NotNil(t, views[0].CustomEquipmentName)
		assert.Equal(t, "Borrowed ultrasound", *views[0].CustomEquipmentName)
		assert.Equal(t, uuid.Nil, views[0].Booking().EquipmentID)
	})

	t.Run("error: database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().ListReservationViews(ctx, gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)

		views, err := store.List(ctx, queries.ReservationFilter{Limit: 5})

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.Nil(t, views)
	})
}

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
