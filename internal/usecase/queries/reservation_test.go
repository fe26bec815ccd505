//go:build unit

package queries_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/usecase/queries"
	"equipment-reservation/tests/common/builder"
	queriesmock "equipment-reservation/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReservationQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	view := builder.NewReservationBuilder().BuildView()

	testCases := []struct {
		name      string
		storeErr  error
		wantErr   error
		wantPlain bool
	}{
		{name: "success: reservation found"},
		{
			name:     "error: not found",
			storeErr: infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound),
			wantErr:  queries.ErrReservationNotFound,
		},
		{
			name:      "error: database failure",
			storeErr:  infra.WrapRepoErr("failed", errors.New("connection lost")),
			wantPlain: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockReservationReadStore(ctrl)
			q := queries.NewReservationQueries(store)

			if tc.storeErr != nil {
				store.EXPECT().FindByID(ctx, view.ID).Return(nil, tc.storeErr)
			} else {
				store.EXPECT().FindByID(ctx, view.ID).Return(view, nil)
			}

			got, err := q.GetByID(ctx, view.ID)

			switch {
			case tc.wantErr != nil:
				assert.True(t, errs.Is(err, tc.wantErr))
			case tc.wantPlain:
				require.Error(t, err)
				assert.False(t, errs.Is(err, queries.ErrReservationNotFound))
			default:
				require.NoError(t, err)
				assert.Equal(t, view, got)
			}
		})
	}
}

func TestReservationQueries_List(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC)

	rows := make([]*queries.ReservationView, 3)
	for i := range rows {
		start := base.Add(time.Duration(i) * time.Hour)
		rows[i] = builder.NewReservationBuilder().Window(start, start.Add(time.Hour)).BuildView()
	}

	t.Run("success: fetches limit+1 and returns a cursor for the next page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReservationReadStore(ctrl)
		q := queries.NewReservationQueries(store)

		store.EXPECT().List(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, f queries.ReservationFilter) ([]*queries.ReservationView, error) {
				assert.Equal(t, 3, f.Limit)
				assert.Nil(t, f.AfterStart)
				return rows, nil
			})

		got, next, err := q.List(ctx, queries.ReservationListParams{Limit: 2})

		require.NoError(t, err)
		assert.Len(t, got, 2)
		require.NotNil(t, next)

		afterStart, afterID, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		assert.True(t, afterStart.Equal(rows[1].StartTime))
		assert.Equal(t, rows[1].ID, afterID)
	})

	t.Run("success: last page has no cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReservationReadStore(ctrl)
		q := queries.NewReservationQueries(store)

		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(rows[0].StartTime, rows[0].ID)}
		store.EXPECT().List(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, f queries.ReservationFilter) ([]*queries.ReservationView, error) {
				require.NotNil(t, f.AfterStart)
				require.NotNil(t, f.AfterID)
				assert.True(t, f.AfterStart.Equal(rows[0].StartTime))
				assert.Equal(t, rows[0].ID, *f.AfterID)
				return rows[1:], nil
			})

		got, next, err := q.List(ctx, queries.ReservationListParams{Cursor: cursor, Limit: 5})

		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Nil(t, next)
	})

	t.Run("success: filters pass through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReservationReadStore(ctrl)
		q := queries.NewReservationQueries(store)

		equipmentID := uuid.New()
		start, end := base, base.Add(24*time.Hour)
		store.EXPECT().List(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, f queries.ReservationFilter) ([]*queries.ReservationView, error) {
				assert.Equal(t, &equipmentID, f.EquipmentID)
				assert.Equal(t, []string{"pending", "approved"}, f.Statuses)
				require.NotNil(t, f.Window)
				assert.True(t, f.Window.Start().Equal(start))
				assert.True(t, f.Window.End().Equal(end))
				assert.Equal(t, 51, f.Limit)
				return nil, nil
			})

		_, next, err := q.List(ctx, queries.ReservationListParams{
			EquipmentID: &equipmentID,
			Statuses:    []string{"pending", "approved"},
			Start:       &start,
			End:         &end,
		})

		require.NoError(t, err)
		assert.Nil(t, next)
	})

	t.Run("error: invalid parameters never reach the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReservationReadStore(ctrl)
		q := queries.NewReservationQueries(store)

		start, end := base, base.Add(time.Hour)
		badVersion := base64.URLEncoding.EncodeToString([]byte("v0:1-" + uuid.NewString()))

		cases := []struct {
			name   string
			params queries.ReservationListParams
			want   error
		}{
			{name: "unknown status", params: queries.ReservationListParams{Statuses: []string{"archived"}}, want: queries.ErrInvalidStatusFilter},
			{name: "inverted window", params: queries.ReservationListParams{Start: &end, End: &start}, want: queries.ErrInvalidInterval},
			{name: "half-open window", params: queries.ReservationListParams{Start: &start}, want: queries.ErrInvalidInterval},
			{name: "garbage cursor", params: queries.ReservationListParams{Cursor: &queries.Cursor{After: "!!"}}, want: queries.ErrInvalidCursor},
			{name: "unsupported cursor version", params: queries.ReservationListParams{Cursor: &queries.Cursor{After: badVersion}}, want: queries.ErrInvalidCursor},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, _, err := q.List(ctx, tc.params)
				assert.True(t, errs.Is(err, tc.want), "got %v", err)
			})
		}
	})
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2030, 1, 2, 3, 4, 5, 678901234, time.UTC)
	id := uuid.New()

	gotAt, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))

	require.NoError(t, err)
	assert.True(t, gotAt.Equal(at.Truncate(time.Microsecond)))
	assert.Equal(t, id, gotID)
}

func TestCursorBeforeEpoch(t *testing.T) {
	at := time.Date(1969, 7, 20, 20, 17, 40, 500, time.UTC)
	id := uuid.New()

	gotAt, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))

	require.NoError(t, err)
	assert.True(t, gotAt.Equal(at.Truncate(time.Microsecond)))
	assert.Equal(t, id, gotID)
}

func TestCursorMissingTimestamp(t *testing.T) {
	raw := base64.URLEncoding.EncodeToString([]byte("v1:-" + uuid.NewString()))

	_, _, err := queries.DecodeAfterCursor(raw)

	assert.Error(t, err)
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 50, queries.ValidateLimit(0))
	assert.Equal(t, 50, queries.ValidateLimit(-3))
	assert.Equal(t, 20, queries.ValidateLimit(20))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}
