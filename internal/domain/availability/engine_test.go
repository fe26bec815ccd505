//go:build unit

package availability_test

import (
	"testing"
	"time"

	"equipment-reservation/internal/domain/availability"
	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/domain/reservation"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func slot(t *testing.T, start, end time.Time) reservation.TimeSlot {
	t.Helper()
	s, err := reservation.NewTimeSlot(start, end)
	require.NoError(t, err)
	return s
}

func booking(t *testing.T, equipmentID uuid.UUID, start, end time.Time, qty int, status reservation.Status) availability.Booking {
	t.Helper()
	return availability.Booking{
		ID:          uuid.New(),
		EquipmentID: equipmentID,
		Slot:        slot(t, start, end),
		Quantity:    qty,
		Status:      status,
	}
}

func remainingCount(t *testing.T, r availability.Remaining) int {
	t.Helper()
	n, ok := r.Count()
	require.True(t, ok, "remaining should be a unit count")
	return n
}

func TestReservedQuantity(t *testing.T) {
	eq := uuid.New()

	t.Run("重ならない予約の合計", func(t *testing.T) {
		candidates := []availability.Booking{
			booking(t, eq, at(8, 0), at(9, 0), 1, reservation.StatusApproved),
			booking(t, eq, at(10, 0), at(11, 0), 2, reservation.StatusPending),
			booking(t, eq, at(13, 0), at(14, 0), 3, reservation.StatusApproved),
		}

		assert.Equal(t, 2, availability.ReservedQuantity(candidates, eq, slot(t, at(10, 30), at(10, 45)), nil))
		assert.Equal(t, 3, availability.ReservedQuantity(candidates, eq, slot(t, at(8, 30), at(10, 30)), nil))
		assert.Equal(t, 6, availability.ReservedQuantity(candidates, eq, slot(t, at(0, 0), at(23, 0)), nil))
		assert.Equal(t, 0, availability.ReservedQuantity(candidates, eq, slot(t, at(11, 0), at(13, 0)), nil))
	})

	t.Run("数量の集計", func(t *testing.T) {
		candidates := []availability.Booking{
			booking(t, eq, at(9, 0), at(12, 0), 2, reservation.StatusPending),
			booking(t, eq, at(10, 0), at(13, 0), 2, reservation.StatusPending),
			booking(t, eq, at(11, 0), at(14, 0), 2, reservation.StatusPending),
		}

		reserved := availability.ReservedQuantity(candidates, eq, slot(t, at(11, 30), at(11, 45)), nil)
		assert.Equal(t, 6, reserved)

		res := availability.Check(equipment.Stock{Total: 5}, reserved, 1)
		assert.False(t, res.Available)
		assert.Equal(t, 0, remainingCount(t, res.Remaining))
		assert.Equal(t, 6, res.Reserved)
	})

	t.Run("ステータスによる除外", func(t *testing.T) {
		for _, status := range []reservation.Status{
			reservation.StatusCancelled,
			reservation.StatusRejected,
			reservation.StatusCompleted,
		} {
			t.Run(status.String(), func(t *testing.T) {
				candidates := []availability.Booking{booking(t, eq, at(10, 0), at(12, 0), 1, status)}

				res := availability.Evaluate(equipment.Stock{Total: 1}, candidates, eq, slot(t, at(10, 0), at(12, 0)), 1, nil)
				assert.True(t, res.Available)
				assert.Equal(t, 1, remainingCount(t, res.Remaining))
			})
		}
	})

	t.Run("他の機材と臨時品目は数えない", func(t *testing.T) {
		candidates := []availability.Booking{
			booking(t, uuid.New(), at(10, 0), at(12, 0), 4, reservation.StatusApproved),
			booking(t, uuid.Nil, at(10, 0), at(12, 0), 4, reservation.StatusApproved),
		}

		assert.Equal(t, 0, availability.ReservedQuantity(candidates, eq, slot(t, at(10, 0), at(12, 0)), nil))
	})

	t.Run("編集中の予約は自身を数えない", func(t *testing.T) {
		self := booking(t, eq, at(10, 0), at(12, 0), 1, reservation.StatusApproved)
		candidates := []availability.Booking{self}
		window := slot(t, at(10, 0), at(12, 0))

		blocked := availability.Evaluate(equipment.Stock{Total: 1}, candidates, eq, window, 1, nil)
		assert.False(t, blocked.Available)

		res := availability.Evaluate(equipment.Stock{Total: 1}, candidates, eq, window, 1, &self.ID)
		assert.True(t, res.Available)
		assert.Equal(t, 0, res.Reserved)
		assert.Equal(t, 1, remainingCount(t, res.Remaining))
	})
}

func TestCheck(t *testing.T) {
	eq := uuid.New()

	t.Run("半開区間の境界は重ならない", func(t *testing.T) {
		a := booking(t, eq, at(10, 0), at(12, 0), 1, reservation.StatusApproved)

		res := availability.Evaluate(equipment.Stock{Total: 1}, []availability.Booking{a}, eq, slot(t, at(12, 0), at(14, 0)), 1, nil)
		assert.True(t, res.Available)

		b := booking(t, eq, at(12, 0), at(14, 0), 1, reservation.StatusApproved)
		res = availability.Evaluate(equipment.Stock{Total: 1}, []availability.Booking{b}, eq, slot(t, at(10, 0), at(12, 0)), 1, nil)
		assert.True(t, res.Available)
	})

	t.Run("重なる予約は拒否", func(t *testing.T) {
		a := booking(t, eq, at(10, 0), at(12, 0), 1, reservation.StatusApproved)

		res := availability.Evaluate(equipment.Stock{Total: 1}, []availability.Booking{a}, eq, slot(t, at(11, 0), at(13, 0)), 1, nil)
		assert.False(t, res.Available)
		assert.Equal(t, 0, remainingCount(t, res.Remaining))
	})

	t.Run("無制限在庫は常に予約可能", func(t *testing.T) {
		candidates := []availability.Booking{
			booking(t, eq, at(10, 0), at(12, 0), 50, reservation.StatusApproved),
		}

		for _, requested := range []int{1, 10, 1_000_000} {
			res := availability.Evaluate(equipment.Stock{Total: 0, Unlimited: true}, candidates, eq, slot(t, at(10, 0), at(12, 0)), requested, nil)
			assert.True(t, res.Available)
			assert.True(t, res.Remaining.IsUnlimited())
			_, ok := res.Remaining.Count()
			assert.False(t, ok)
		}
	})

	t.Run("残数は0で下限、可否は生の計算", func(t *testing.T) {
		res := availability.Check(equipment.Stock{Total: 2}, 3, 1)
		assert.False(t, res.Available)
		assert.Equal(t, 0, remainingCount(t, res.Remaining))

		res = availability.Check(equipment.Stock{Total: 2}, 1, 1)
		assert.True(t, res.Available)
		assert.Equal(t, 1, remainingCount(t, res.Remaining))

		res = availability.Check(equipment.Stock{Total: 0}, 0, 1)
		assert.False(t, res.Available)
	})
}

func TestFindOverlapping(t *testing.T) {
	eq := uuid.New()
	late := booking(t, eq, at(11, 0), at(13, 0), 1, reservation.StatusPending)
	early := booking(t, eq, at(9, 0), at(11, 0), 1, reservation.StatusApproved)
	cancelled := booking(t, eq, at(10, 0), at(12, 0), 1, reservation.StatusCancelled)
	abutting := booking(t, eq, at(12, 0), at(13, 0), 1, reservation.StatusApproved)
	other := booking(t, uuid.New(), at(10, 0), at(12, 0), 1, reservation.StatusApproved)

	got := availability.FindOverlapping(
		[]availability.Booking{late, cancelled, abutting, other, early},
		eq,
		slot(t, at(10, 0), at(12, 0)),
	)

	want := []availability.Booking{early, late}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindOverlapping mismatch (-want +got):\n%s", diff)
	}
}

func TestScenario(t *testing.T) {
	eq := uuid.New()
	stock := equipment.Stock{Total: 2}
	candidates := []availability.Booking{
		booking(t, eq, at(9, 0), at(11, 0), 1, reservation.StatusApproved),
		booking(t, eq, at(10, 0), at(12, 0), 1, reservation.StatusPending),
	}

	t.Run("両方と重なる時間帯は満杯", func(t *testing.T) {
		res := availability.Evaluate(stock, candidates, eq, slot(t, at(10, 30), at(10, 45)), 1, nil)
		assert.False(t, res.Available)
		assert.Equal(t, 2, res.Reserved)
		assert.Equal(t, 0, remainingCount(t, res.Remaining))
	})

	t.Run("終了後の時間帯は全数が空き", func(t *testing.T) {
		res := availability.Evaluate(stock, candidates, eq, slot(t, at(12, 0), at(13, 0)), 2, nil)
		assert.True(t, res.Available)
		assert.Equal(t, 0, res.Reserved)
		assert.Equal(t, 2, remainingCount(t, res.Remaining))
	})
}
