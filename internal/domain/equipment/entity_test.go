//go:build unit

package equipment_test

import (
	"strings"
	"testing"
	"time"

	"equipment-reservation/internal/domain/equipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func TestEquipment(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		e, err := equipment.NewEquipment(" Wheelchair ", "", nil, equipment.Stock{Total: 3}, now)
		require.NoError(t, err)
		assert.Equal(t, "Wheelchair", e.Name())
		assert.True(t, e.IsReservable())
		assert.Equal(t, equipment.Stock{Total: 3}, e.Stock())
	})

	t.Run("名前検証", func(t *testing.T) {
		_, err := equipment.NewEquipment("  ", "", nil, equipment.Stock{}, now)
		assert.ErrorIs(t, err, equipment.ErrEmptyName)

		_, err = equipment.NewEquipment(strings.Repeat("x", equipment.MaxNameLength+1), "", nil, equipment.Stock{}, now)
		assert.ErrorIs(t, err, equipment.ErrNameTooLong)
	})

	t.Run("負の在庫はNG", func(t *testing.T) {
		_, err := equipment.NewEquipment("Bed", "", nil, equipment.Stock{Total: -1}, now)
		assert.ErrorIs(t, err, equipment.ErrNegativeStock)
	})

	t.Run("論理削除", func(t *testing.T) {
		e, err := equipment.NewEquipment("Bed", "", nil, equipment.Stock{Total: 1}, now)
		require.NoError(t, err)

		require.NoError(t, e.SoftDelete(now))
		assert.True(t, e.IsDeleted())
		assert.False(t, e.IsReservable())
		assert.ErrorIs(t, e.SoftDelete(now), equipment.ErrAlreadyDeleted)
		assert.ErrorIs(t, e.SetStock(equipment.Stock{Total: 2}, now), equipment.ErrAlreadyDeleted)
	})

	t.Run("無効化された機材は予約不可", func(t *testing.T) {
		e, err := equipment.NewEquipment("Bed", "", nil, equipment.Stock{Total: 1}, now)
		require.NoError(t, err)

		require.NoError(t, e.SetActive(false, now))
		assert.False(t, e.IsReservable())
	})
}
