package generate_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/pkg/types"
)

func TestBuildSlotTimes(t *testing.T) {
	t.Run("even window", func(t *testing.T) {
		times, err := buildSlotTimes("09:00", "12:00", 3)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, times)
	})

	t.Run("single slot starts at window start", func(t *testing.T) {
		times, err := buildSlotTimes("09:00", "12:00", 1)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"09:00"}, times)
	})

	t.Run("count bounded, not time bounded", func(t *testing.T) {
		times, err := buildSlotTimes("09:00", "10:00", 4)
		require.NoError(t, err)
		require.Len(t, times, 4)
		assert.Equal(t, []types.TimeString{"09:00", "09:15", "09:30", "09:45"}, times)
	})

	t.Run("truncated step accumulates drift", func(t *testing.T) {
		// 100 минут на 7 талонов: шаг 14 минут, без коррекции округления
		times, err := buildSlotTimes("09:00", "10:40", 7)
		require.NoError(t, err)
		require.Len(t, times, 7)
		assert.Equal(t, types.TimeString("09:00"), times[0])
		assert.Equal(t, types.TimeString("09:14"), times[1])
		assert.Equal(t, types.TimeString("10:24"), times[6])
	})

	t.Run("uniform spacing", func(t *testing.T) {
		times, err := buildSlotTimes("08:00", "11:00", 6)
		require.NoError(t, err)
		for i := 1; i < len(times); i++ {
			gap, err := times[i-1].MinutesUntil(times[i])
			require.NoError(t, err)
			assert.Equal(t, 30, gap)
		}
	})

	t.Run("zero count gives empty result", func(t *testing.T) {
		times, err := buildSlotTimes("09:00", "12:00", 0)
		require.NoError(t, err)
		assert.Empty(t, times)
	})

	t.Run("empty window rejected", func(t *testing.T) {
		_, err := buildSlotTimes("12:00", "09:00", 3)
		assert.ErrorIs(t, err, ErrInvalidWindow)

		_, err = buildSlotTimes("09:00", "09:00", 3)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestBuildSlots(t *testing.T) {
	line := &domain.ScheduleLine{
		ID:            42,
		WindowStart:   "09:00",
		WindowEnd:     "12:00",
		BudgetCount:   3,
		CommerceCount: 2,
	}

	slots, err := buildSlots(line)
	require.NoError(t, err)
	require.Len(t, slots, 5)

	var untimed, timed int
	for _, s := range slots {
		assert.Equal(t, int64(42), s.ScheduleLineID)
		assert.Nil(t, s.ClaimantID)
		if s.TimeOfDay == nil {
			untimed++
		} else {
			timed++
		}
	}
	assert.Equal(t, 2, untimed)
	assert.Equal(t, 3, timed)
}

func TestBuildSlotsBudgetOnly(t *testing.T) {
	line := &domain.ScheduleLine{
		ID:          7,
		WindowStart: "10:00",
		WindowEnd:   "11:00",
		BudgetCount: 2,
	}

	slots, err := buildSlots(line)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	require.NotNil(t, slots[0].TimeOfDay)
	require.NotNil(t, slots[1].TimeOfDay)
	assert.Equal(t, types.TimeString("10:00"), *slots[0].TimeOfDay)
	assert.Equal(t, types.TimeString("10:30"), *slots[1].TimeOfDay)
}
