package list_free_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	"github.com/ufjf-cead/StudioBookingService/pkg/types"
)

func window(start, end string) *domain.TeamWindow {
	return &domain.TeamWindow{
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func TestMergeWindows(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, mergeWindows(nil))
	})

	t.Run("disjoint windows sorted", func(t *testing.T) {
		merged := mergeWindows([]*domain.TeamWindow{
			window("14:00", "18:00"),
			window("08:00", "12:00"),
		})
		require.Len(t, merged, 2)
		assert.Equal(t, Slot{Start: "08:00", End: "12:00"}, merged[0])
		assert.Equal(t, Slot{Start: "14:00", End: "18:00"}, merged[1])
	})

	t.Run("overlapping windows merge", func(t *testing.T) {
		merged := mergeWindows([]*domain.TeamWindow{
			window("08:00", "12:00"),
			window("10:00", "14:00"),
		})
		require.Len(t, merged, 1)
		assert.Equal(t, Slot{Start: "08:00", End: "14:00"}, merged[0])
	})

	t.Run("adjacent windows merge", func(t *testing.T) {
		merged := mergeWindows([]*domain.TeamWindow{
			window("08:00", "12:00"),
			window("12:00", "16:00"),
		})
		require.Len(t, merged, 1)
		assert.Equal(t, Slot{Start: "08:00", End: "16:00"}, merged[0])
	})

	t.Run("contained window absorbed", func(t *testing.T) {
		merged := mergeWindows([]*domain.TeamWindow{
			window("08:00", "18:00"),
			window("10:00", "12:00"),
		})
		require.Len(t, merged, 1)
		assert.Equal(t, Slot{Start: "08:00", End: "18:00"}, merged[0])
	})
}

func TestSubtract(t *testing.T) {
	day := []Slot{{Start: "08:00", End: "12:00"}}

	t.Run("middle split", func(t *testing.T) {
		result := subtract(day, "09:00", "10:00")
		require.Len(t, result, 2)
		assert.Equal(t, Slot{Start: "08:00", End: "09:00"}, result[0])
		assert.Equal(t, Slot{Start: "10:00", End: "12:00"}, result[1])
	})

	t.Run("left edge", func(t *testing.T) {
		result := subtract(day, "08:00", "09:00")
		require.Len(t, result, 1)
		assert.Equal(t, Slot{Start: "09:00", End: "12:00"}, result[0])
	})

	t.Run("right edge", func(t *testing.T) {
		result := subtract(day, "11:00", "12:00")
		require.Len(t, result, 1)
		assert.Equal(t, Slot{Start: "08:00", End: "11:00"}, result[0])
	})

	t.Run("full cover removes slot", func(t *testing.T) {
		result := subtract(day, "08:00", "12:00")
		assert.Empty(t, result)

		result = subtract(day, "07:00", "13:00")
		assert.Empty(t, result)
	})

	t.Run("boundary touch is not overlap", func(t *testing.T) {
		result := subtract(day, "12:00", "13:00")
		require.Len(t, result, 1)
		assert.Equal(t, day[0], result[0])

		result = subtract(day, "07:00", "08:00")
		require.Len(t, result, 1)
		assert.Equal(t, day[0], result[0])
	})

	t.Run("no overlap keeps slot", func(t *testing.T) {
		result := subtract(day, "13:00", "14:00")
		require.Len(t, result, 1)
		assert.Equal(t, day[0], result[0])
	})

	t.Run("order independent", func(t *testing.T) {
		forward := subtract(subtract(day, "09:00", "10:00"), "10:30", "11:00")
		backward := subtract(subtract(day, "10:30", "11:00"), "09:00", "10:00")
		assert.Equal(t, forward, backward)
		require.Len(t, forward, 3)
	})

	t.Run("repeated subtraction is idempotent", func(t *testing.T) {
		once := subtract(day, "09:00", "10:00")
		twice := subtract(once, "09:00", "10:00")
		assert.Equal(t, once, twice)
	})
}
