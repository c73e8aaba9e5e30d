package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ufjf-cead/StudioBookingService/pkg/types"
)

func TestBooking_IsActive(t *testing.T) {
	b := &Booking{ID: 1}
	assert.True(t, b.IsActive())

	rejectedAt := time.Now()
	b.RejectedAt = &rejectedAt
	assert.False(t, b.IsActive())
}

func TestBooking_HasFutureBlock(t *testing.T) {
	today := date(2026, 4, 10)
	b := &Booking{Blocks: []TimeBlock{
		{Date: date(2026, 4, 9)},
	}}
	assert.False(t, b.HasFutureBlock(today))

	b.Blocks = append(b.Blocks, TimeBlock{Date: date(2026, 4, 10)})
	assert.True(t, b.HasFutureBlock(today), "блок сегодняшней даты считается будущим")

	// время суток в today не влияет
	assert.True(t, b.HasFutureBlock(time.Date(2026, 4, 10, 23, 0, 0, 0, time.UTC)))
}

func TestTimeBlock_Overlaps(t *testing.T) {
	b := &TimeBlock{StartTime: types.TimeString("10:00"), EndTime: types.TimeString("12:00")}

	assert.True(t, b.Overlaps("11:00", "13:00"))
	assert.True(t, b.Overlaps("09:00", "10:30"))
	assert.True(t, b.Overlaps("10:30", "11:30"))
	assert.True(t, b.Overlaps("09:00", "13:00"))

	// касание границ пересечением не считается
	assert.False(t, b.Overlaps("12:00", "13:00"))
	assert.False(t, b.Overlaps("08:00", "10:00"))
	assert.False(t, b.Overlaps("13:00", "14:00"))
}

func TestTeamWindow_Contains(t *testing.T) {
	w := &TeamWindow{StartTime: types.TimeString("08:00"), EndTime: types.TimeString("12:00")}

	assert.True(t, w.Contains("08:00", "12:00"))
	assert.True(t, w.Contains("09:00", "11:00"))
	assert.False(t, w.Contains("07:00", "11:00"))
	assert.False(t, w.Contains("09:00", "12:30"))
}
