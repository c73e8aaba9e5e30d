package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid time", func(t *testing.T) {
		ts, err := NewTimeStringFromString("10:30")
		require.NoError(t, err)
		assert.Equal(t, TimeString("10:30"), ts)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := NewTimeStringFromString("25:00")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})

	t.Run("with seconds", func(t *testing.T) {
		_, err := NewTimeStringFromString("10:30:00")
		require.Error(t, err)
	})
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 10, 14, 45, 59, 0, time.UTC)
	assert.Equal(t, TimeString("14:45"), NewTimeString(moment))
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("00:00").Validate())
	assert.NoError(t, TimeString("23:59").Validate())
	assert.Error(t, TimeString("").Validate())
	assert.Error(t, TimeString("9:00").Validate())
	assert.Error(t, TimeString("12:60").Validate())
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:30").IsAfter("08:30"))
	assert.False(t, TimeString("08:30").IsAfter("08:30"))
}

func TestTimeString_Minutes(t *testing.T) {
	minutes, err := TimeString("01:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 90, minutes)

	_, err = TimeString("bad").Minutes()
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("within day", func(t *testing.T) {
		ts, err := TimeString("10:00").AddMinutes(90)
		require.NoError(t, err)
		assert.Equal(t, TimeString("11:30"), ts)
	})

	t.Run("negative offset", func(t *testing.T) {
		ts, err := TimeString("10:00").AddMinutes(-30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("09:30"), ts)
	})

	t.Run("past midnight", func(t *testing.T) {
		_, err := TimeString("23:30").AddMinutes(60)
		assert.Error(t, err)
	})

	t.Run("before midnight", func(t *testing.T) {
		_, err := TimeString("00:10").AddMinutes(-20)
		assert.Error(t, err)
	})
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("from string with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:00:00"))
		assert.Equal(t, TimeString("10:00"), ts)
	})

	t.Run("from bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("08:15")))
		assert.Equal(t, TimeString("08:15"), ts)
	})

	t.Run("from time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 16, 20, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("16:20"), ts)
	})

	t.Run("from nil", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		err := ts.Scan(42)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrScanTimeString)
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("12:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "12:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("garbage").Value()
	assert.Error(t, err)
}
