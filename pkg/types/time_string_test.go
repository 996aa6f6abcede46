package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ts, err := NewTimeStringFromString("09:30")
		require.NoError(t, err)
		assert.Equal(t, "09:30", ts.String())
	})

	t.Run("invalid format", func(t *testing.T) {
		for _, raw := range []string{"9:30:00x", "25:00", "09-30", "", "abc"} {
			_, err := NewTimeStringFromString(raw)
			assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", raw)
		}
	})
}

func TestTimeStringComparison(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("12:00")

	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
	assert.False(t, a.IsBefore(a))
}

func TestTimeStringMinutes(t *testing.T) {
	start := TimeString("09:00")
	end := TimeString("12:30")

	minutes, err := start.MinutesUntil(end)
	require.NoError(t, err)
	assert.Equal(t, 210, minutes)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("09:45")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), next)

	same, err := ts.AddMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, ts, same)
}

func TestTimeStringScan(t *testing.T) {
	t.Run("from time.Time", func(t *testing.T) {
		var ts TimeString
		err := ts.Scan(time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, TimeString("14:30"), ts)
	})

	t.Run("from HH:MM:SS string", func(t *testing.T) {
		var ts TimeString
		err := ts.Scan("14:30:00")
		require.NoError(t, err)
		assert.Equal(t, TimeString("14:30"), ts)
	})

	t.Run("from bytes", func(t *testing.T) {
		var ts TimeString
		err := ts.Scan([]byte("08:05"))
		require.NoError(t, err)
		assert.Equal(t, TimeString("08:05"), ts)
	})
}

func TestTimeStringValue(t *testing.T) {
	ts := TimeString("11:15")
	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "11:15", v)
}
