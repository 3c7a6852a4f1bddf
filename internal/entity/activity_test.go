package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayScanNormalizesDriverValues(t *testing.T) {
	// pgx hands date columns back as time.Time; lib/pq's text protocol as
	// bytes. Both must land on the plain calendar-day form.
	cases := []struct {
		name  string
		value interface{}
	}{
		{"time", time.Date(2025, 4, 17, 0, 0, 0, 0, time.UTC)},
		{"bytes", []byte("2025-04-17")},
		{"short string", "2025-04-17"},
		{"timestamp string", "2025-04-17T00:00:00Z"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Day
			require.NoError(t, d.Scan(tc.value))
			assert.Equal(t, Day("2025-04-17"), d)
		})
	}
}

func TestDayScanRejectsUnknownType(t *testing.T) {
	var d Day
	assert.Error(t, d.Scan(42))
}

func TestNewDayUsesUTCCalendarDay(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	// 23:30 EST is already the next day in UTC.
	d := NewDay(time.Date(2025, 4, 16, 23, 30, 0, 0, est))
	assert.Equal(t, Day("2025-04-17"), d)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-04-17", v)
}
