package janitor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/janitor"
)

func TestSchedules(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 3, 10, 14, 45, 0, 0, time.UTC)

	tests := []struct {
		name     string
		schedule janitor.Schedule
		want     time.Time
		str      string
	}{
		{"interval", janitor.Every(30 * time.Minute), from.Add(30 * time.Minute), "every 30m0s"},
		{"hourly later this hour", janitor.HourlyAt(50), time.Date(2026, 3, 10, 14, 50, 0, 0, time.UTC), "hourly at :50"},
		{"hourly next hour", janitor.HourlyAt(45), time.Date(2026, 3, 10, 15, 45, 0, 0, time.UTC), "hourly at :45"},
		{"daily today", janitor.DailyAt(18, 0), time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC), "daily at 18:00"},
		{"daily tomorrow", janitor.DailyAt(3, 30), time.Date(2026, 3, 11, 3, 30, 0, 0, time.UTC), "daily at 03:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.schedule.Next(from))
			assert.Equal(t, tt.str, tt.schedule.String())
		})
	}
}

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	s, err := janitor.ParseSchedule("15m")
	require.NoError(t, err)
	assert.Equal(t, "every 15m0s", s.String())

	s, err = janitor.ParseSchedule("03:15")
	require.NoError(t, err)
	assert.Equal(t, "daily at 03:15", s.String())

	for _, bad := range []string{"", "0s", "-1h", "25:00", "soon"} {
		_, err := janitor.ParseSchedule(bad)
		assert.ErrorIs(t, err, janitor.ErrInvalidSchedule, bad)
	}
}
