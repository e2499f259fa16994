package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-02 is a Monday
func monday(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func TestParseWeeklySchedule(t *testing.T) {
	raw := []byte(`{"Monday":{"start":"09:00","end":"17:00","breaks":[{"start":"12:00","end":"13:00"}]},"friday":{"start":"10:00","end":"14:00"}}`)

	schedule, err := ParseWeeklySchedule(raw)
	require.NoError(t, err)

	mon, ok := schedule.Day(Monday)
	require.True(t, ok)
	assert.Equal(t, "09:00", mon.Open.String())
	assert.Len(t, mon.Breaks, 1)

	_, ok = schedule.Day(Sunday)
	assert.False(t, ok)
}

func TestParseWeeklySchedule_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "unknown weekday", raw: `{"funday":{"start":"09:00","end":"17:00"}}`},
		{name: "close before open", raw: `{"monday":{"start":"17:00","end":"09:00"}}`},
		{name: "bad time", raw: `{"monday":{"start":"9am","end":"17:00"}}`},
		{name: "not json", raw: `[1,2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWeeklySchedule([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrInvalidSchedule)
		})
	}
}

func TestParseWeeklySchedule_Empty(t *testing.T) {
	schedule, err := ParseWeeklySchedule(nil)
	require.NoError(t, err)
	assert.False(t, schedule.IsConfigured())

	schedule, err = ParseWeeklySchedule([]byte("null"))
	require.NoError(t, err)
	assert.False(t, schedule.IsConfigured())
}

func TestWeeklySchedule_Covers(t *testing.T) {
	schedule := WeeklySchedule{
		Monday: {Open: "09:00", Close: "17:00", Breaks: []Break{{Start: "12:00", End: "13:00"}}},
	}

	tests := []struct {
		name string
		iv   Interval
		want bool
	}{
		{name: "morning", iv: Interval{Start: monday(9, 0), End: monday(10, 0)}, want: true},
		{name: "ends at close", iv: Interval{Start: monday(16, 0), End: monday(17, 0)}, want: true},
		{name: "ends at break start", iv: Interval{Start: monday(11, 0), End: monday(12, 0)}, want: true},
		{name: "crosses break", iv: Interval{Start: monday(11, 30), End: monday(12, 30)}, want: false},
		{name: "after close", iv: Interval{Start: monday(16, 30), End: monday(17, 30)}, want: false},
		{name: "before open", iv: Interval{Start: monday(8, 30), End: monday(9, 30)}, want: false},
		{name: "day off", iv: Interval{Start: monday(10, 0).AddDate(0, 0, 1), End: monday(11, 0).AddDate(0, 0, 1)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.Covers(tt.iv, time.UTC))
		})
	}
}

func TestWeeklySchedule_UnconfiguredCoversEverything(t *testing.T) {
	var schedule WeeklySchedule
	assert.True(t, schedule.Covers(Interval{Start: monday(3, 0), End: monday(4, 0)}, time.UTC))
}

func TestWeeklySchedule_CoversUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	schedule := WeeklySchedule{Monday: {Open: "09:00", Close: "17:00"}}

	// 14:00 UTC is 09:00 local
	iv := Interval{Start: monday(14, 0), End: monday(15, 0)}
	assert.True(t, schedule.Covers(iv, loc))

	// 08:00 UTC is 03:00 local
	early := Interval{Start: monday(8, 0), End: monday(9, 0)}
	assert.True(t, schedule.Covers(Interval{Start: monday(9, 0), End: monday(10, 0)}, time.UTC))
	assert.False(t, schedule.Covers(early, loc))
}
