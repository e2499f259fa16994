package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_Transitions(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{AppointmentPending, AppointmentConfirmed, true},
		{AppointmentPending, AppointmentNoShow, true},
		{AppointmentConfirmed, AppointmentInProgress, true},
		{AppointmentConfirmed, AppointmentPending, false},
		{AppointmentInProgress, AppointmentCompleted, true},
		{AppointmentInProgress, AppointmentNoShow, false},
		{AppointmentCompleted, AppointmentPending, false},
		{AppointmentCancelled, AppointmentConfirmed, false},
		{AppointmentNoShow, AppointmentCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentStatus_Classes(t *testing.T) {
	for _, s := range LiveStatuses {
		assert.True(t, s.IsLive(), s)
		assert.False(t, s.IsTerminal(), s)
	}
	for _, s := range []AppointmentStatus{AppointmentCompleted, AppointmentCancelled, AppointmentNoShow} {
		assert.False(t, s.IsLive(), s)
		assert.True(t, s.IsTerminal(), s)
	}
	assert.Equal(t, []string{"pending", "confirmed", "in_progress"}, LiveStatusStrings())
}

func TestParseAppointmentStatus(t *testing.T) {
	s, err := ParseAppointmentStatus("no_show")
	assert.NoError(t, err)
	assert.Equal(t, AppointmentNoShow, s)

	_, err = ParseAppointmentStatus("archived")
	assert.Error(t, err)
}

func TestAppointment_IsLateCancellation(t *testing.T) {
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	a := &Appointment{ScheduledStart: start}

	assert.True(t, a.IsLateCancellation(start.Add(-23*time.Hour)))
	assert.False(t, a.IsLateCancellation(start.Add(-24*time.Hour)))
	assert.False(t, a.IsLateCancellation(start.Add(-72*time.Hour)))
}
