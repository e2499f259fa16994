package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTenant_IsBusinessDay(t *testing.T) {
	tenant := &Tenant{
		ClosedWeekdays: []Weekday{Saturday, Sunday},
		Holidays:       []string{"2025-12-25"},
	}

	assert.True(t, tenant.IsBusinessDay(day(2025, 6, 2)))    // Monday
	assert.False(t, tenant.IsBusinessDay(day(2025, 6, 7)))   // Saturday
	assert.False(t, tenant.IsBusinessDay(day(2025, 6, 8)))   // Sunday
	assert.False(t, tenant.IsBusinessDay(day(2025, 12, 25))) // holiday
}

func TestTenant_BusinessWindow(t *testing.T) {
	tenant := &Tenant{Timezone: "UTC", BusinessStart: "09:00", BusinessEnd: "17:00"}

	window := tenant.BusinessWindow(day(2025, 6, 2))

	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC), window.End)
}

func TestTenant_ApplyDefaults(t *testing.T) {
	tenant := &Tenant{BusinessEnd: "18:00"}
	tenant.ApplyDefaults(DefaultBusinessStart, DefaultBusinessEnd, DefaultSlotStepMinutes, DefaultClosedWeekdays)

	assert.Equal(t, "09:00", tenant.BusinessStart.String())
	assert.Equal(t, "18:00", tenant.BusinessEnd.String())
	assert.Equal(t, 30, tenant.SlotStepMinutes)
	assert.Equal(t, []Weekday{Saturday, Sunday}, tenant.ClosedWeekdays)
}

func TestRejection(t *testing.T) {
	errKind := errors.New("kind")
	err := fmt.Errorf("wrapped: %w", Reject(errKind, "Service allows maximum %d pets per session", 2))

	assert.ErrorIs(t, err, errKind)
	reason, ok := ReasonOf(err)
	assert.True(t, ok)
	assert.Equal(t, "Service allows maximum 2 pets per session", reason)

	_, ok = ReasonOf(errors.New("plain"))
	assert.False(t, ok)
}
