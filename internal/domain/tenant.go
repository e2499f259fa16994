package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/pkg/types"
)

// Tenant is one pet-care business. Its calendar settings drive slot generation.
type Tenant struct {
	ID              uuid.UUID
	Name            string
	Timezone        string
	BusinessStart   types.TimeString
	BusinessEnd     types.TimeString
	SlotStepMinutes int
	ClosedWeekdays  []Weekday
	Holidays        []string // YYYY-MM-DD in business-local time
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Location returns the business timezone, falling back to UTC
func (t *Tenant) Location() *time.Location {
	if t.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsBusinessDay reports whether the calendar date is open for bookings
func (t *Tenant) IsBusinessDay(date time.Time) bool {
	weekday := WeekdayOf(date)
	for _, closed := range t.ClosedWeekdays {
		if closed == weekday {
			return false
		}
	}
	key := date.Format(DateFormat)
	for _, h := range t.Holidays {
		if h == key {
			return false
		}
	}
	return true
}

// BusinessWindow returns the tenant-wide opening window on a calendar date
func (t *Tenant) BusinessWindow(date time.Time) Interval {
	loc := t.Location()
	return Interval{Start: t.BusinessStart.On(date, loc), End: t.BusinessEnd.On(date, loc)}
}

// ApplyDefaults fills unset calendar settings
func (t *Tenant) ApplyDefaults(start, end types.TimeString, stepMinutes int, closed []Weekday) {
	if t.BusinessStart == "" {
		t.BusinessStart = start
	}
	if t.BusinessEnd == "" {
		t.BusinessEnd = end
	}
	if t.SlotStepMinutes <= 0 {
		t.SlotStepMinutes = stepMinutes
	}
	if t.ClosedWeekdays == nil {
		t.ClosedWeekdays = closed
	}
}
