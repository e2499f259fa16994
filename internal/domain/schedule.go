package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PetCareService/pkg/types"
)

// ErrInvalidSchedule is returned when a weekly schedule cannot be decoded or is inconsistent
var ErrInvalidSchedule = errors.New("domain: invalid schedule")

// Weekday is a lowercase English weekday name ("monday" ... "sunday")
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// WeekdayOf returns the weekday name of t in t's own location
func WeekdayOf(t time.Time) Weekday {
	return Weekday(strings.ToLower(t.Weekday().String()))
}

// ParseWeekday validates a weekday name
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(strings.ToLower(strings.TrimSpace(s)))
	switch w {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return w, nil
	}
	return "", fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, s)
}

// Break is a pause inside a working day
type Break struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// DaySchedule is the working window of a single weekday
type DaySchedule struct {
	Open   types.TimeString `json:"start"`
	Close  types.TimeString `json:"end"`
	Breaks []Break          `json:"breaks,omitempty"`
}

// Validate checks time formats and ordering
func (d DaySchedule) Validate() error {
	if err := d.Open.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	if err := d.Close.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	if !d.Open.IsBefore(d.Close) {
		return fmt.Errorf("%w: open %s must be before close %s", ErrInvalidSchedule, d.Open, d.Close)
	}
	for _, b := range d.Breaks {
		if err := b.Start.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		if err := b.End.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		if !b.Start.IsBefore(b.End) {
			return fmt.Errorf("%w: break %s-%s is empty", ErrInvalidSchedule, b.Start, b.End)
		}
	}
	return nil
}

// Window returns the working window on the given calendar date
func (d DaySchedule) Window(date time.Time, loc *time.Location) Interval {
	return Interval{Start: d.Open.On(date, loc), End: d.Close.On(date, loc)}
}

// Covers reports whether iv fits inside the working window of its calendar day
// and does not touch any break
func (d DaySchedule) Covers(iv Interval, loc *time.Location) bool {
	date := iv.Start.In(loc)
	if !d.Window(date, loc).Contains(iv) {
		return false
	}
	for _, b := range d.Breaks {
		pause := Interval{Start: b.Start.On(date, loc), End: b.End.On(date, loc)}
		if pause.Overlaps(iv) {
			return false
		}
	}
	return true
}

// WeeklySchedule maps weekday names to working windows.
// A missing weekday means the subject does not work that day.
type WeeklySchedule map[Weekday]DaySchedule

// Day looks up the schedule for a weekday
func (w WeeklySchedule) Day(day Weekday) (DaySchedule, bool) {
	d, ok := w[day]
	return d, ok
}

// IsConfigured reports whether any working day is defined
func (w WeeklySchedule) IsConfigured() bool {
	return len(w) > 0
}

// Covers reports whether iv lies inside the working hours of its weekday.
// An unconfigured schedule imposes no restriction.
func (w WeeklySchedule) Covers(iv Interval, loc *time.Location) bool {
	if !w.IsConfigured() {
		return true
	}
	if loc == nil {
		loc = time.UTC
	}
	day, ok := w.Day(WeekdayOf(iv.Start.In(loc)))
	if !ok {
		return false
	}
	return day.Covers(iv, loc)
}

// Validate checks every configured day
func (w WeeklySchedule) Validate() error {
	for name, day := range w {
		if _, err := ParseWeekday(string(name)); err != nil {
			return err
		}
		if err := day.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ParseWeeklySchedule decodes the stored JSON shape
// {"monday": {"start": "09:00", "end": "17:00", "breaks": [...]}}.
// Empty input yields an unconfigured schedule.
func ParseWeeklySchedule(raw []byte) (WeeklySchedule, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return WeeklySchedule{}, nil
	}

	var decoded map[string]DaySchedule
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	schedule := make(WeeklySchedule, len(decoded))
	for name, day := range decoded {
		weekday, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		schedule[weekday] = day
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return schedule, nil
}

// MarshalSchedule encodes a schedule for storage
func MarshalSchedule(w WeeklySchedule) ([]byte, error) {
	if w == nil {
		w = WeeklySchedule{}
	}
	return json.Marshal(w)
}
