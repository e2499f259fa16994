package domain

import "time"

// Scheduling defaults
const (
	DefaultBusinessStart     = "09:00"
	DefaultBusinessEnd       = "17:00"
	DefaultSlotStepMinutes   = 30
	DefaultSearchHorizonDays = 14
	DurationToleranceMinutes = 1
	DefaultTimezone          = "UTC"
)

// No-show defaults
const (
	DefaultNoShowGraceMinutes = 15
	DefaultNoShowFeeCents     = 2500
)

// DefaultNoShowFeeSchedule is indexed by the ordinal of the no-show (1st, 2nd, ...).
// Ordinals past the end use the last tier.
var DefaultNoShowFeeSchedule = []int64{2500, 3500, 5000, 7500}

// ExpiringSoonDays is how close to expiry a vaccination is flagged
const ExpiringSoonDays = 30

// VaccinationAlertThresholds are the days before expiry on which owners get an SMS reminder
var VaccinationAlertThresholds = []int{30, 14, 7}

// RecentNoShowsLimit is how many latest no-shows the history shows
const RecentNoShowsLimit = 5

// DefaultHighRiskNoShows is the no-show count from which an owner is high risk
const DefaultHighRiskNoShows = 2

// LateCancellationWindow is how close to start a customer cancellation counts as late
const LateCancellationWindow = 24 * time.Hour

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultClosedWeekdays are skipped by slot search unless a tenant overrides them
var DefaultClosedWeekdays = []Weekday{Saturday, Sunday}
