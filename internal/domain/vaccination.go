package domain

import (
	"time"

	"github.com/google/uuid"
)

// VaccinationStatus is the derived state of a vaccination record or of a pet overall
type VaccinationStatus string

const (
	VaccinationCurrent      VaccinationStatus = "current"
	VaccinationExpiringSoon VaccinationStatus = "expiring_soon"
	VaccinationExpired      VaccinationStatus = "expired"
	VaccinationUnknown      VaccinationStatus = "unknown"
	// VaccinationVerified is set manually by staff on a pet and is never derived
	VaccinationVerified VaccinationStatus = "verified"
)

// IsAcceptable returns true for statuses that pass the overall-status gate
func (s VaccinationStatus) IsAcceptable() bool {
	return s == VaccinationCurrent || s == VaccinationVerified
}

// VaccinationRecord is one administered vaccine for a pet
type VaccinationRecord struct {
	ID               uuid.UUID
	TenantID         uuid.UUID
	PetID            uuid.UUID
	Type             string
	AdministeredDate time.Time
	ExpiryDate       *time.Time
	Status           VaccinationStatus
	AlertCount       int
	LastAlertSentAt  *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DaysUntilExpiry returns calendar days from today to the expiry date.
// Negative for expired records; ok is false when the record has no expiry date.
func (r *VaccinationRecord) DaysUntilExpiry(today time.Time) (int, bool) {
	if r.ExpiryDate == nil {
		return 0, false
	}
	diff := truncateDay(*r.ExpiryDate).Sub(truncateDay(today))
	return int(diff.Hours() / 24), true
}

// AlertSentOn reports whether an expiry reminder already went out on today's calendar day
func (r *VaccinationRecord) AlertSentOn(today time.Time) bool {
	if r.LastAlertSentAt == nil {
		return false
	}
	return truncateDay(r.LastAlertSentAt.In(today.Location())).Equal(truncateDay(today))
}

// DeriveVaccinationStatus computes the status of a record from its expiry date.
// Dates are compared as calendar days.
func DeriveVaccinationStatus(expiry *time.Time, today time.Time) VaccinationStatus {
	if expiry == nil {
		return VaccinationUnknown
	}
	exp := truncateDay(*expiry)
	day := truncateDay(today)

	switch {
	case exp.Before(day):
		return VaccinationExpired
	case !exp.After(day.AddDate(0, 0, ExpiringSoonDays)):
		return VaccinationExpiringSoon
	default:
		return VaccinationCurrent
	}
}

// IsExpiredOn reports whether the record is no longer valid on today
func (r *VaccinationRecord) IsExpiredOn(today time.Time) bool {
	if r.ExpiryDate == nil {
		return true
	}
	return truncateDay(*r.ExpiryDate).Before(truncateDay(today))
}

// LatestByType keeps, for every vaccine type, the record with the latest expiry date.
// Records without an expiry date only win when no dated record exists.
func LatestByType(records []*VaccinationRecord) map[string]*VaccinationRecord {
	latest := make(map[string]*VaccinationRecord, len(records))
	for _, r := range records {
		current, ok := latest[r.Type]
		if !ok || laterExpiry(r, current) {
			latest[r.Type] = r
		}
	}
	return latest
}

func laterExpiry(a, b *VaccinationRecord) bool {
	if a.ExpiryDate == nil {
		return false
	}
	if b.ExpiryDate == nil {
		return true
	}
	return a.ExpiryDate.After(*b.ExpiryDate)
}

// OverallVaccinationStatus folds the authoritative records of a pet into one status.
// Precedence: expired, expiring_soon, current. Undated records do not lower a dated
// status; unknown is returned only when no record carries an expiry date.
func OverallVaccinationStatus(records []*VaccinationRecord, today time.Time) VaccinationStatus {
	var expired, soon, current bool
	for _, r := range LatestByType(records) {
		switch DeriveVaccinationStatus(r.ExpiryDate, today) {
		case VaccinationExpired:
			expired = true
		case VaccinationExpiringSoon:
			soon = true
		case VaccinationCurrent:
			current = true
		}
	}

	switch {
	case expired:
		return VaccinationExpired
	case soon:
		return VaccinationExpiringSoon
	case current:
		return VaccinationCurrent
	default:
		return VaccinationUnknown
	}
}

// CalendarDate returns the calendar day of t as midnight UTC, the form DATE columns are read in
func CalendarDate(t time.Time) time.Time {
	return truncateDay(t)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
