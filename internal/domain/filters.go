package domain

import (
	"time"

	"github.com/google/uuid"
)

// OverlapFilter selects live appointments intersecting a window on a subject.
// Exactly one of StaffIDs or ResourceID is normally set.
type OverlapFilter struct {
	TenantID   uuid.UUID
	StaffIDs   []uuid.UUID
	ResourceID *uuid.UUID
	Window     Interval
	ExcludeID  *uuid.UUID
}

// OwnerAppointmentStats aggregates an owner's appointment history
type OwnerAppointmentStats struct {
	Total        int
	NoShows      int
	Completed    int
	LastNoShowAt *time.Time
}

// FeeTotals aggregates no-show fee payments of an owner
type FeeTotals struct {
	ChargedCents int64
	UnpaidCents  int64
}
