package domain

import (
	"time"

	"github.com/google/uuid"
)

// Staff is an employee who can be assigned to appointments.
// A staff member hosts one appointment at a time.
type Staff struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Name        string
	IsActive    bool
	IsAvailable bool
	Schedule    WeeklySchedule
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanTakeBookings returns true if the staff member is active and available
func (s *Staff) CanTakeBookings() bool {
	return s.IsActive && s.IsAvailable
}
