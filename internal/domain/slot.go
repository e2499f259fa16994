package domain

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a bookable window together with the staff members free during it
type Slot struct {
	Start            time.Time
	End              time.Time
	EligibleStaffIDs []uuid.UUID
	DurationMinutes  int
}
