package domain

import (
	"time"

	"github.com/google/uuid"
)

// Pet belongs to an owner. VaccinationStatus is a cached overall status
// refreshed by the vaccination job or set to verified by staff.
type Pet struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	OwnerID           uuid.UUID
	Name              string
	Species           string
	VaccinationStatus VaccinationStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
