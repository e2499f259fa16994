package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResourceType is the kind of physical resource
type ResourceType string

const (
	ResourceTable ResourceType = "table"
	ResourceVan   ResourceType = "van"
	ResourceRoom  ResourceType = "room"
	ResourceCage  ResourceType = "cage"
	ResourceOther ResourceType = "other"
)

// Resource is a physical asset (grooming table, mobile van, room, cage).
// Capacity is the number of simultaneous appointments it can host.
type Resource struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Name       string
	Type       ResourceType
	Capacity   int
	IsBookable bool
	Schedule   WeeklySchedule
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EffectiveCapacity never reports less than one slot
func (r *Resource) EffectiveCapacity() int {
	if r.Capacity < 1 {
		return 1
	}
	return r.Capacity
}
