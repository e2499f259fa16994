package validate_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на проверку записи
type Request struct {
	TenantID   uuid.UUID
	ServiceID  uuid.UUID
	PetIDs     []uuid.UUID
	StaffID    *uuid.UUID
	ResourceID *uuid.UUID
	ExcludeID  *uuid.UUID
	Start      time.Time
	End        time.Time
}

// Response результат проверки
type Response struct {
	Valid  bool
	Reason string
	Kind   string
}
