package validation

import (
	"time"

	"github.com/google/uuid"
)

// Request параметры проверяемой записи
// ExcludeID задается при переносе, чтобы запись не конфликтовала сама с собой
type Request struct {
	Start      time.Time
	End        time.Time
	ServiceID  uuid.UUID
	PetIDs     []uuid.UUID
	StaffID    *uuid.UUID
	ResourceID *uuid.UUID
	ExcludeID  *uuid.UUID
}
