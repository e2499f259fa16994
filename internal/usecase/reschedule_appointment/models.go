package reschedule_appointment

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на перенос записи
// Пустые StaffID и ResourceID оставляют текущие значения
type Request struct {
	TenantID      uuid.UUID
	AppointmentID uuid.UUID
	Start         time.Time
	End           time.Time
	StaffID       *uuid.UUID
	ResourceID    *uuid.UUID
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID         uuid.UUID
	StaffID    *uuid.UUID
	ResourceID *uuid.UUID
	Start      time.Time
	End        time.Time
	Status     string
}
