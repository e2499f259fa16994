package reschedule_appointment

import (
	"time"

	"github.com/google/uuid"

	rescheduleAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	StaffID    *uuid.UUID `json:"staffId,omitempty"`
	ResourceID *uuid.UUID `json:"resourceId,omitempty"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID         uuid.UUID  `json:"id"`
	StaffID    *uuid.UUID `json:"staffId,omitempty"`
	ResourceID *uuid.UUID `json:"resourceId,omitempty"`
	Start      string     `json:"start"`
	End        string     `json:"end"`
	Status     string     `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(tenantID, appointmentID uuid.UUID) *rescheduleAppointment.Request {
	return &rescheduleAppointment.Request{
		TenantID:      tenantID,
		AppointmentID: appointmentID,
		Start:         r.Start,
		End:           r.End,
		StaffID:       r.StaffID,
		ResourceID:    r.ResourceID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:         resp.ID,
		StaffID:    resp.StaffID,
		ResourceID: resp.ResourceID,
		Start:      resp.Start.Format(time.RFC3339),
		End:        resp.End.Format(time.RFC3339),
		Status:     resp.Status,
	}
}
