package create_appointment

import (
	"time"

	"github.com/google/uuid"

	createAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	OwnerID    uuid.UUID   `json:"ownerId"`
	ServiceID  uuid.UUID   `json:"serviceId"`
	PetIDs     []uuid.UUID `json:"petIds"`
	StaffID    *uuid.UUID  `json:"staffId,omitempty"`
	ResourceID *uuid.UUID  `json:"resourceId,omitempty"`
	Start      time.Time   `json:"start"` // RFC3339
	End        time.Time   `json:"end"`   // RFC3339, включая буферы услуги
	Notes      *string     `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           uuid.UUID   `json:"id"`
	OwnerID      uuid.UUID   `json:"ownerId"`
	ServiceID    uuid.UUID   `json:"serviceId"`
	PetIDs       []uuid.UUID `json:"petIds"`
	StaffID      *uuid.UUID  `json:"staffId,omitempty"`
	ResourceID   *uuid.UUID  `json:"resourceId,omitempty"`
	Start        string      `json:"start"`
	End          string      `json:"end"`
	Status       string      `json:"status"`
	DepositCents int64       `json:"depositCents"`
	Notes        *string     `json:"notes,omitempty"`
	CreatedAt    string      `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(tenantID uuid.UUID) *createAppointment.Request {
	return &createAppointment.Request{
		TenantID:   tenantID,
		OwnerID:    r.OwnerID,
		ServiceID:  r.ServiceID,
		PetIDs:     r.PetIDs,
		StaffID:    r.StaffID,
		ResourceID: r.ResourceID,
		Start:      r.Start,
		End:        r.End,
		Notes:      r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		OwnerID:      resp.OwnerID,
		ServiceID:    resp.ServiceID,
		PetIDs:       resp.PetIDs,
		StaffID:      resp.StaffID,
		ResourceID:   resp.ResourceID,
		Start:        resp.Start.Format(time.RFC3339),
		End:          resp.End.Format(time.RFC3339),
		Status:       resp.Status,
		DepositCents: resp.DepositCents,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
