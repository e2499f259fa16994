package validate_booking

import (
	"time"

	"github.com/google/uuid"

	validateBooking "github.com/m04kA/SMC-PetCareService/internal/usecase/validate_booking"
)

// ValidateBookingRequest HTTP request model
type ValidateBookingRequest struct {
	ServiceID  uuid.UUID   `json:"serviceId"`
	PetIDs     []uuid.UUID `json:"petIds"`
	StaffID    *uuid.UUID  `json:"staffId,omitempty"`
	ResourceID *uuid.UUID  `json:"resourceId,omitempty"`
	ExcludeID  *uuid.UUID  `json:"excludeAppointmentId,omitempty"`
	Start      time.Time   `json:"start"` // RFC3339
	End        time.Time   `json:"end"`   // RFC3339
}

// ValidateBookingResponse HTTP response model
type ValidateBookingResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateBookingRequest) ToUseCaseRequest(tenantID uuid.UUID) *validateBooking.Request {
	return &validateBooking.Request{
		TenantID:   tenantID,
		ServiceID:  r.ServiceID,
		PetIDs:     r.PetIDs,
		StaffID:    r.StaffID,
		ResourceID: r.ResourceID,
		ExcludeID:  r.ExcludeID,
		Start:      r.Start,
		End:        r.End,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateBooking.Response) *ValidateBookingResponse {
	return &ValidateBookingResponse{
		Valid:  resp.Valid,
		Reason: resp.Reason,
		Kind:   resp.Kind,
	}
}
