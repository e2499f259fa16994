package update_appointment_status

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	ByCustomer         bool    `json:"byCustomer"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// StatusResponse HTTP response model
type StatusResponse struct {
	ID               uuid.UUID `json:"id"`
	Status           string    `json:"status"`
	Start            string    `json:"start"`
	End              string    `json:"end"`
	ArrivedAt        *string   `json:"arrivedAt,omitempty"`
	CancelledAt      *string   `json:"cancelledAt,omitempty"`
	LateCancellation bool      `json:"lateCancellation"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest() appointments.CancelRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return appointments.CancelRequest{
		ByCustomer: r.ByCustomer,
		Reason:     reason,
	}
}

// FromResult конвертирует результат сервиса в HTTP response
func FromResult(res *appointments.Result) *StatusResponse {
	a := res.Appointment
	return &StatusResponse{
		ID:               a.ID,
		Status:           string(a.Status),
		Start:            a.ScheduledStart.Format(time.RFC3339),
		End:              a.ScheduledEnd.Format(time.RFC3339),
		ArrivedAt:        handlers.FormatTime(a.ArrivedAt),
		CancelledAt:      handlers.FormatTime(a.CancelledAt),
		LateCancellation: res.LateCancellation,
	}
}
