package mark_no_show

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/service/noshow"
)

// MarkNoShowRequest HTTP request model
// Без applyFee штраф начисляется
type MarkNoShowRequest struct {
	ApplyFee *bool `json:"applyFee,omitempty"`
}

// WaiveFeeRequest HTTP request model
type WaiveFeeRequest struct {
	Reason string `json:"reason"`
}

// MarkNoShowResponse HTTP response model
type MarkNoShowResponse struct {
	AppointmentID  uuid.UUID  `json:"appointmentId"`
	Status         string     `json:"status"`
	NoShowMarkedAt *string    `json:"noShowMarkedAt,omitempty"`
	FeeCents       int64      `json:"feeCents"`
	PaymentID      *uuid.UUID `json:"paymentId,omitempty"`
	SMSSent        bool       `json:"smsSent"`
}

func (r *MarkNoShowRequest) applyFee() bool {
	return r.ApplyFee == nil || *r.ApplyFee
}

// FromMarkResult конвертирует результат сервиса в HTTP response
func FromMarkResult(res *noshow.MarkResult) *MarkNoShowResponse {
	return &MarkNoShowResponse{
		AppointmentID:  res.Appointment.ID,
		Status:         string(res.Appointment.Status),
		NoShowMarkedAt: handlers.FormatTime(res.Appointment.NoShowMarkedAt),
		FeeCents:       res.FeeCents,
		PaymentID:      res.PaymentID,
		SMSSent:        res.SMSSent,
	}
}
