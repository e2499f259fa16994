package update_appointment_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/service/appointments"
)

type AppointmentService interface {
	Confirm(ctx context.Context, tenantID, id uuid.UUID) (*appointments.Result, error)
	CheckIn(ctx context.Context, tenantID, id uuid.UUID) (*appointments.Result, error)
	Complete(ctx context.Context, tenantID, id uuid.UUID) (*appointments.Result, error)
	Cancel(ctx context.Context, tenantID, id uuid.UUID, req appointments.CancelRequest) (*appointments.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
