package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

type SlotsService interface {
	AvailableSlots(ctx context.Context, tenantID uuid.UUID, date time.Time, serviceID uuid.UUID, staffID *uuid.UUID) ([]domain.Slot, error)
	FindNextAvailable(ctx context.Context, tenantID, serviceID uuid.UUID, startDate time.Time, staffID *uuid.UUID) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
