package check_availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

type AvailabilityChecker interface {
	CheckStaff(ctx context.Context, tenantID, staffID uuid.UUID, window domain.Interval, excludeID *uuid.UUID) (bool, error)
	CheckResource(ctx context.Context, tenantID, resourceID uuid.UUID, window domain.Interval, excludeID *uuid.UUID) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
