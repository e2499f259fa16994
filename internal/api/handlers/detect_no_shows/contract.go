package detect_no_shows

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

type TenantProvider interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

type NoShowService interface {
	Detect(ctx context.Context, tenantID uuid.UUID, graceMinutes int) ([]*domain.Appointment, error)
	ProcessTenant(ctx context.Context, tenant *domain.Tenant) (domain.BatchReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
