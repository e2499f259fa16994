package get_vaccination_alerts

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/vaccination"
)

type TenantProvider interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

type VaccinationMonitor interface {
	ExpiringVaccinations(ctx context.Context, tenant *domain.Tenant, daysAhead int) ([]vaccination.ExpiringVaccination, error)
	ExpiredVaccinations(ctx context.Context, tenant *domain.Tenant) ([]vaccination.ExpiringVaccination, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
