package validation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Service, error)
}

// VaccinationGate проверка прививок питомцев
type VaccinationGate interface {
	Check(ctx context.Context, tenant *domain.Tenant, service *domain.Service, petIDs []uuid.UUID) error
}

// AvailabilityChecker проверка занятости сотрудников и ресурсов
type AvailabilityChecker interface {
	IsStaffAvailable(ctx context.Context, tenant *domain.Tenant, staffID uuid.UUID, window domain.Interval, excludeID *uuid.UUID) (bool, error)
	IsResourceAvailable(ctx context.Context, tenant *domain.Tenant, resourceID uuid.UUID, window domain.Interval, excludeID *uuid.UUID) (bool, error)
}

// Metrics счетчик отказов в записи
type Metrics interface {
	RecordBookingRejection(kind string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
