package slots

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

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Staff, error)
	ListBookable(ctx context.Context, tenantID uuid.UUID) ([]*domain.Staff, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Appointment, error)
}

// TenantProvider отдает тенанта с заполненными настройками календаря
type TenantProvider interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
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
