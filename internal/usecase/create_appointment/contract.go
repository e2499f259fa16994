package create_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/validation"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// TenantProvider интерфейс получения тенанта с настройками календаря
type TenantProvider interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

// ReputationGate проверка допуска клиента к записи
type ReputationGate interface {
	Check(ctx context.Context, tenantID, ownerID uuid.UUID) error
}

// BookingValidator проверка записи по правилам
type BookingValidator interface {
	Validate(ctx context.Context, tenant *domain.Tenant, req validation.Request) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик отказов в записи
type Metrics interface {
	RecordBookingRejection(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
