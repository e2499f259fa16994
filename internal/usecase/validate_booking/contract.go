package validate_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/validation"
)

// TenantProvider интерфейс получения тенанта с настройками календаря
type TenantProvider interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

// BookingValidator проверка записи по правилам
type BookingValidator interface {
	Validate(ctx context.Context, tenant *domain.Tenant, req validation.Request) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
