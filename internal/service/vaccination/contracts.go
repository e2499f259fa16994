package vaccination

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// PetRepository интерфейс репозитория питомцев и вакцинаций
type PetRepository interface {
	GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*domain.Pet, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Pet, error)
	UpdateVaccinationStatus(ctx context.Context, tenantID, petID uuid.UUID, status domain.VaccinationStatus) error
	ListVaccinations(ctx context.Context, tenantID uuid.UUID, petIDs []uuid.UUID, types []string) ([]*domain.VaccinationRecord, error)
	ListVaccinationsByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.VaccinationRecord, error)
	UpdateRecordStatus(ctx context.Context, tenantID, recordID uuid.UUID, status domain.VaccinationStatus) error
	ListVaccinationsExpiring(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*domain.VaccinationRecord, error)
	ListExpiredVaccinations(ctx context.Context, tenantID uuid.UUID, before time.Time) ([]*domain.VaccinationRecord, error)
	MarkAlertSent(ctx context.Context, tenantID, recordID uuid.UUID, at time.Time) error
}

// OwnerRepository интерфейс репозитория клиентов
type OwnerRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Owner, error)
}

// SMSSender отправка SMS клиенту
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
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
