package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/reputation"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, a *domain.Appointment) error
}

// ReputationRecorder учет событий в рейтинге клиента
type ReputationRecorder interface {
	RecordEvent(ctx context.Context, tenantID, ownerID uuid.UUID, event reputation.Event) (*domain.Owner, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
