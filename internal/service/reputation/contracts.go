package reputation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// OwnerRepository интерфейс репозитория клиентов
type OwnerRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Owner, error)
	ListRecoveryCandidates(ctx context.Context, tenantID uuid.UUID, updatedBefore time.Time) ([]*domain.Owner, error)
	ListByScoreRange(ctx context.Context, tenantID uuid.UUID, lo, hi int) ([]*domain.Owner, error)
	UpdateReputation(ctx context.Context, o *domain.Owner) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CountNoShowsScheduledSince(ctx context.Context, tenantID, ownerID uuid.UUID, since time.Time) (int, error)
	OwnerStats(ctx context.Context, tenantID, ownerID uuid.UUID) (*domain.OwnerAppointmentStats, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик восстановлений рейтинга
type Metrics interface {
	RecordReputationRecovery(count int)
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
