package noshow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Appointment, error)
	ListNoShowCandidates(ctx context.Context, tenantID uuid.UUID, cutoff time.Time) ([]*domain.Appointment, error)
	MarkNoShow(ctx context.Context, a *domain.Appointment) error
	SetNoShowFee(ctx context.Context, tenantID, id uuid.UUID, feeCents int64) error
	OwnerStats(ctx context.Context, tenantID, ownerID uuid.UUID) (*domain.OwnerAppointmentStats, error)
	ListNoShowsByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, limit int) ([]*domain.Appointment, error)
}

// OwnerRepository интерфейс репозитория клиентов
type OwnerRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Owner, error)
	ListByMinNoShows(ctx context.Context, tenantID uuid.UUID, minNoShows int) ([]*domain.Owner, error)
	UpdateReputation(ctx context.Context, o *domain.Owner) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByAppointment(ctx context.Context, tenantID, appointmentID uuid.UUID, paymentType domain.PaymentType) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, p *domain.Payment) error
	FeeTotals(ctx context.Context, tenantID, ownerID uuid.UUID) (*domain.FeeTotals, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SMSSender отправка SMS клиенту
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// Metrics счетчики неявок
type Metrics interface {
	RecordNoShow(feeApplied bool)
	RecordFeeWaived()
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
