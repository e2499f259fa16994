package noshow

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Settings параметры штрафов за неявку
type Settings struct {
	GraceMinutes int
	FeeEnabled   bool
	FeeSchedule  []int64
}

// MarkResult результат отметки неявки
type MarkResult struct {
	Appointment *domain.Appointment
	FeeCents    int64
	PaymentID   *uuid.UUID
	SMSSent     bool
}

// History сводка неявок клиента
type History struct {
	OwnerID         uuid.UUID
	TotalNoShows    int
	TotalFeesCents  int64
	UnpaidFeesCents int64
	NoShowRate      decimal.Decimal
	LastNoShowAt    *time.Time
	RecentNoShows   []RecentNoShow
}

// RecentNoShow одна из последних неявок клиента
type RecentNoShow struct {
	AppointmentID  uuid.UUID
	ScheduledStart time.Time
	ServiceID      uuid.UUID
	FeeCents       int64
}

// HighRiskCustomer клиент с частыми неявками
type HighRiskCustomer struct {
	Owner       *domain.Owner
	NoShowCount int
	NoShowRate  decimal.Decimal
}
