package reputation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Settings параметры рейтинга
type Settings struct {
	MinBookingScore    int
	RecoveryWindowDays int
	RecoveryBonus      int
}

// Event событие, меняющее счетчики клиента
type Event string

const (
	EventNoShow           Event = "no_show"
	EventLateCancellation Event = "late_cancellation"
	EventCompleted        Event = "completed"
)

// Summary сводка рейтинга клиента
type Summary struct {
	OwnerID                   uuid.UUID
	Score                     int
	Category                  domain.ReputationCategory
	CanBook                   bool
	Reason                    string
	NoShowCount               int
	LateCancellationCount     int
	CompletedAppointmentCount int
	TotalAppointments         int
	CompletionRate            decimal.Decimal
	LastReputationUpdate      *time.Time
}
