package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a bookable offering (grooming, training session, boarding night...)
type Service struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string

	DurationMinutes      int
	SetupBufferMinutes   int
	CleanupBufferMinutes int
	PriceCents           int64
	MaxPetsPerSession    int

	RequiresVaccination  bool
	RequiredVaccinations []string

	RequiresTable bool
	RequiresVan   bool
	RequiresRoom  bool

	DepositRequired    bool
	DepositAmountCents *int64
	DepositPercentage  *int

	IsActive         bool
	IsBookableOnline bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalDurationMinutes is the calendar block reserved for one session:
// duration plus setup and cleanup buffers
func (s *Service) TotalDurationMinutes() int {
	return s.DurationMinutes + s.SetupBufferMinutes + s.CleanupBufferMinutes
}

// TotalDuration returns TotalDurationMinutes as a time.Duration
func (s *Service) TotalDuration() time.Duration {
	return time.Duration(s.TotalDurationMinutes()) * time.Minute
}

// IsBookable returns true if clients may book the service
func (s *Service) IsBookable() bool {
	return s.IsActive && s.IsBookableOnline
}

// RequiresResource returns true if any resource type is required
func (s *Service) RequiresResource() bool {
	return s.RequiresTable || s.RequiresVan || s.RequiresRoom
}

// DepositCents computes the deposit for one booking.
// A flat amount wins over a percentage; the percentage is applied to the price
// and rounded half-up to whole cents.
func (s *Service) DepositCents() int64 {
	if !s.DepositRequired {
		return 0
	}
	if s.DepositAmountCents != nil {
		return *s.DepositAmountCents
	}
	if s.DepositPercentage != nil {
		return decimal.NewFromInt(s.PriceCents).
			Mul(decimal.NewFromInt(int64(*s.DepositPercentage))).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
	}
	return 0
}
