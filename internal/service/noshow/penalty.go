package noshow

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	ownerRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/owner"
)

// FeeForCount возвращает штраф за очередную неявку
// Индекс в таблице это число прошлых неявок, после последней ступени сумма не растет
func FeeForCount(schedule []int64, priorNoShows int) int64 {
	if len(schedule) == 0 {
		return 0
	}
	if priorNoShows < 0 {
		priorNoShows = 0
	}
	if priorNoShows >= len(schedule) {
		return schedule[len(schedule)-1]
	}
	return schedule[priorNoShows]
}

// Rate процент неявок с округлением до сотых, 0 если записей не было
func Rate(stats *domain.OwnerAppointmentStats) decimal.Decimal {
	if stats == nil || stats.Total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(stats.NoShows)).
		Div(decimal.NewFromInt(int64(stats.Total))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// CalculatePenalty возвращает сумму штрафа (в центах) за следующую неявку клиента
func (s *Service) CalculatePenalty(ctx context.Context, tenantID, ownerID uuid.UUID) (int64, error) {
	owner, err := s.getOwner(ctx, tenantID, ownerID, "CalculatePenalty")
	if err != nil {
		return 0, err
	}
	return FeeForCount(s.settings.FeeSchedule, owner.NoShowCount), nil
}

// NoShowRate возвращает процент неявок клиента
func (s *Service) NoShowRate(ctx context.Context, tenantID, ownerID uuid.UUID) (decimal.Decimal, error) {
	stats, err := s.appointmentRepo.OwnerStats(ctx, tenantID, ownerID)
	if err != nil {
		s.logger.Error("NoShowRate: failed to load stats for owner=%s: %v", ownerID, err)
		return decimal.Zero, fmt.Errorf("%w: NoShowRate - owner stats: %v", ErrInternal, err)
	}
	return Rate(stats), nil
}

// History возвращает сводку неявок и штрафов клиента
func (s *Service) History(ctx context.Context, tenantID, ownerID uuid.UUID) (*History, error) {
	if _, err := s.getOwner(ctx, tenantID, ownerID, "NoShowHistory"); err != nil {
		return nil, err
	}

	stats, err := s.appointmentRepo.OwnerStats(ctx, tenantID, ownerID)
	if err != nil {
		s.logger.Error("NoShowHistory: failed to load stats for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: History - owner stats: %v", ErrInternal, err)
	}

	totals, err := s.paymentRepo.FeeTotals(ctx, tenantID, ownerID)
	if err != nil {
		s.logger.Error("NoShowHistory: failed to load fee totals for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: History - fee totals: %v", ErrInternal, err)
	}

	missed, err := s.appointmentRepo.ListNoShowsByOwner(ctx, tenantID, ownerID, domain.RecentNoShowsLimit)
	if err != nil {
		s.logger.Error("NoShowHistory: failed to load recent no-shows for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: History - recent no-shows: %v", ErrInternal, err)
	}
	recent := make([]RecentNoShow, 0, len(missed))
	for _, a := range missed {
		recent = append(recent, RecentNoShow{
			AppointmentID:  a.ID,
			ScheduledStart: a.ScheduledStart,
			ServiceID:      a.ServiceID,
			FeeCents:       a.NoShowFeeCharged,
		})
	}

	return &History{
		OwnerID:         ownerID,
		TotalNoShows:    stats.NoShows,
		TotalFeesCents:  totals.ChargedCents,
		UnpaidFeesCents: totals.UnpaidCents,
		NoShowRate:      Rate(stats),
		LastNoShowAt:    stats.LastNoShowAt,
		RecentNoShows:   recent,
	}, nil
}

// HighRiskCustomers возвращает клиентов, у которых не менее minNoShows неявок,
// начиная с самых частых. minNoShows <= 0 заменяется значением по умолчанию.
func (s *Service) HighRiskCustomers(ctx context.Context, tenantID uuid.UUID, minNoShows int) ([]HighRiskCustomer, error) {
	if minNoShows <= 0 {
		minNoShows = domain.DefaultHighRiskNoShows
	}

	owners, err := s.ownerRepo.ListByMinNoShows(ctx, tenantID, minNoShows)
	if err != nil {
		s.logger.Error("HighRiskCustomers: failed to list owners for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: HighRiskCustomers - list owners: %v", ErrInternal, err)
	}

	result := make([]HighRiskCustomer, 0, len(owners))
	for _, o := range owners {
		stats, err := s.appointmentRepo.OwnerStats(ctx, tenantID, o.ID)
		if err != nil {
			s.logger.Error("HighRiskCustomers: failed to load stats for owner=%s: %v", o.ID, err)
			return nil, fmt.Errorf("%w: HighRiskCustomers - owner stats: %v", ErrInternal, err)
		}
		result = append(result, HighRiskCustomer{
			Owner:       o,
			NoShowCount: o.NoShowCount,
			NoShowRate:  Rate(stats),
		})
	}
	return result, nil
}

func (s *Service) getOwner(ctx context.Context, tenantID, ownerID uuid.UUID, op string) (*domain.Owner, error) {
	owner, err := s.ownerRepo.GetByID(ctx, tenantID, ownerID)
	if err != nil {
		if errors.Is(err, ownerRepo.ErrOwnerNotFound) {
			s.logger.Warn("%s: owner id=%s not found", op, ownerID)
			return nil, domain.Reject(ErrCustomerNotFound, ReasonCustomerNotFound)
		}
		s.logger.Error("%s: failed to get owner id=%s: %v", op, ownerID, err)
		return nil, fmt.Errorf("%w: %s - get owner: %v", ErrInternal, op, err)
	}
	return owner, nil
}
