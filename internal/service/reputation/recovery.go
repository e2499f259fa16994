package reputation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// JobName имя batch-задачи восстановления рейтинга
const JobName = "reputation"

// ApplyRecovery начисляет бонус клиентам, у которых рейтинг не менялся дольше окна
//
// Бонус не дается, если за то же окно у клиента была запланирована запись,
// отмеченная как неявка. Начисление идет через recovery_points, поэтому
// кэш и вычисленный рейтинг совпадают. Каждый клиент обрабатывается в своей
// транзакции: ошибка по одному клиенту учитывается в отчете и не откатывает остальных.
func (s *Service) ApplyRecovery(ctx context.Context, tenant *domain.Tenant) (domain.BatchReport, error) {
	report := domain.BatchReport{Job: JobName, TenantID: tenant.ID}
	now := s.timeProvider.Now()
	since := now.Add(-time.Duration(s.settings.RecoveryWindowDays) * 24 * time.Hour)

	candidates, err := s.ownerRepo.ListRecoveryCandidates(ctx, tenant.ID, since)
	if err != nil {
		s.logger.Error("ApplyRecovery: tenant=%s failed to list owners: %v", tenant.ID, err)
		return report, fmt.Errorf("%w: ApplyRecovery - list owners: %v", ErrInternal, err)
	}
	report.Detected = len(candidates)

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		granted, err := s.recoverOwner(ctx, tenant.ID, candidate.ID, since, now)
		if err != nil {
			s.logger.Warn("ApplyRecovery: owner=%s skipped: %v", candidate.ID, err)
			report.Errors++
			continue
		}
		if granted {
			report.Applied++
		}
	}

	if report.Applied > 0 {
		s.metrics.RecordReputationRecovery(report.Applied)
	}
	s.logger.Info("ApplyRecovery: tenant=%s detected=%d applied=%d errors=%d",
		tenant.ID, report.Detected, report.Applied, report.Errors)
	return report, nil
}

// recoverOwner начисляет бонус одному клиенту в отдельной транзакции
func (s *Service) recoverOwner(ctx context.Context, tenantID, ownerID uuid.UUID, since, now time.Time) (bool, error) {
	var granted bool
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Клиент под блокировкой, кандидатство перепроверяется
		owner, err := s.getOwner(ctx, tenantID, ownerID, "ApplyRecovery")
		if err != nil {
			return err
		}
		if owner.LastReputationUpdate != nil && !owner.LastReputationUpdate.Before(since) {
			return nil
		}

		// 2. Недавняя неявка блокирует восстановление
		recent, err := s.appointmentRepo.CountNoShowsScheduledSince(ctx, tenantID, ownerID, since)
		if err != nil {
			return fmt.Errorf("%w: ApplyRecovery - count no-shows: %v", ErrInternal, err)
		}
		if recent > 0 {
			return nil
		}

		// 3. Бонус в пределах максимума
		target := owner.ReputationScore + s.settings.RecoveryBonus
		if target > domain.ReputationMax {
			target = domain.ReputationMax
		}
		grant := owner.RecoveryGrant(target)
		if grant <= 0 {
			return nil
		}

		owner.RecoveryPoints += grant
		owner.RefreshReputation(now)
		if err := s.ownerRepo.UpdateReputation(ctx, owner); err != nil {
			return fmt.Errorf("%w: ApplyRecovery - update owner: %v", ErrInternal, err)
		}
		granted = true
		return nil
	})
	return granted, err
}
