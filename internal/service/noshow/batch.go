package noshow

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// JobName имя batch-задачи неявок
const JobName = "noshow"

// ProcessTenant находит неявки тенанта и отмечает каждую в отдельной транзакции
// Штраф начисляется, если он включен в настройках. Ошибка по одной записи
// учитывается в отчете и не прерывает обход.
func (s *Service) ProcessTenant(ctx context.Context, tenant *domain.Tenant) (domain.BatchReport, error) {
	report := domain.BatchReport{Job: JobName, TenantID: tenant.ID}

	candidates, err := s.Detect(ctx, tenant.ID, s.settings.GraceMinutes)
	if err != nil {
		return report, err
	}
	report.Detected = len(candidates)

	for _, appt := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if _, err := s.MarkAsNoShow(ctx, tenant, appt.ID, s.settings.FeeEnabled); err != nil {
			report.Errors++
			continue
		}
		report.Applied++
	}

	s.logger.Info("ProcessNoShows: tenant=%s detected=%d applied=%d errors=%d",
		tenant.ID, report.Detected, report.Applied, report.Errors)
	return report, nil
}
