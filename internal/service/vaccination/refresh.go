package vaccination

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// JobName имя batch-задачи пересчета статусов
const JobName = "vaccination"

// RefreshStatuses пересчитывает статусы всех записей о вакцинациях тенанта
// и общий статус каждого питомца. Статус verified, выставленный вручную, не трогается.
// Ошибка по отдельной записи или питомцу учитывается в отчете и не прерывает обход.
func (g *Gate) RefreshStatuses(ctx context.Context, tenant *domain.Tenant) (domain.BatchReport, error) {
	report := domain.BatchReport{Job: JobName, TenantID: tenant.ID}
	today := g.timeProvider.Now().In(tenant.Location())

	records, err := g.petRepo.ListVaccinationsByTenant(ctx, tenant.ID)
	if err != nil {
		g.logger.Error("RefreshVaccinations: failed to load records for tenant=%s: %v", tenant.ID, err)
		return report, err
	}

	pets, err := g.petRepo.ListByTenant(ctx, tenant.ID)
	if err != nil {
		g.logger.Error("RefreshVaccinations: failed to load pets for tenant=%s: %v", tenant.ID, err)
		return report, err
	}

	// 1. Статусы записей
	byPet := make(map[uuid.UUID][]*domain.VaccinationRecord, len(pets))
	for _, r := range records {
		byPet[r.PetID] = append(byPet[r.PetID], r)

		derived := domain.DeriveVaccinationStatus(r.ExpiryDate, today)
		if derived == r.Status {
			continue
		}
		report.Detected++
		if err := g.petRepo.UpdateRecordStatus(ctx, tenant.ID, r.ID, derived); err != nil {
			g.logger.Warn("RefreshVaccinations: failed to update record id=%s: %v", r.ID, err)
			report.Errors++
			continue
		}
		report.Applied++
	}

	// 2. Общий статус питомцев
	for _, p := range pets {
		if p.VaccinationStatus == domain.VaccinationVerified {
			continue
		}
		overall := domain.OverallVaccinationStatus(byPet[p.ID], today)
		if overall == p.VaccinationStatus {
			continue
		}
		report.Detected++
		if err := g.petRepo.UpdateVaccinationStatus(ctx, tenant.ID, p.ID, overall); err != nil {
			g.logger.Warn("RefreshVaccinations: failed to update pet id=%s: %v", p.ID, err)
			report.Errors++
			continue
		}
		report.Applied++
	}

	g.logger.Info("RefreshVaccinations: tenant=%s detected=%d applied=%d errors=%d",
		tenant.ID, report.Detected, report.Applied, report.Errors)
	return report, nil
}
