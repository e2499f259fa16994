package vaccination

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Gate проверяет прививки питомцев перед записью на услугу
type Gate struct {
	petRepo      PetRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewGate создает новый экземпляр проверки вакцинаций
func NewGate(petRepo PetRepository, timeProvider TimeProvider, logger Logger) *Gate {
	return &Gate{petRepo: petRepo, timeProvider: timeProvider, logger: logger}
}

// Check возвращает nil, если все питомцы допущены к услуге
//
// Если услуга перечисляет типы вакцин, для каждого типа берется запись
// с максимальной датой окончания; отсутствие записи или истекший срок означает отказ.
// Иначе проверяется общий статус питомца (current или verified).
// Первый отказ прерывает проверку и возвращается как *domain.Rejection.
func (g *Gate) Check(ctx context.Context, tenant *domain.Tenant, service *domain.Service, petIDs []uuid.UUID) error {
	if !service.RequiresVaccination {
		return nil
	}

	pets, err := g.petRepo.GetByIDs(ctx, tenant.ID, petIDs)
	if err != nil {
		g.logger.Error("VaccinationGate: failed to load pets: %v", err)
		return fmt.Errorf("%w: Check - load pets: %v", ErrInternal, err)
	}
	byID := make(map[uuid.UUID]*domain.Pet, len(pets))
	for _, p := range pets {
		byID[p.ID] = p
	}

	var records map[uuid.UUID][]*domain.VaccinationRecord
	if len(service.RequiredVaccinations) > 0 {
		list, err := g.petRepo.ListVaccinations(ctx, tenant.ID, petIDs, service.RequiredVaccinations)
		if err != nil {
			g.logger.Error("VaccinationGate: failed to load vaccination records: %v", err)
			return fmt.Errorf("%w: Check - load records: %v", ErrInternal, err)
		}
		records = make(map[uuid.UUID][]*domain.VaccinationRecord, len(petIDs))
		for _, r := range list {
			records[r.PetID] = append(records[r.PetID], r)
		}
	}

	today := g.timeProvider.Now().In(tenant.Location())

	for _, petID := range petIDs {
		pet, ok := byID[petID]
		if !ok {
			return domain.Reject(ErrPetNotFound, "Pet %s not found", petID)
		}

		if len(service.RequiredVaccinations) == 0 {
			if !pet.VaccinationStatus.IsAcceptable() {
				g.logger.Info("VaccinationGate: pet id=%s has status %s", pet.ID, pet.VaccinationStatus)
				return domain.Reject(ErrVaccinationRequired, "Pet %s vaccination status is %s", pet.Name, pet.VaccinationStatus)
			}
			continue
		}

		latest := domain.LatestByType(records[petID])
		for _, vaccineType := range service.RequiredVaccinations {
			record, ok := latest[vaccineType]
			if !ok || record.IsExpiredOn(today) {
				g.logger.Info("VaccinationGate: pet id=%s lacks current %s vaccination", pet.ID, vaccineType)
				return domain.Reject(ErrVaccinationRequired, "Pet %s requires current %s vaccination", pet.Name, vaccineType)
			}
		}
	}

	return nil
}
