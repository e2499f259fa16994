package vaccination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	ownerRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/owner"
)

// AlertsJobName имя batch-задачи напоминаний об истечении прививок
const AlertsJobName = "vaccination-alerts"

const expiringTemplate = "Hi %s! %s's %s vaccination expires in %d days (%s).\n\n" +
	"Please update vaccination records to continue booking appointments."

// ExpiringVaccination запись о вакцинации вместе с питомцем и владельцем
type ExpiringVaccination struct {
	Record          *domain.VaccinationRecord
	Pet             *domain.Pet
	Owner           *domain.Owner
	DaysUntilExpiry int
}

// Monitor следит за сроками прививок и напоминает владельцам по SMS
type Monitor struct {
	petRepo      PetRepository
	ownerRepo    OwnerRepository
	sms          SMSSender
	timeProvider TimeProvider
	thresholds   []int
	logger       Logger
}

// NewMonitor создает монитор прививок
// Пустой список порогов заменяется domain.VaccinationAlertThresholds
func NewMonitor(petRepo PetRepository, ownerRepo OwnerRepository, sms SMSSender, timeProvider TimeProvider, thresholds []int, logger Logger) *Monitor {
	if len(thresholds) == 0 {
		thresholds = domain.VaccinationAlertThresholds
	}
	return &Monitor{
		petRepo:      petRepo,
		ownerRepo:    ownerRepo,
		sms:          sms,
		timeProvider: timeProvider,
		thresholds:   thresholds,
		logger:       logger,
	}
}

// ExpiringVaccinations возвращает прививки, срок которых истекает в ближайшие daysAhead дней (включая сегодня)
func (m *Monitor) ExpiringVaccinations(ctx context.Context, tenant *domain.Tenant, daysAhead int) ([]ExpiringVaccination, error) {
	if daysAhead < 0 {
		daysAhead = 0
	}
	today := domain.CalendarDate(m.timeProvider.Now().In(tenant.Location()))

	records, err := m.petRepo.ListVaccinationsExpiring(ctx, tenant.ID, today, today.AddDate(0, 0, daysAhead))
	if err != nil {
		m.logger.Error("ExpiringVaccinations: failed to load records for tenant=%s: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: ExpiringVaccinations - list records: %v", ErrInternal, err)
	}
	return m.enrich(ctx, tenant, records, today, "ExpiringVaccinations")
}

// ExpiredVaccinations возвращает прививки, срок которых уже истек
func (m *Monitor) ExpiredVaccinations(ctx context.Context, tenant *domain.Tenant) ([]ExpiringVaccination, error) {
	today := domain.CalendarDate(m.timeProvider.Now().In(tenant.Location()))

	records, err := m.petRepo.ListExpiredVaccinations(ctx, tenant.ID, today)
	if err != nil {
		m.logger.Error("ExpiredVaccinations: failed to load records for tenant=%s: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: ExpiredVaccinations - list records: %v", ErrInternal, err)
	}
	return m.enrich(ctx, tenant, records, today, "ExpiredVaccinations")
}

// SendExpiryAlerts отправляет напоминания по записям, до истечения которых осталось
// ровно столько дней, сколько указано в одном из порогов.
//
// Запись, по которой напоминание уже ушло сегодня, пропускается, поэтому повторный
// запуск в тот же день ничего не отправляет. Владельцы без согласия на SMS или без
// телефона пропускаются и не считаются ошибкой. Сбой отправки или сохранения
// учитывается в отчете и не прерывает обход.
func (m *Monitor) SendExpiryAlerts(ctx context.Context, tenant *domain.Tenant) (domain.BatchReport, error) {
	report := domain.BatchReport{Job: AlertsJobName, TenantID: tenant.ID}
	now := m.timeProvider.Now().In(tenant.Location())
	today := domain.CalendarDate(now)

	for _, days := range m.thresholds {
		target := today.AddDate(0, 0, days)

		records, err := m.petRepo.ListVaccinationsExpiring(ctx, tenant.ID, target, target)
		if err != nil {
			m.logger.Error("VaccinationAlerts: failed to load records for tenant=%s: %v", tenant.ID, err)
			return report, err
		}

		entries, err := m.enrich(ctx, tenant, records, today, "VaccinationAlerts")
		if err != nil {
			return report, err
		}

		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			report.Detected++

			if e.Record.AlertSentOn(now) {
				continue
			}
			if e.Owner == nil || !e.Owner.CanReceiveSMS() {
				m.logger.Info("VaccinationAlerts: skip record id=%s, owner cannot receive SMS", e.Record.ID)
				continue
			}

			body := fmt.Sprintf(expiringTemplate, e.Owner.FullName(), e.Pet.Name, e.Record.Type,
				e.DaysUntilExpiry, e.Record.ExpiryDate.Format("January 02, 2006"))
			if err := m.sms.Send(ctx, *e.Owner.Phone, body); err != nil {
				m.logger.Warn("VaccinationAlerts: failed to send SMS for record id=%s: %v", e.Record.ID, err)
				report.Errors++
				continue
			}
			if err := m.petRepo.MarkAlertSent(ctx, tenant.ID, e.Record.ID, now); err != nil {
				m.logger.Warn("VaccinationAlerts: failed to mark record id=%s: %v", e.Record.ID, err)
				report.Errors++
				continue
			}
			report.Applied++
		}
	}

	m.logger.Info("VaccinationAlerts: tenant=%s detected=%d sent=%d errors=%d",
		tenant.ID, report.Detected, report.Applied, report.Errors)
	return report, nil
}

// enrich подгружает питомцев и владельцев; записи без питомца отбрасываются
func (m *Monitor) enrich(ctx context.Context, tenant *domain.Tenant, records []*domain.VaccinationRecord, today time.Time, op string) ([]ExpiringVaccination, error) {
	if len(records) == 0 {
		return []ExpiringVaccination{}, nil
	}

	petIDs := make([]uuid.UUID, 0, len(records))
	seen := make(map[uuid.UUID]bool, len(records))
	for _, r := range records {
		if !seen[r.PetID] {
			seen[r.PetID] = true
			petIDs = append(petIDs, r.PetID)
		}
	}

	pets, err := m.petRepo.GetByIDs(ctx, tenant.ID, petIDs)
	if err != nil {
		m.logger.Error("%s: failed to load pets for tenant=%s: %v", op, tenant.ID, err)
		return nil, fmt.Errorf("%w: %s - load pets: %v", ErrInternal, op, err)
	}
	petByID := make(map[uuid.UUID]*domain.Pet, len(pets))
	for _, p := range pets {
		petByID[p.ID] = p
	}

	owners := make(map[uuid.UUID]*domain.Owner)
	result := make([]ExpiringVaccination, 0, len(records))
	for _, r := range records {
		pet, ok := petByID[r.PetID]
		if !ok {
			m.logger.Warn("%s: record id=%s references missing pet id=%s", op, r.ID, r.PetID)
			continue
		}

		owner, ok := owners[pet.OwnerID]
		if !ok {
			owner, err = m.ownerRepo.GetByID(ctx, tenant.ID, pet.OwnerID)
			if err != nil && !errors.Is(err, ownerRepo.ErrOwnerNotFound) {
				m.logger.Error("%s: failed to load owner id=%s: %v", op, pet.OwnerID, err)
				return nil, fmt.Errorf("%w: %s - load owner: %v", ErrInternal, op, err)
			}
			owners[pet.OwnerID] = owner
		}

		days, _ := r.DaysUntilExpiry(today)
		result = append(result, ExpiringVaccination{
			Record:          r,
			Pet:             pet,
			Owner:           owner,
			DaysUntilExpiry: days,
		})
	}
	return result, nil
}
