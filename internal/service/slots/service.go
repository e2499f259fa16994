package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/service"
	staffRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-PetCareService/internal/service/availability"
)

// Service генератор свободных слотов
type Service struct {
	tenants         TenantProvider
	serviceRepo     ServiceRepository
	staffRepo       StaffRepository
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	horizonDays     int
	logger          Logger
}

// NewService создает новый экземпляр генератора слотов
func NewService(
	tenants TenantProvider,
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	appointmentRepo AppointmentRepository,
	timeProvider TimeProvider,
	horizonDays int,
	logger Logger,
) *Service {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultSearchHorizonDays
	}
	return &Service{
		tenants:         tenants,
		serviceRepo:     serviceRepo,
		staffRepo:       staffRepo,
		appointmentRepo: appointmentRepo,
		timeProvider:    timeProvider,
		horizonDays:     horizonDays,
		logger:          logger,
	}
}

// AvailableSlots возвращает слоты на дату в хронологическом порядке
// Слот попадает в выдачу, если свободен хотя бы один сотрудник
func (s *Service) AvailableSlots(ctx context.Context, tenantID uuid.UUID, date time.Time, serviceID uuid.UUID, staffID *uuid.UUID) ([]domain.Slot, error) {
	s.logger.Info("GetAvailableSlots: tenant=%s, service=%s, date=%s", tenantID, serviceID, date.Format(domain.DateFormat))

	tenant, service, staff, err := s.load(ctx, tenantID, serviceID, staffID)
	if err != nil {
		return nil, err
	}

	result, err := s.slotsForDay(ctx, tenant, service, staff, date, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetAvailableSlots: found %d slots for service=%s on %s", len(result), serviceID, date.Format(domain.DateFormat))
	return result, nil
}

// FindNextAvailable ищет первый свободный слот, начиная с startDate
// Просматривается не больше horizonDays дней, закрытые дни тенанта пропускаются
func (s *Service) FindNextAvailable(ctx context.Context, tenantID, serviceID uuid.UUID, startDate time.Time, staffID *uuid.UUID) (*domain.Slot, error) {
	s.logger.Info("FindNextAvailableSlot: tenant=%s, service=%s, from=%s", tenantID, serviceID, startDate.Format(domain.DateFormat))

	tenant, service, staff, err := s.load(ctx, tenantID, serviceID, staffID)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	for i := 0; i < s.horizonDays; i++ {
		day := startDate.AddDate(0, 0, i)
		if !tenant.IsBusinessDay(day) {
			continue
		}

		daySlots, err := s.slotsForDay(ctx, tenant, service, staff, day, now)
		if err != nil {
			return nil, err
		}
		if len(daySlots) > 0 {
			s.logger.Info("FindNextAvailableSlot: next slot at %s", daySlots[0].Start.Format(time.RFC3339))
			return &daySlots[0], nil
		}
	}

	s.logger.Info("FindNextAvailableSlot: no slot within %d days from %s", s.horizonDays, startDate.Format(domain.DateFormat))
	return nil, ErrNoSlotFound
}

// load получает тенанта, услугу и список сотрудников-кандидатов
func (s *Service) load(ctx context.Context, tenantID, serviceID uuid.UUID, staffID *uuid.UUID) (*domain.Tenant, *domain.Service, []*domain.Staff, error) {
	tenant, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, nil, nil, err
	}

	service, err := s.serviceRepo.GetByID(ctx, tenantID, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Slots: service id=%s not found", serviceID)
			return nil, nil, nil, ErrServiceNotFound
		}
		s.logger.Error("Slots: failed to get service id=%s: %v", serviceID, err)
		return nil, nil, nil, fmt.Errorf("%w: load - get service: %v", ErrInternal, err)
	}
	if !service.IsBookable() {
		s.logger.Warn("Slots: service id=%s is not bookable", serviceID)
		return nil, nil, nil, ErrServiceUnavailable
	}

	if staffID != nil {
		member, err := s.staffRepo.GetByID(ctx, tenantID, *staffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				s.logger.Warn("Slots: staff id=%s not found", *staffID)
				return nil, nil, nil, ErrStaffNotFound
			}
			s.logger.Error("Slots: failed to get staff id=%s: %v", *staffID, err)
			return nil, nil, nil, fmt.Errorf("%w: load - get staff: %v", ErrInternal, err)
		}
		if !member.CanTakeBookings() {
			return tenant, service, nil, nil
		}
		return tenant, service, []*domain.Staff{member}, nil
	}

	staff, err := s.staffRepo.ListBookable(ctx, tenantID)
	if err != nil {
		s.logger.Error("Slots: failed to list staff for tenant=%s: %v", tenantID, err)
		return nil, nil, nil, fmt.Errorf("%w: load - list staff: %v", ErrInternal, err)
	}
	return tenant, service, staff, nil
}

// slotsForDay генерирует слоты одного дня
// Записи сотрудников за день загружаются одним запросом, проверка пересечений идет в памяти
func (s *Service) slotsForDay(
	ctx context.Context,
	tenant *domain.Tenant,
	service *domain.Service,
	staff []*domain.Staff,
	date time.Time,
	now time.Time,
) ([]domain.Slot, error) {
	result := make([]domain.Slot, 0)
	if len(staff) == 0 || !tenant.IsBusinessDay(date) {
		return result, nil
	}

	dayWindow := tenant.BusinessWindow(date)
	if !dayWindow.End.After(dayWindow.Start) {
		return result, nil
	}

	staffIDs := make([]uuid.UUID, 0, len(staff))
	for _, member := range staff {
		staffIDs = append(staffIDs, member.ID)
	}

	appointments, err := s.appointmentRepo.ListOverlapping(ctx, domain.OverlapFilter{
		TenantID: tenant.ID,
		StaffIDs: staffIDs,
		Window:   dayWindow,
	})
	if err != nil {
		s.logger.Error("Slots: failed to list appointments on %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: slotsForDay - list appointments: %v", ErrInternal, err)
	}

	byStaff := make(map[uuid.UUID][]*domain.Appointment, len(staff))
	for _, a := range appointments {
		if a.StaffID != nil {
			byStaff[*a.StaffID] = append(byStaff[*a.StaffID], a)
		}
	}

	total := service.TotalDuration()
	step := time.Duration(tenant.SlotStepMinutes) * time.Minute
	if step <= 0 {
		step = domain.DefaultSlotStepMinutes * time.Minute
	}

	for start := dayWindow.Start; !start.Add(total).After(dayWindow.End); start = start.Add(step) {
		if !start.After(now) {
			continue
		}
		candidate := domain.Interval{Start: start, End: start.Add(total)}

		eligible := make([]uuid.UUID, 0, len(staff))
		for _, member := range staff {
			if !availability.WithinWorkingHours(member.Schedule, tenant, candidate) {
				continue
			}
			if availability.CountOverlapping(byStaff[member.ID], candidate, nil) > 0 {
				continue
			}
			eligible = append(eligible, member.ID)
		}

		if len(eligible) == 0 {
			continue
		}
		sortIDs(eligible)

		result = append(result, domain.Slot{
			Start:            candidate.Start,
			End:              candidate.End,
			EligibleStaffIDs: eligible,
			DurationMinutes:  service.TotalDurationMinutes(),
		})
	}

	return result, nil
}
