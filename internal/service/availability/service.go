package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/resource"
	staffRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/staff"
)

// Checker отвечает на вопрос "свободен ли сотрудник/ресурс в окне"
//
// Внутри транзакции репозитории блокируют строку субъекта и пересекающиеся записи
// (FOR UPDATE), поэтому проверка и последующая запись новой записи атомарны:
// конкурирующая транзакция по тому же субъекту ждет коммита
type Checker struct {
	appointmentRepo AppointmentRepository
	staffRepo       StaffRepository
	resourceRepo    ResourceRepository
	tenants         TenantProvider
	logger          Logger
}

// NewChecker создает новый экземпляр проверки доступности
func NewChecker(
	appointmentRepo AppointmentRepository,
	staffRepo StaffRepository,
	resourceRepo ResourceRepository,
	tenants TenantProvider,
	logger Logger,
) *Checker {
	return &Checker{
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		resourceRepo:    resourceRepo,
		tenants:         tenants,
		logger:          logger,
	}
}

// CheckStaff загружает тенанта и проверяет доступность сотрудника
func (c *Checker) CheckStaff(ctx context.Context, tenantID, staffID uuid.UUID, window domain.Interval, excludeID *uuid.UUID) (bool, error) {
	tenant, err := c.tenants.Get(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return c.IsStaffAvailable(ctx, tenant, staffID, window, excludeID)
}

// CheckResource загружает тенанта и проверяет доступность ресурса
func (c *Checker) CheckResource(ctx context.Context, tenantID, resourceID uuid.UUID, window domain.Interval, excludeID *uuid.UUID) (bool, error) {
	tenant, err := c.tenants.Get(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return c.IsResourceAvailable(ctx, tenant, resourceID, window, excludeID)
}

// IsStaffAvailable проверяет, что сотрудник активен, работает в это время
// и не занят другой живой записью (вместимость сотрудника всегда 1)
func (c *Checker) IsStaffAvailable(ctx context.Context, tenant *domain.Tenant, staffID uuid.UUID, window domain.Interval, excludeID *uuid.UUID) (bool, error) {
	// 1. Сотрудник (в транзакции строка блокируется)
	staff, err := c.staffRepo.GetByID(ctx, tenant.ID, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			c.logger.Warn("IsStaffAvailable: staff id=%s not found in tenant=%s", staffID, tenant.ID)
			return false, ErrStaffNotFound
		}
		c.logger.Error("IsStaffAvailable: failed to get staff id=%s: %v", staffID, err)
		return false, fmt.Errorf("%w: IsStaffAvailable - get staff: %v", ErrInternal, err)
	}

	// 2. Активность
	if !staff.CanTakeBookings() {
		c.logger.Info("IsStaffAvailable: staff id=%s is not taking bookings", staffID)
		return false, nil
	}

	// 3. Рабочее время
	if !WithinWorkingHours(staff.Schedule, tenant, window) {
		c.logger.Info("IsStaffAvailable: staff id=%s does not work at %s", staffID, window.Start.Format(domain.TimeFormat))
		return false, nil
	}

	// 4. Пересечения с живыми записями
	overlapping, err := c.appointmentRepo.ListOverlapping(ctx, domain.OverlapFilter{
		TenantID:  tenant.ID,
		StaffIDs:  []uuid.UUID{staffID},
		Window:    window,
		ExcludeID: excludeID,
	})
	if err != nil {
		c.logger.Error("IsStaffAvailable: failed to list appointments for staff id=%s: %v", staffID, err)
		return false, fmt.Errorf("%w: IsStaffAvailable - list overlapping: %v", ErrInternal, err)
	}

	return CountOverlapping(overlapping, window, excludeID) == 0, nil
}

// IsResourceAvailable проверяет, что ресурс бронируется, доступен по расписанию
// и число пересекающихся живых записей меньше его вместимости
func (c *Checker) IsResourceAvailable(ctx context.Context, tenant *domain.Tenant, resourceID uuid.UUID, window domain.Interval, excludeID *uuid.UUID) (bool, error) {
	// 1. Ресурс (в транзакции строка блокируется)
	resource, err := c.resourceRepo.GetByID(ctx, tenant.ID, resourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			c.logger.Warn("IsResourceAvailable: resource id=%s not found in tenant=%s", resourceID, tenant.ID)
			return false, ErrResourceNotFound
		}
		c.logger.Error("IsResourceAvailable: failed to get resource id=%s: %v", resourceID, err)
		return false, fmt.Errorf("%w: IsResourceAvailable - get resource: %v", ErrInternal, err)
	}

	// 2. Доступность для бронирования
	if !resource.IsBookable {
		c.logger.Info("IsResourceAvailable: resource id=%s is not bookable", resourceID)
		return false, nil
	}

	// 3. Рабочее время
	if !WithinWorkingHours(resource.Schedule, tenant, window) {
		c.logger.Info("IsResourceAvailable: resource id=%s is closed at %s", resourceID, window.Start.Format(domain.TimeFormat))
		return false, nil
	}

	// 4. Считаем пересечения и сравниваем с вместимостью
	overlapping, err := c.appointmentRepo.ListOverlapping(ctx, domain.OverlapFilter{
		TenantID:   tenant.ID,
		ResourceID: &resourceID,
		Window:     window,
		ExcludeID:  excludeID,
	})
	if err != nil {
		c.logger.Error("IsResourceAvailable: failed to list appointments for resource id=%s: %v", resourceID, err)
		return false, fmt.Errorf("%w: IsResourceAvailable - list overlapping: %v", ErrInternal, err)
	}

	count := CountOverlapping(overlapping, window, excludeID)
	return count < resource.EffectiveCapacity(), nil
}
