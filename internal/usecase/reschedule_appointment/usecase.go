package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-PetCareService/internal/service/tenants"
	"github.com/m04kA/SMC-PetCareService/internal/service/validation"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
)

// UseCase use case для переноса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	tenants         TenantProvider
	validator       BookingValidator
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	tenants TenantProvider,
	validator BookingValidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		tenants:         tenants,
		validator:       validator,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute переносит запись на новое время
// Сама запись исключается из проверки пересечений, чтобы не конфликтовать с собой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: tenant=%s appointment=%s start=%s",
		req.TenantID, req.AppointmentID, req.Start.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if req.TenantID == uuid.Nil || req.AppointmentID == uuid.Nil {
		return nil, fmt.Errorf("%w: tenantID and appointmentID are required", ErrInvalidInput)
	}
	if req.Start.IsZero() || !req.End.After(req.Start) {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	// 2. Тенант
	tenant, err := uc.tenants.Get(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenants.ErrTenantNotFound) || errors.Is(err, tenants.ErrTenantInactive) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	var (
		updated  *domain.Appointment
		hasStaff = req.StaffID != nil
	)

	// 3. Проверка и перенос в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Запись с блокировкой
		appt, err := uc.appointmentRepo.GetByID(txCtx, tenant.ID, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return domain.Reject(ErrAppointmentNotFound, "Appointment not found")
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}
		if !appt.IsLive() {
			return domain.Reject(ErrNotReschedulable, "Cannot reschedule appointment with status %s", appt.Status)
		}

		staffID, resourceID := appt.StaffID, appt.ResourceID
		if req.StaffID != nil {
			staffID = req.StaffID
		}
		if req.ResourceID != nil {
			resourceID = req.ResourceID
		}
		hasStaff = staffID != nil

		// 3.2. Правила записи без учета самой записи
		excludeID := appt.ID
		if _, err := uc.validator.Validate(txCtx, tenant, validation.Request{
			Start:      req.Start,
			End:        req.End,
			ServiceID:  appt.ServiceID,
			PetIDs:     appt.PetIDs,
			StaffID:    staffID,
			ResourceID: resourceID,
			ExcludeID:  &excludeID,
		}); err != nil {
			return err
		}

		// 3.3. Сохранение
		appt.ScheduledStart = req.Start
		appt.ScheduledEnd = req.End
		appt.StaffID = staffID
		appt.ResourceID = resourceID
		if err := uc.appointmentRepo.UpdateSchedule(txCtx, appt); err != nil {
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
		updated = appt
		return nil
	})
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("RescheduleAppointment: appointment=%s lost booking race: %v", req.AppointmentID, err)
			if hasStaff {
				return nil, domain.Reject(validation.ErrConflict, validation.ReasonStaffUnavailable)
			}
			return nil, domain.Reject(validation.ErrConflict, validation.ReasonResourceUnavailable)
		}
		if reason, ok := domain.ReasonOf(err); ok {
			uc.logger.Info("RescheduleAppointment: appointment=%s rejected: %s", req.AppointmentID, reason)
			return nil, err
		}
		uc.logger.Error("RescheduleAppointment: appointment=%s failed: %v", req.AppointmentID, err)
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: appointment=%s moved to %s", updated.ID, updated.ScheduledStart.Format("2006-01-02 15:04"))
	return &Response{
		ID:         updated.ID,
		StaffID:    updated.StaffID,
		ResourceID: updated.ResourceID,
		Start:      updated.ScheduledStart,
		End:        updated.ScheduledEnd,
		Status:     string(updated.Status),
	}, nil
}
