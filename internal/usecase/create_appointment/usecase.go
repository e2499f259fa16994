package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/tenants"
	"github.com/m04kA/SMC-PetCareService/internal/service/validation"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	tenants         TenantProvider
	reputation      ReputationGate
	validator       BookingValidator
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	tenants TenantProvider,
	reputation ReputationGate,
	validator BookingValidator,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		tenants:         tenants,
		reputation:      reputation,
		validator:       validator,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
//
// Проверка рейтинга, все правила валидатора (с блокировками) и вставка
// выполняются в одной сериализуемой транзакции. Проигранная гонка возвращается
// тем же отказом, что и занятый сотрудник или ресурс, повтор остается за клиентом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: tenant=%s owner=%s service=%s start=%s",
		req.TenantID, req.OwnerID, req.ServiceID, req.Start.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Тенант
	tenant, err := uc.tenants.Get(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenants.ErrTenantNotFound) || errors.Is(err, tenants.ErrTenantInactive) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	var created *domain.Appointment

	// 3. Проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Рейтинг клиента
		if err := uc.reputation.Check(txCtx, tenant.ID, req.OwnerID); err != nil {
			return err
		}

		// 3.2. Правила записи (сотрудник и ресурс блокируются)
		service, err := uc.validator.Validate(txCtx, tenant, validation.Request{
			Start:      req.Start,
			End:        req.End,
			ServiceID:  req.ServiceID,
			PetIDs:     req.PetIDs,
			StaffID:    req.StaffID,
			ResourceID: req.ResourceID,
		})
		if err != nil {
			return err
		}

		// 3.3. Вставка
		created, err = uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			TenantID:       tenant.ID,
			OwnerID:        req.OwnerID,
			PetIDs:         req.PetIDs,
			ServiceID:      service.ID,
			StaffID:        req.StaffID,
			ResourceID:     req.ResourceID,
			ScheduledStart: req.Start,
			ScheduledEnd:   req.End,
			Status:         domain.AppointmentPending,
			DepositCents:   service.DepositCents(),
			Notes:          req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to insert appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		// 4. Конфликт сериализации это та же занятость
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: tenant=%s lost booking race: %v", tenant.ID, err)
			uc.metrics.RecordBookingRejection("conflict")
			return nil, conflictRejection(req)
		}
		if reason, ok := domain.ReasonOf(err); ok {
			uc.logger.Info("CreateAppointment: tenant=%s owner=%s rejected: %s", tenant.ID, req.OwnerID, reason)
			return nil, err
		}
		uc.logger.Error("CreateAppointment: tenant=%s failed: %v", tenant.ID, err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%s", created.ID)
	return toResponse(created), nil
}

func conflictRejection(req *Request) error {
	if req.StaffID != nil {
		return domain.Reject(validation.ErrConflict, validation.ReasonStaffUnavailable)
	}
	return domain.Reject(validation.ErrConflict, validation.ReasonResourceUnavailable)
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:           a.ID,
		TenantID:     a.TenantID,
		OwnerID:      a.OwnerID,
		ServiceID:    a.ServiceID,
		PetIDs:       a.PetIDs,
		StaffID:      a.StaffID,
		ResourceID:   a.ResourceID,
		Start:        a.ScheduledStart,
		End:          a.ScheduledEnd,
		Status:       string(a.Status),
		DepositCents: a.DepositCents,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
	}
}
