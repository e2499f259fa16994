package validate_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/tenants"
	"github.com/m04kA/SMC-PetCareService/internal/service/validation"
)

// UseCase use case для предварительной проверки записи
// Проверка выполняется без транзакции и без блокировок, результат не гарантирует,
// что запись с теми же параметрами пройдет позже.
type UseCase struct {
	tenants   TenantProvider
	validator BookingValidator
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(tenants TenantProvider, validator BookingValidator, logger Logger) *UseCase {
	return &UseCase{tenants: tenants, validator: validator, logger: logger}
}

// Execute проверяет запись и возвращает причину отказа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.TenantID == uuid.Nil || req.ServiceID == uuid.Nil {
		return nil, fmt.Errorf("%w: tenantID and serviceID are required", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	// 2. Тенант
	tenant, err := uc.tenants.Get(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenants.ErrTenantNotFound) || errors.Is(err, tenants.ErrTenantInactive) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	// 3. Правила записи
	_, err = uc.validator.Validate(ctx, tenant, validation.Request{
		Start:      req.Start,
		End:        req.End,
		ServiceID:  req.ServiceID,
		PetIDs:     req.PetIDs,
		StaffID:    req.StaffID,
		ResourceID: req.ResourceID,
		ExcludeID:  req.ExcludeID,
	})
	if err != nil {
		if reason, ok := domain.ReasonOf(err); ok {
			return &Response{Valid: false, Reason: reason, Kind: validation.KindOf(err)}, nil
		}
		uc.logger.Error("ValidateBooking: tenant=%s failed: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &Response{Valid: true}, nil
}
