package validation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/service"
	"github.com/m04kA/SMC-PetCareService/internal/service/availability"
	"github.com/m04kA/SMC-PetCareService/internal/service/vaccination"
)

// Причины отказа, которые видит клиент
const (
	ReasonServiceNotFound     = "Service not found"
	ReasonServiceUnavailable  = "Service is not available for booking"
	ReasonInPast              = "Cannot book appointments in the past"
	ReasonStaffUnavailable    = "Staff member is not available at this time"
	ReasonResourceUnavailable = "Resource is not available at this time"
	ReasonResourceRequired    = "This service requires a resource (table/van/room)"
	reasonInvalidDurationFmt  = "Invalid appointment duration. Expected %d minutes, got %s"
	reasonTooManyPetsFmt      = "Service allows maximum %d pets per session"
)

// Validator проверяет запись по фиксированному порядку правил
//
// Порядок важен: дешевые проверки идут раньше дорогих, а сообщение об ошибке
// детерминировано. Проверки доступности берут блокировки, поэтому Validate
// нужно вызывать внутри той же транзакции, что и последующая запись.
type Validator struct {
	serviceRepo      ServiceRepository
	gate             VaccinationGate
	checker          AvailabilityChecker
	timeProvider     TimeProvider
	toleranceMinutes int
	metrics          Metrics
	logger           Logger
}

// NewValidator создает новый экземпляр валидатора
func NewValidator(
	serviceRepo ServiceRepository,
	gate VaccinationGate,
	checker AvailabilityChecker,
	timeProvider TimeProvider,
	toleranceMinutes int,
	metrics Metrics,
	logger Logger,
) *Validator {
	return &Validator{
		serviceRepo:      serviceRepo,
		gate:             gate,
		checker:          checker,
		timeProvider:     timeProvider,
		toleranceMinutes: toleranceMinutes,
		metrics:          metrics,
		logger:           logger,
	}
}

// Validate возвращает услугу при успешной проверке или *domain.Rejection с причиной
func (v *Validator) Validate(ctx context.Context, tenant *domain.Tenant, req Request) (*domain.Service, error) {
	service, err := v.validate(ctx, tenant, req)
	if err != nil {
		if reason, ok := domain.ReasonOf(err); ok {
			v.logger.Info("ValidateBooking: tenant=%s service=%s rejected: %s", tenant.ID, req.ServiceID, reason)
			v.record(err)
		}
		return nil, err
	}
	return service, nil
}

func (v *Validator) validate(ctx context.Context, tenant *domain.Tenant, req Request) (*domain.Service, error) {
	// 1. Услуга существует и доступна для онлайн-записи
	service, err := v.serviceRepo.GetByID(ctx, tenant.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, domain.Reject(ErrServiceNotFound, ReasonServiceNotFound)
		}
		v.logger.Error("ValidateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Validate - get service: %v", ErrInternal, err)
	}
	if !service.IsBookable() {
		return nil, domain.Reject(ErrServiceUnavailable, ReasonServiceUnavailable)
	}

	// 2. Начало строго в будущем
	if !req.Start.After(v.timeProvider.Now()) {
		return nil, domain.Reject(ErrInPast, ReasonInPast)
	}

	// 3. Длительность совпадает с полной длительностью услуги
	actual := req.End.Sub(req.Start).Minutes()
	expected := service.TotalDurationMinutes()
	if math.Abs(actual-float64(expected)) > float64(v.toleranceMinutes) {
		return nil, domain.Reject(ErrInvalidDuration, reasonInvalidDurationFmt, expected, formatMinutes(actual))
	}

	// 4. Число питомцев
	if len(req.PetIDs) > service.MaxPetsPerSession {
		return nil, domain.Reject(ErrTooManyPets, reasonTooManyPetsFmt, service.MaxPetsPerSession)
	}

	// 5. Прививки
	if err := v.gate.Check(ctx, tenant, service, req.PetIDs); err != nil {
		return nil, err
	}

	window := domain.Interval{Start: req.Start, End: req.End}

	// 6. Сотрудник
	if req.StaffID != nil {
		ok, err := v.checker.IsStaffAvailable(ctx, tenant, *req.StaffID, window, req.ExcludeID)
		if err != nil && !errors.Is(err, availability.ErrStaffNotFound) {
			return nil, fmt.Errorf("%w: Validate - staff availability: %v", ErrInternal, err)
		}
		if !ok {
			return nil, domain.Reject(ErrStaffUnavailable, ReasonStaffUnavailable)
		}
	}

	// 7. Ресурс
	if req.ResourceID != nil {
		ok, err := v.checker.IsResourceAvailable(ctx, tenant, *req.ResourceID, window, req.ExcludeID)
		if err != nil && !errors.Is(err, availability.ErrResourceNotFound) {
			return nil, fmt.Errorf("%w: Validate - resource availability: %v", ErrInternal, err)
		}
		if !ok {
			return nil, domain.Reject(ErrResourceUnavailable, ReasonResourceUnavailable)
		}
	}

	// 8. Услуге нужен ресурс
	if service.RequiresResource() && req.ResourceID == nil {
		return nil, domain.Reject(ErrResourceRequired, ReasonResourceRequired)
	}

	return service, nil
}

func (v *Validator) record(err error) {
	if v.metrics == nil {
		return
	}
	v.metrics.RecordBookingRejection(KindOf(err))
}

// KindOf возвращает короткую метку вида отказа (для метрик и логов)
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrServiceNotFound):
		return "service_not_found"
	case errors.Is(err, ErrServiceUnavailable):
		return "service_unavailable"
	case errors.Is(err, ErrInPast):
		return "in_past"
	case errors.Is(err, ErrInvalidDuration):
		return "invalid_duration"
	case errors.Is(err, ErrTooManyPets):
		return "too_many_pets"
	case errors.Is(err, vaccination.ErrPetNotFound):
		return "pet_not_found"
	case errors.Is(err, vaccination.ErrVaccinationRequired):
		return "vaccination"
	case errors.Is(err, ErrStaffUnavailable):
		return "staff_unavailable"
	case errors.Is(err, ErrResourceUnavailable):
		return "resource_unavailable"
	case errors.Is(err, ErrResourceRequired):
		return "resource_required"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "other"
	}
}

// formatMinutes печатает длительность как дробное число минут: 90.0, 45.5
func formatMinutes(minutes float64) string {
	s := decimal.NewFromFloat(minutes).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
