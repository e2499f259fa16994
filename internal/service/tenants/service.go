package tenants

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	tenantRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-PetCareService/pkg/types"
)

// Defaults настройки календаря, которые применяются, если тенант их не задал
type Defaults struct {
	BusinessStart   types.TimeString
	BusinessEnd     types.TimeString
	SlotStepMinutes int
	ClosedWeekdays  []domain.Weekday
}

// Service отдает тенантов с заполненными настройками календаря
type Service struct {
	repo     TenantRepository
	defaults Defaults
	logger   Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo TenantRepository, defaults Defaults, logger Logger) *Service {
	return &Service{repo: repo, defaults: defaults, logger: logger}
}

// Get возвращает активного тенанта
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("GetTenant: tenant id=%s not found", id)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("GetTenant: repository error for tenant id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	if !tenant.IsActive {
		s.logger.Warn("GetTenant: tenant id=%s is inactive", id)
		return nil, ErrTenantInactive
	}

	s.apply(tenant)
	return tenant, nil
}

// ListActive возвращает всех активных тенантов
func (s *Service) ListActive(ctx context.Context) ([]*domain.Tenant, error) {
	tenants, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActiveTenants: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	for _, t := range tenants {
		s.apply(t)
	}
	return tenants, nil
}

func (s *Service) apply(t *domain.Tenant) {
	t.ApplyDefaults(s.defaults.BusinessStart, s.defaults.BusinessEnd, s.defaults.SlotStepMinutes, s.defaults.ClosedWeekdays)
	if t.Timezone == "" {
		t.Timezone = domain.DefaultTimezone
	}
}
