package get_vaccination_alerts

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/tenants"
)

const (
	msgMissingTenantID  = "отсутствует ID тенанта"
	msgInvalidDaysAhead = "некорректный параметр daysAhead"
	msgTenantNotFound   = "тенант не найден"
)

// defaultDaysAhead горизонт просмотра по умолчанию, совпадает с самым ранним напоминанием
const defaultDaysAhead = 30

type Handler struct {
	tenants TenantProvider
	monitor VaccinationMonitor
	logger  Logger
}

func NewHandler(tenants TenantProvider, monitor VaccinationMonitor, logger Logger) *Handler {
	return &Handler{
		tenants: tenants,
		monitor: monitor,
		logger:  logger,
	}
}

// HandleExpiring GET /api/v1/vaccinations/expiring?daysAhead=30
func (h *Handler) HandleExpiring(w http.ResponseWriter, r *http.Request) {
	const route = "GET /vaccinations/expiring"

	daysAhead, err := handlers.QueryInt(r, "daysAhead", defaultDaysAhead)
	if err != nil {
		h.logger.Warn("%s - Invalid daysAhead: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDaysAhead)
		return
	}

	tenant, ok := h.tenant(w, r, route)
	if !ok {
		return
	}

	items, err := h.monitor.ExpiringVaccinations(r.Context(), tenant, daysAhead)
	if err != nil {
		h.logger.Error("%s - Failed: tenant_id=%s, error=%v", route, tenant.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Listed: tenant_id=%s, days_ahead=%d, count=%d", route, tenant.ID, daysAhead, len(items))
	handlers.RespondJSON(w, http.StatusOK, newVaccinationsResponse(&daysAhead, items))
}

// HandleExpired GET /api/v1/vaccinations/expired
func (h *Handler) HandleExpired(w http.ResponseWriter, r *http.Request) {
	const route = "GET /vaccinations/expired"

	tenant, ok := h.tenant(w, r, route)
	if !ok {
		return
	}

	items, err := h.monitor.ExpiredVaccinations(r.Context(), tenant)
	if err != nil {
		h.logger.Error("%s - Failed: tenant_id=%s, error=%v", route, tenant.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Listed: tenant_id=%s, count=%d", route, tenant.ID, len(items))
	handlers.RespondJSON(w, http.StatusOK, newVaccinationsResponse(nil, items))
}

func (h *Handler) tenant(w http.ResponseWriter, r *http.Request, route string) (*domain.Tenant, bool) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing tenant ID", route)
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return nil, false
	}

	tenant, err := h.tenants.Get(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, tenants.ErrTenantNotFound) || errors.Is(err, tenants.ErrTenantInactive) {
			h.logger.Warn("%s - Tenant not found: tenant_id=%s", route, tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)
			return nil, false
		}
		h.logger.Error("%s - Failed to get tenant: tenant_id=%s, error=%v", route, tenantID, err)
		handlers.RespondInternalError(w)
		return nil, false
	}
	return tenant, true
}
