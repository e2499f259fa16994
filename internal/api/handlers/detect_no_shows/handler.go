package detect_no_shows

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/service/tenants"
)

const (
	msgInvalidTenantID     = "некорректный ID тенанта"
	msgInvalidGraceMinutes = "graceMinutes должен быть неотрицательным целым числом"
	msgTenantNotFound      = "тенант не найден"
)

type Handler struct {
	tenants TenantProvider
	service NoShowService
	logger  Logger
}

func NewHandler(tenants TenantProvider, service NoShowService, logger Logger) *Handler {
	return &Handler{
		tenants: tenants,
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/no-shows/detect
// Query params: dryRun (optional) только перечисляет кандидатов, graceMinutes (optional, только для dryRun)
// Без dryRun каждый кандидат отмечается в своей транзакции
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	const route = "POST /tenants/{id}/no-shows/detect"

	tenantID, err := handlers.PathUUID(r, "tenantId")
	if err != nil {
		h.logger.Warn("%s - Invalid tenant ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	grace := -1
	if raw := r.URL.Query().Get("graceMinutes"); raw != "" {
		grace, err = strconv.Atoi(raw)
		if err != nil || grace < 0 {
			h.logger.Warn("%s - Invalid grace minutes: %q", route, raw)
			handlers.RespondBadRequest(w, msgInvalidGraceMinutes)
			return
		}
	}
	dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dryRun"))

	tenant, err := h.tenants.Get(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, tenants.ErrTenantNotFound) || errors.Is(err, tenants.ErrTenantInactive) {
			h.logger.Warn("%s - Tenant not found: tenant_id=%s", route, tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)
			return
		}
		h.logger.Error("%s - Failed to get tenant: tenant_id=%s, error=%v", route, tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	if dryRun {
		candidates, err := h.service.Detect(r.Context(), tenant.ID, grace)
		if err != nil {
			h.logger.Error("%s - Failed to detect no-shows: tenant_id=%s, error=%v", route, tenantID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Info("%s - Dry run: tenant_id=%s, detected=%d", route, tenantID, len(candidates))
		handlers.RespondJSON(w, http.StatusOK, FromCandidates(tenant.ID, candidates))
		return
	}

	report, err := h.service.ProcessTenant(r.Context(), tenant)
	if err != nil {
		h.logger.Error("%s - Failed to process no-shows: tenant_id=%s, error=%v", route, tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Processed: tenant_id=%s, detected=%d, applied=%d, errors=%d",
		route, tenantID, report.Detected, report.Applied, report.Errors)
	handlers.RespondJSON(w, http.StatusOK, FromReport(tenant.ID, report))
}
