package list_owners

import (
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

const (
	msgMissingTenantID   = "отсутствует ID тенанта"
	msgInvalidMinNoShows = "некорректный параметр minNoShows"
	msgInvalidCategory   = "неизвестная категория рейтинга"
)

type Handler struct {
	noShows    NoShowService
	reputation ReputationService
	logger     Logger
}

func NewHandler(noShows NoShowService, reputation ReputationService, logger Logger) *Handler {
	return &Handler{
		noShows:    noShows,
		reputation: reputation,
		logger:     logger,
	}
}

// HandleHighRisk GET /api/v1/owners/high-risk?minNoShows=2
func (h *Handler) HandleHighRisk(w http.ResponseWriter, r *http.Request) {
	const route = "GET /owners/high-risk"

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing tenant ID", route)
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	minNoShows, err := handlers.QueryInt(r, "minNoShows", domain.DefaultHighRiskNoShows)
	if err != nil || minNoShows == 0 {
		h.logger.Warn("%s - Invalid minNoShows: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidMinNoShows)
		return
	}

	customers, err := h.noShows.HighRiskCustomers(r.Context(), tenantID, minNoShows)
	if err != nil {
		h.logger.Error("%s - Failed: tenant_id=%s, error=%v", route, tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Listed: tenant_id=%s, min_no_shows=%d, count=%d", route, tenantID, minNoShows, len(customers))
	handlers.RespondJSON(w, http.StatusOK, newHighRiskResponse(minNoShows, customers))
}

// HandleByReputation GET /api/v1/owners/by-reputation?category=Good
func (h *Handler) HandleByReputation(w http.ResponseWriter, r *http.Request) {
	const route = "GET /owners/by-reputation"

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing tenant ID", route)
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	category, err := domain.ParseReputationCategory(r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Warn("%s - Invalid category: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidCategory)
		return
	}

	owners, err := h.reputation.ListByCategory(r.Context(), tenantID, category)
	if err != nil {
		h.logger.Error("%s - Failed: tenant_id=%s, error=%v", route, tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Listed: tenant_id=%s, category=%s, count=%d", route, tenantID, category, len(owners))
	handlers.RespondJSON(w, http.StatusOK, newByReputationResponse(category, owners))
}
