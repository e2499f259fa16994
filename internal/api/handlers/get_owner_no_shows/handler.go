package get_owner_no_shows

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/noshow"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidOwnerID  = "некорректный ID клиента"
	msgOwnerNotFound   = "клиент не найден"
)

type Handler struct {
	service NoShowService
	logger  Logger
}

func NewHandler(service NoShowService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandlePenalty GET /api/v1/owners/{ownerId}/no-show-penalty
// Размер штрафа, который будет начислен за следующую неявку
func (h *Handler) HandlePenalty(w http.ResponseWriter, r *http.Request) {
	const route = "GET /owners/{id}/no-show-penalty"

	tenantID, ownerID, ok := h.ids(w, r, route)
	if !ok {
		return
	}

	fee, err := h.service.CalculatePenalty(r.Context(), tenantID, ownerID)
	if err != nil {
		h.respondError(w, route, ownerID, err)
		return
	}

	h.logger.Info("%s - Penalty calculated: owner_id=%s, fee_cents=%d", route, ownerID, fee)
	handlers.RespondJSON(w, http.StatusOK, newPenaltyResponse(ownerID, fee))
}

// HandleHistory GET /api/v1/owners/{ownerId}/no-show-history
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	const route = "GET /owners/{id}/no-show-history"

	tenantID, ownerID, ok := h.ids(w, r, route)
	if !ok {
		return
	}

	history, err := h.service.History(r.Context(), tenantID, ownerID)
	if err != nil {
		h.respondError(w, route, ownerID, err)
		return
	}

	h.logger.Info("%s - History retrieved: owner_id=%s, total=%d", route, ownerID, history.TotalNoShows)
	handlers.RespondJSON(w, http.StatusOK, FromHistory(history))
}

func (h *Handler) ids(w http.ResponseWriter, r *http.Request, route string) (uuid.UUID, uuid.UUID, bool) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing tenant ID", route)
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return uuid.Nil, uuid.Nil, false
	}

	ownerID, err := handlers.PathUUID(r, "ownerId")
	if err != nil {
		h.logger.Warn("%s - Invalid owner ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, ownerID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, ownerID uuid.UUID, err error) {
	if errors.Is(err, noshow.ErrCustomerNotFound) {
		h.logger.Warn("%s - Owner not found: owner_id=%s", route, ownerID)
		handlers.RespondRejection(w, http.StatusNotFound, "customer_not_found", err, msgOwnerNotFound)
		return
	}
	h.logger.Error("%s - Failed: owner_id=%s, error=%v", route, ownerID, err)
	handlers.RespondInternalError(w)
}
