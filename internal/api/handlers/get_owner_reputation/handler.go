package get_owner_reputation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/reputation"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidOwnerID  = "некорректный ID клиента"
	msgOwnerNotFound   = "клиент не найден"
)

type Handler struct {
	service ReputationService
	logger  Logger
}

func NewHandler(service ReputationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleSummary GET /api/v1/owners/{ownerId}/reputation
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const route = "GET /owners/{id}/reputation"

	tenantID, ownerID, ok := h.ids(w, r, route)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), tenantID, ownerID)
	if err != nil {
		h.respondError(w, route, ownerID, err)
		return
	}

	h.logger.Info("%s - Reputation retrieved: owner_id=%s, score=%d", route, ownerID, summary.Score)
	handlers.RespondJSON(w, http.StatusOK, FromSummary(summary))
}

// HandleCanBook GET /api/v1/owners/{ownerId}/can-book
func (h *Handler) HandleCanBook(w http.ResponseWriter, r *http.Request) {
	const route = "GET /owners/{id}/can-book"

	tenantID, ownerID, ok := h.ids(w, r, route)
	if !ok {
		return
	}

	canBook, reason, err := h.service.CanBook(r.Context(), tenantID, ownerID)
	if err != nil {
		h.respondError(w, route, ownerID, err)
		return
	}

	h.logger.Info("%s - Checked: owner_id=%s, can_book=%t", route, ownerID, canBook)
	handlers.RespondJSON(w, http.StatusOK, &CanBookResponse{OwnerID: ownerID, CanBook: canBook, Reason: reason})
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
	if errors.Is(err, reputation.ErrCustomerNotFound) {
		h.logger.Warn("%s - Owner not found: owner_id=%s", route, ownerID)
		handlers.RespondRejection(w, http.StatusNotFound, "customer_not_found", err, msgOwnerNotFound)
		return
	}
	h.logger.Error("%s - Failed: owner_id=%s, error=%v", route, ownerID, err)
	handlers.RespondInternalError(w)
}
