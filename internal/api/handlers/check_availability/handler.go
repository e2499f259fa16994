package check_availability

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/availability"
	"github.com/m04kA/SMC-PetCareService/internal/service/tenants"
)

const (
	msgMissingTenantID     = "отсутствует ID тенанта"
	msgInvalidStaffID      = "некорректный ID сотрудника"
	msgInvalidResourceID   = "некорректный ID ресурса"
	msgInvalidStart        = "некорректное время начала, ожидается RFC3339"
	msgInvalidEnd          = "некорректное время окончания, ожидается RFC3339"
	msgInvalidExcludeID    = "некорректный excludeId"
	msgInvalidWindow       = "время окончания должно быть позже начала"
	msgTenantNotFound      = "тенант не найден"
	msgStaffNotFound       = "сотрудник не найден"
	msgResourceNotFound    = "ресурс не найден"
	routeStaffAvailable    = "GET /staff/{id}/availability"
	routeResourceAvailable = "GET /resources/{id}/availability"
)

type checkFunc func(ctx context.Context, tenantID, id uuid.UUID, window domain.Interval, excludeID *uuid.UUID) (bool, error)

type Handler struct {
	checker AvailabilityChecker
	logger  Logger
}

func NewHandler(checker AvailabilityChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// HandleStaff GET /api/v1/staff/{staffId}/availability?start&end&excludeId
func (h *Handler) HandleStaff(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, routeStaffAvailable, "staffId", msgInvalidStaffID, h.checker.CheckStaff)
}

// HandleResource GET /api/v1/resources/{resourceId}/availability?start&end&excludeId
func (h *Handler) HandleResource(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, routeResourceAvailable, "resourceId", msgInvalidResourceID, h.checker.CheckResource)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, route, idVar, msgInvalidID string, check checkFunc) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing tenant ID", route)
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	id, err := handlers.PathUUID(r, idVar)
	if err != nil {
		h.logger.Warn("%s - Invalid ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	start, err := handlers.QueryTime(r, "start")
	if err != nil {
		h.logger.Warn("%s - Invalid start: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}
	end, err := handlers.QueryTime(r, "end")
	if err != nil {
		h.logger.Warn("%s - Invalid end: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidEnd)
		return
	}
	if !end.After(start) {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	excludeID, err := handlers.QueryUUID(r, "excludeId")
	if err != nil {
		h.logger.Warn("%s - Invalid exclude ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidExcludeID)
		return
	}

	available, err := check(r.Context(), tenantID, id, domain.Interval{Start: start, End: end}, excludeID)
	if err != nil {
		switch {
		case errors.Is(err, tenants.ErrTenantNotFound), errors.Is(err, tenants.ErrTenantInactive):
			h.logger.Warn("%s - Tenant not found: tenant_id=%s", route, tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, availability.ErrStaffNotFound):
			h.logger.Warn("%s - Staff not found: id=%s", route, id)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, availability.ErrResourceNotFound):
			h.logger.Warn("%s - Resource not found: id=%s", route, id)
			handlers.RespondNotFound(w, msgResourceNotFound)

		default:
			h.logger.Error("%s - Failed to check availability: id=%s, error=%v", route, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Checked: id=%s, available=%t", route, id, available)
	handlers.RespondJSON(w, http.StatusOK, newResponse(id, start, end, available))
}
