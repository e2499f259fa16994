package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/slots"
	"github.com/m04kA/SMC-PetCareService/internal/service/tenants"
)

const (
	msgMissingTenantID     = "отсутствует ID тенанта"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgInvalidStaffID      = "некорректный ID сотрудника"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTenantNotFound      = "тенант не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceNotAvailable = "услуга недоступна для записи"
	msgStaffNotFound       = "сотрудник не найден"
	msgNoSlotFound         = "свободных слотов не найдено"
)

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/slots
// Query params: date (required, YYYY-MM-DD), staffId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	const route = "GET /services/{id}/slots"

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing tenant ID", route)
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	serviceID, err := handlers.PathUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("%s - Invalid service ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	staffID, err := handlers.QueryUUID(r, "staffId")
	if err != nil {
		h.logger.Warn("%s - Invalid staff ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.service.AvailableSlots(r.Context(), tenantID, date, serviceID, staffID)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Slots retrieved successfully: tenant_id=%s, service_id=%s, slots_count=%d",
		route, tenantID, serviceID, len(result))
	handlers.RespondJSON(w, http.StatusOK, FromSlots(date, serviceID, staffID, result))
}

// HandleNext GET /api/v1/services/{serviceId}/next-slot
// Query params: startDate (required, YYYY-MM-DD), staffId (optional)
func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	const route = "GET /services/{id}/next-slot"

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing tenant ID", route)
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	serviceID, err := handlers.PathUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("%s - Invalid service ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		h.logger.Warn("%s - Invalid start date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	staffID, err := handlers.QueryUUID(r, "staffId")
	if err != nil {
		h.logger.Warn("%s - Invalid staff ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	slot, err := h.service.FindNextAvailable(r.Context(), tenantID, serviceID, startDate, staffID)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Next slot found: tenant_id=%s, service_id=%s, start=%s",
		route, tenantID, serviceID, slot.Start)
	handlers.RespondJSON(w, http.StatusOK, FromSlot(*slot))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, tenants.ErrTenantNotFound), errors.Is(err, tenants.ErrTenantInactive):
		h.logger.Warn("%s - Tenant not found: %v", route, err)
		handlers.RespondNotFound(w, msgTenantNotFound)

	case errors.Is(err, slots.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: %v", route, err)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, slots.ErrServiceUnavailable):
		h.logger.Warn("%s - Service not available: %v", route, err)
		handlers.RespondBadRequest(w, msgServiceNotAvailable)

	case errors.Is(err, slots.ErrStaffNotFound):
		h.logger.Warn("%s - Staff not found: %v", route, err)
		handlers.RespondNotFound(w, msgStaffNotFound)

	case errors.Is(err, slots.ErrNoSlotFound):
		h.logger.Info("%s - No slot found", route)
		handlers.RespondNotFound(w, msgNoSlotFound)

	default:
		h.logger.Error("%s - Failed to get slots: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
