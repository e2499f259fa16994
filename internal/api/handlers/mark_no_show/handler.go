package mark_no_show

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/noshow"
	"github.com/m04kA/SMC-PetCareService/internal/service/tenants"
)

const (
	msgMissingTenantID      = "отсутствует ID тенанта"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingReason        = "причина списания штрафа обязательна"
	msgTenantNotFound       = "тенант не найден"
	msgRejected             = "операция невозможна"
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

// HandleMark POST /api/v1/appointments/{appointmentId}/no-show
func (h *Handler) HandleMark(w http.ResponseWriter, r *http.Request) {
	const route = "POST /appointments/{id}/no-show"

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing tenant ID", route)
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	appointmentID, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("%s - Invalid appointment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req MarkNoShowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

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

	result, err := h.service.MarkAsNoShow(r.Context(), tenant, appointmentID, req.applyFee())
	if err != nil {
		h.respondError(w, route, appointmentID.String(), err)
		return
	}

	h.logger.Info("%s - Marked as no-show: appointment_id=%s, fee_cents=%d, sms_sent=%t",
		route, appointmentID, result.FeeCents, result.SMSSent)
	handlers.RespondJSON(w, http.StatusOK, FromMarkResult(result))
}

// HandleWaive POST /api/v1/appointments/{appointmentId}/no-show/waive
func (h *Handler) HandleWaive(w http.ResponseWriter, r *http.Request) {
	const route = "POST /appointments/{id}/no-show/waive"

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing tenant ID", route)
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	appointmentID, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("%s - Invalid appointment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req WaiveFeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Reason == "" {
		handlers.RespondBadRequest(w, msgMissingReason)
		return
	}

	if err := h.service.WaiveFee(r.Context(), tenantID, appointmentID, req.Reason); err != nil {
		h.respondError(w, route, appointmentID.String(), err)
		return
	}

	h.logger.Info("%s - Fee waived: appointment_id=%s", route, appointmentID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route, appointmentID string, err error) {
	switch {
	case errors.Is(err, noshow.ErrAppointmentNotFound):
		h.logger.Warn("%s - Appointment not found: appointment_id=%s", route, appointmentID)
		handlers.RespondRejection(w, http.StatusNotFound, "appointment_not_found", err, msgRejected)

	case errors.Is(err, noshow.ErrCustomerNotFound):
		h.logger.Warn("%s - Customer not found: appointment_id=%s", route, appointmentID)
		handlers.RespondRejection(w, http.StatusNotFound, "customer_not_found", err, msgRejected)

	case errors.Is(err, noshow.ErrAlreadyMarked):
		h.logger.Warn("%s - Already marked: appointment_id=%s", route, appointmentID)
		handlers.RespondRejection(w, http.StatusConflict, "already_marked", err, msgRejected)

	case errors.Is(err, noshow.ErrNotNoShow):
		h.logger.Warn("%s - Not a no-show: appointment_id=%s", route, appointmentID)
		handlers.RespondRejection(w, http.StatusConflict, "not_no_show", err, msgRejected)

	case errors.Is(err, noshow.ErrFeeAlreadyWaived):
		h.logger.Warn("%s - Fee already waived: appointment_id=%s", route, appointmentID)
		handlers.RespondRejection(w, http.StatusConflict, "fee_already_waived", err, msgRejected)

	case errors.Is(err, noshow.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: appointment_id=%s, reason=%v", route, appointmentID, err)
		handlers.RespondRejection(w, http.StatusConflict, "invalid_transition", err, msgRejected)

	default:
		h.logger.Error("%s - Failed: appointment_id=%s, error=%v", route, appointmentID, err)
		handlers.RespondInternalError(w)
	}
}
