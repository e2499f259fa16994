package update_appointment_status

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments"
)

const (
	msgMissingTenantID      = "отсутствует ID тенанта"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgInvalidTransition    = "недопустимая смена статуса"
)

type transitionFunc func(ctx context.Context, tenantID, id uuid.UUID) (*appointments.Result, error)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleConfirm PATCH /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PATCH /appointments/{id}/confirm", h.service.Confirm)
}

// HandleCheckIn PATCH /api/v1/appointments/{appointmentId}/check-in
func (h *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PATCH /appointments/{id}/check-in", h.service.CheckIn)
}

// HandleComplete PATCH /api/v1/appointments/{appointmentId}/complete
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PATCH /appointments/{id}/complete", h.service.Complete)
}

// HandleCancel PATCH /api/v1/appointments/{appointmentId}/cancel
// Тело необязательно, без него отмена считается отменой со стороны бизнеса
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /appointments/{id}/cancel"

	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.handle(w, r, route, func(ctx context.Context, tenantID, id uuid.UUID) (*appointments.Result, error) {
		return h.service.Cancel(ctx, tenantID, id, req.ToServiceRequest())
	})
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, route string, transition transitionFunc) {
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

	result, err := transition(r.Context(), tenantID, appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("%s - Appointment not found: appointment_id=%s", route, appointmentID)
			handlers.RespondRejection(w, http.StatusNotFound, "appointment_not_found", err, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: appointment_id=%s, reason=%v", route, appointmentID, err)
			handlers.RespondRejection(w, http.StatusConflict, "invalid_transition", err, msgInvalidTransition)

		default:
			h.logger.Error("%s - Failed to update appointment: appointment_id=%s, error=%v", route, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Appointment updated: appointment_id=%s, status=%s", route, appointmentID, result.Appointment.Status)
	handlers.RespondJSON(w, http.StatusOK, FromResult(result))
}
