package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/reputation"
	"github.com/m04kA/SMC-PetCareService/internal/service/validation"
	createAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
)

const (
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры записи"
	msgTenantNotFound     = "тенант не найден"
	msgRejected           = "запись невозможна"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID))
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrTenantNotFound):
			h.logger.Warn("POST /appointments - Tenant not found: tenant_id=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, reputation.ErrCustomerNotFound):
			h.logger.Warn("POST /appointments - Customer not found: owner_id=%s", req.OwnerID)
			handlers.RespondRejection(w, http.StatusNotFound, "customer_not_found", err, msgRejected)

		case errors.Is(err, reputation.ErrScoreTooLow):
			h.logger.Warn("POST /appointments - Reputation too low: owner_id=%s", req.OwnerID)
			handlers.RespondRejection(w, http.StatusForbidden, "reputation", err, msgRejected)

		default:
			if _, ok := domain.ReasonOf(err); ok {
				kind := validation.KindOf(err)
				h.logger.Warn("POST /appointments - Rejected: owner_id=%s, kind=%s, reason=%v", req.OwnerID, kind, err)
				handlers.RespondRejection(w, handlers.BookingRejectionStatus(err), kind, err, msgRejected)
				return
			}
			h.logger.Error("POST /appointments - Failed to create appointment: tenant_id=%s, owner_id=%s, error=%v",
				tenantID, req.OwnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, owner_id=%s",
		result.ID, result.OwnerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
