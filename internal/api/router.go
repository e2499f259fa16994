package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/check_availability"
	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/create_appointment"
	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/detect_no_shows"
	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_available_slots"
	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_owner_no_shows"
	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_owner_reputation"
	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_vaccination_alerts"
	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_owners"
	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/mark_no_show"
	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/reschedule_appointment"
	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/validate_booking"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
)

// Handlers набор HTTP обработчиков
type Handlers struct {
	Availability      *check_availability.Handler
	Slots             *get_available_slots.Handler
	ValidateBooking   *validate_booking.Handler
	CreateAppointment *create_appointment.Handler
	Reschedule        *reschedule_appointment.Handler
	Status            *update_appointment_status.Handler
	NoShow            *mark_no_show.Handler
	DetectNoShows     *detect_no_shows.Handler
	OwnerNoShows      *get_owner_no_shows.Handler
	OwnerReputation   *get_owner_reputation.Handler
	Owners            *list_owners.Handler
	Vaccinations      *get_vaccination_alerts.Handler
}

// RegisterRoutes регистрирует маршруты /api/v1
func RegisterRoutes(r *mux.Router, h Handlers) {
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// OPERATOR ROUTES (тенант в пути)
	// ============================================================

	// Обнаружение и отметка неявок по тенанту
	api.HandleFunc("/tenants/{tenantId}/no-shows/detect", h.DetectNoShows.Handle).Methods(http.MethodPost)

	// ============================================================
	// TENANT ROUTES (требуют X-Tenant-ID header)
	// ============================================================

	tenant := api.PathPrefix("").Subrouter()
	tenant.Use(middleware.Tenant)

	// --- Доступность и слоты ---
	tenant.HandleFunc("/staff/{staffId}/availability", h.Availability.HandleStaff).Methods(http.MethodGet)
	tenant.HandleFunc("/resources/{resourceId}/availability", h.Availability.HandleResource).Methods(http.MethodGet)
	tenant.HandleFunc("/services/{serviceId}/slots", h.Slots.Handle).Methods(http.MethodGet)
	tenant.HandleFunc("/services/{serviceId}/next-slot", h.Slots.HandleNext).Methods(http.MethodGet)

	// --- Записи ---
	tenant.HandleFunc("/appointments/validate", h.ValidateBooking.Handle).Methods(http.MethodPost)
	tenant.HandleFunc("/appointments", h.CreateAppointment.Handle).Methods(http.MethodPost)
	tenant.HandleFunc("/appointments/{appointmentId}/reschedule", h.Reschedule.Handle).Methods(http.MethodPatch)
	tenant.HandleFunc("/appointments/{appointmentId}/confirm", h.Status.HandleConfirm).Methods(http.MethodPatch)
	tenant.HandleFunc("/appointments/{appointmentId}/check-in", h.Status.HandleCheckIn).Methods(http.MethodPatch)
	tenant.HandleFunc("/appointments/{appointmentId}/complete", h.Status.HandleComplete).Methods(http.MethodPatch)
	tenant.HandleFunc("/appointments/{appointmentId}/cancel", h.Status.HandleCancel).Methods(http.MethodPatch)

	// --- Неявки ---
	tenant.HandleFunc("/appointments/{appointmentId}/no-show", h.NoShow.HandleMark).Methods(http.MethodPost)
	tenant.HandleFunc("/appointments/{appointmentId}/no-show/waive", h.NoShow.HandleWaive).Methods(http.MethodPost)

	// --- Клиенты ---
	tenant.HandleFunc("/owners/high-risk", h.Owners.HandleHighRisk).Methods(http.MethodGet)
	tenant.HandleFunc("/owners/by-reputation", h.Owners.HandleByReputation).Methods(http.MethodGet)
	tenant.HandleFunc("/owners/{ownerId}/no-show-penalty", h.OwnerNoShows.HandlePenalty).Methods(http.MethodGet)
	tenant.HandleFunc("/owners/{ownerId}/no-show-history", h.OwnerNoShows.HandleHistory).Methods(http.MethodGet)
	tenant.HandleFunc("/owners/{ownerId}/reputation", h.OwnerReputation.HandleSummary).Methods(http.MethodGet)
	tenant.HandleFunc("/owners/{ownerId}/can-book", h.OwnerReputation.HandleCanBook).Methods(http.MethodGet)

	// --- Прививки ---
	tenant.HandleFunc("/vaccinations/expiring", h.Vaccinations.HandleExpiring).Methods(http.MethodGet)
	tenant.HandleFunc("/vaccinations/expired", h.Vaccinations.HandleExpired).Methods(http.MethodGet)
}
