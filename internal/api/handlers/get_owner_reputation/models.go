package get_owner_reputation

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/service/reputation"
)

// ReputationResponse HTTP response model
type ReputationResponse struct {
	OwnerID                   uuid.UUID `json:"ownerId"`
	Score                     int       `json:"score"`
	Category                  string    `json:"category"`
	CanBook                   bool      `json:"canBook"`
	Reason                    string    `json:"reason,omitempty"`
	NoShowCount               int       `json:"noShowCount"`
	LateCancellationCount     int       `json:"lateCancellationCount"`
	CompletedAppointmentCount int       `json:"completedAppointmentCount"`
	TotalAppointments         int       `json:"totalAppointments"`
	CompletionRate            string    `json:"completionRate"` // проценты с двумя знаками
	LastReputationUpdate      *string   `json:"lastReputationUpdate,omitempty"`
}

// CanBookResponse HTTP response model
type CanBookResponse struct {
	OwnerID uuid.UUID `json:"ownerId"`
	CanBook bool      `json:"canBook"`
	Reason  string    `json:"reason,omitempty"`
}

// FromSummary конвертирует сводку сервиса в HTTP response
func FromSummary(s *reputation.Summary) *ReputationResponse {
	return &ReputationResponse{
		OwnerID:                   s.OwnerID,
		Score:                     s.Score,
		Category:                  string(s.Category),
		CanBook:                   s.CanBook,
		Reason:                    s.Reason,
		NoShowCount:               s.NoShowCount,
		LateCancellationCount:     s.LateCancellationCount,
		CompletedAppointmentCount: s.CompletedAppointmentCount,
		TotalAppointments:         s.TotalAppointments,
		CompletionRate:            s.CompletionRate.StringFixed(2),
		LastReputationUpdate:      handlers.FormatTime(s.LastReputationUpdate),
	}
}
