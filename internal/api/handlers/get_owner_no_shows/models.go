package get_owner_no_shows

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/service/noshow"
)

// PenaltyResponse HTTP response model
type PenaltyResponse struct {
	OwnerID  uuid.UUID `json:"ownerId"`
	FeeCents int64     `json:"feeCents"`
	Fee      string    `json:"fee"` // в долларах, "35.00"
}

// HistoryResponse HTTP response model
type HistoryResponse struct {
	OwnerID         uuid.UUID              `json:"ownerId"`
	TotalNoShows    int                    `json:"totalNoShows"`
	TotalFeesCents  int64                  `json:"totalFeesCents"`
	UnpaidFeesCents int64                  `json:"unpaidFeesCents"`
	NoShowRate      string                 `json:"noShowRate"` // проценты с двумя знаками
	LastNoShowAt    *string                `json:"lastNoShowAt,omitempty"`
	RecentNoShows   []RecentNoShowResponse `json:"recentNoShows"`
}

// RecentNoShowResponse одна из последних неявок
type RecentNoShowResponse struct {
	AppointmentID  uuid.UUID `json:"appointmentId"`
	ScheduledStart string    `json:"scheduledStart"`
	ServiceID      uuid.UUID `json:"serviceId"`
	FeeCents       int64     `json:"feeCents"`
}

func newPenaltyResponse(ownerID uuid.UUID, feeCents int64) *PenaltyResponse {
	return &PenaltyResponse{
		OwnerID:  ownerID,
		FeeCents: feeCents,
		Fee:      decimal.New(feeCents, -2).StringFixed(2),
	}
}

// FromHistory конвертирует сводку сервиса в HTTP response
func FromHistory(h *noshow.History) *HistoryResponse {
	recent := make([]RecentNoShowResponse, 0, len(h.RecentNoShows))
	for _, n := range h.RecentNoShows {
		recent = append(recent, RecentNoShowResponse{
			AppointmentID:  n.AppointmentID,
			ScheduledStart: n.ScheduledStart.Format(time.RFC3339),
			ServiceID:      n.ServiceID,
			FeeCents:       n.FeeCents,
		})
	}

	return &HistoryResponse{
		OwnerID:         h.OwnerID,
		TotalNoShows:    h.TotalNoShows,
		TotalFeesCents:  h.TotalFeesCents,
		UnpaidFeesCents: h.UnpaidFeesCents,
		NoShowRate:      h.NoShowRate.StringFixed(2),
		LastNoShowAt:    handlers.FormatTime(h.LastNoShowAt),
		RecentNoShows:   recent,
	}
}
