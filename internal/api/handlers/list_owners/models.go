package list_owners

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/noshow"
)

// HighRiskResponse HTTP response model
type HighRiskResponse struct {
	MinNoShows int                `json:"minNoShows"`
	Owners     []HighRiskCustomer `json:"owners"`
}

// HighRiskCustomer клиент с частыми неявками
type HighRiskCustomer struct {
	OwnerID         uuid.UUID `json:"ownerId"`
	Name            string    `json:"name"`
	Phone           *string   `json:"phone,omitempty"`
	NoShowCount     int       `json:"noShowCount"`
	NoShowRate      string    `json:"noShowRate"` // проценты с двумя знаками
	ReputationScore int       `json:"reputationScore"`
}

// ByReputationResponse HTTP response model
type ByReputationResponse struct {
	Category string       `json:"category"`
	MinScore int          `json:"minScore"`
	MaxScore int          `json:"maxScore"`
	Owners   []OwnerBrief `json:"owners"`
}

// OwnerBrief краткая карточка клиента
type OwnerBrief struct {
	OwnerID         uuid.UUID `json:"ownerId"`
	Name            string    `json:"name"`
	ReputationScore int       `json:"reputationScore"`
	NoShowCount     int       `json:"noShowCount"`
}

func newHighRiskResponse(minNoShows int, customers []noshow.HighRiskCustomer) *HighRiskResponse {
	resp := &HighRiskResponse{MinNoShows: minNoShows, Owners: make([]HighRiskCustomer, 0, len(customers))}
	for _, c := range customers {
		resp.Owners = append(resp.Owners, HighRiskCustomer{
			OwnerID:         c.Owner.ID,
			Name:            c.Owner.FullName(),
			Phone:           c.Owner.Phone,
			NoShowCount:     c.NoShowCount,
			NoShowRate:      c.NoShowRate.StringFixed(2),
			ReputationScore: c.Owner.ReputationScore,
		})
	}
	return resp
}

func newByReputationResponse(category domain.ReputationCategory, owners []*domain.Owner) *ByReputationResponse {
	lo, hi := category.ScoreRange()
	resp := &ByReputationResponse{
		Category: string(category),
		MinScore: lo,
		MaxScore: hi,
		Owners:   make([]OwnerBrief, 0, len(owners)),
	}
	for _, o := range owners {
		resp.Owners = append(resp.Owners, OwnerBrief{
			OwnerID:         o.ID,
			Name:            o.FullName(),
			ReputationScore: o.ReputationScore,
			NoShowCount:     o.NoShowCount,
		})
	}
	return resp
}
