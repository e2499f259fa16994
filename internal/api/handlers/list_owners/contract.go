package list_owners

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/noshow"
)

type NoShowService interface {
	HighRiskCustomers(ctx context.Context, tenantID uuid.UUID, minNoShows int) ([]noshow.HighRiskCustomer, error)
}

type ReputationService interface {
	ListByCategory(ctx context.Context, tenantID uuid.UUID, category domain.ReputationCategory) ([]*domain.Owner, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
