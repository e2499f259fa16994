package get_owner_reputation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/service/reputation"
)

type ReputationService interface {
	Summary(ctx context.Context, tenantID, ownerID uuid.UUID) (*reputation.Summary, error)
	CanBook(ctx context.Context, tenantID, ownerID uuid.UUID) (bool, string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
