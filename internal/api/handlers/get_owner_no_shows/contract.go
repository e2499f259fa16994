package get_owner_no_shows

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/service/noshow"
)

type NoShowService interface {
	CalculatePenalty(ctx context.Context, tenantID, ownerID uuid.UUID) (int64, error)
	History(ctx context.Context, tenantID, ownerID uuid.UUID) (*noshow.History, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
