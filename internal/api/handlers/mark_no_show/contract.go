package mark_no_show

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/noshow"
)

type TenantProvider interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

type NoShowService interface {
	MarkAsNoShow(ctx context.Context, tenant *domain.Tenant, appointmentID uuid.UUID, applyFee bool) (*noshow.MarkResult, error)
	WaiveFee(ctx context.Context, tenantID, appointmentID uuid.UUID, reason string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
