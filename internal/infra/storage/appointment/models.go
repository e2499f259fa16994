package appointment

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// columns порядок колонок для SELECT
var columns = []string{
	"id",
	"tenant_id",
	"owner_id",
	"pet_ids",
	"service_id",
	"staff_id",
	"resource_id",
	"scheduled_start",
	"scheduled_end",
	"status",
	"is_no_show",
	"arrived_at",
	"no_show_marked_at",
	"no_show_fee_charged",
	"deposit_cents",
	"cancelled_at",
	"cancellation_reason",
	"cancelled_by_customer",
	"notes",
	"created_at",
	"updated_at",
}

// row строка таблицы appointments
type row struct {
	ID                  uuid.UUID      `db:"id"`
	TenantID            uuid.UUID      `db:"tenant_id"`
	OwnerID             uuid.UUID      `db:"owner_id"`
	PetIDs              pq.StringArray `db:"pet_ids"`
	ServiceID           uuid.UUID      `db:"service_id"`
	StaffID             uuid.NullUUID  `db:"staff_id"`
	ResourceID          uuid.NullUUID  `db:"resource_id"`
	ScheduledStart      sql.NullTime   `db:"scheduled_start"`
	ScheduledEnd        sql.NullTime   `db:"scheduled_end"`
	Status              string         `db:"status"`
	IsNoShow            bool           `db:"is_no_show"`
	ArrivedAt           sql.NullTime   `db:"arrived_at"`
	NoShowMarkedAt      sql.NullTime   `db:"no_show_marked_at"`
	NoShowFeeCharged    int64          `db:"no_show_fee_charged"`
	DepositCents        int64          `db:"deposit_cents"`
	CancelledAt         sql.NullTime   `db:"cancelled_at"`
	CancellationReason  sql.NullString `db:"cancellation_reason"`
	CancelledByCustomer bool           `db:"cancelled_by_customer"`
	Notes               sql.NullString `db:"notes"`
	CreatedAt           sql.NullTime   `db:"created_at"`
	UpdatedAt           sql.NullTime   `db:"updated_at"`
}

// toDomain конвертирует строку БД в доменную модель
func (r *row) toDomain() (*domain.Appointment, error) {
	status, err := domain.ParseAppointmentStatus(r.Status)
	if err != nil {
		return nil, err
	}

	petIDs := make([]uuid.UUID, 0, len(r.PetIDs))
	for _, raw := range r.PetIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid pet id %q: %v", raw, err)
		}
		petIDs = append(petIDs, id)
	}

	a := &domain.Appointment{
		ID:                  r.ID,
		TenantID:            r.TenantID,
		OwnerID:             r.OwnerID,
		PetIDs:              petIDs,
		ServiceID:           r.ServiceID,
		StaffID:             nullUUID(r.StaffID),
		ResourceID:          nullUUID(r.ResourceID),
		ScheduledStart:      r.ScheduledStart.Time,
		ScheduledEnd:        r.ScheduledEnd.Time,
		Status:              status,
		IsNoShow:            r.IsNoShow,
		ArrivedAt:           nullTime(r.ArrivedAt),
		NoShowMarkedAt:      nullTime(r.NoShowMarkedAt),
		NoShowFeeCharged:    r.NoShowFeeCharged,
		DepositCents:        r.DepositCents,
		CancelledAt:         nullTime(r.CancelledAt),
		CancelledByCustomer: r.CancelledByCustomer,
		CreatedAt:           r.CreatedAt.Time,
		UpdatedAt:           r.UpdatedAt.Time,
	}
	if r.CancellationReason.Valid {
		a.CancellationReason = &r.CancellationReason.String
	}
	if r.Notes.Valid {
		a.Notes = &r.Notes.String
	}
	return a, nil
}

func nullUUID(v uuid.NullUUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	id := v.UUID
	return &id
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
