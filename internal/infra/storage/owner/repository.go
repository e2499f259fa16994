package owner

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"tenant_id",
	"first_name",
	"last_name",
	"phone",
	"sms_opt_in",
	"reputation_score",
	"no_show_count",
	"late_cancellation_count",
	"completed_appointment_count",
	"recovery_points",
	"last_reputation_update",
	"created_at",
	"updated_at",
}

type row struct {
	ID                        uuid.UUID      `db:"id"`
	TenantID                  uuid.UUID      `db:"tenant_id"`
	FirstName                 string         `db:"first_name"`
	LastName                  string         `db:"last_name"`
	Phone                     sql.NullString `db:"phone"`
	SMSOptIn                  bool           `db:"sms_opt_in"`
	ReputationScore           int            `db:"reputation_score"`
	NoShowCount               int            `db:"no_show_count"`
	LateCancellationCount     int            `db:"late_cancellation_count"`
	CompletedAppointmentCount int            `db:"completed_appointment_count"`
	RecoveryPoints            int            `db:"recovery_points"`
	LastReputationUpdate      sql.NullTime   `db:"last_reputation_update"`
	CreatedAt                 sql.NullTime   `db:"created_at"`
	UpdatedAt                 sql.NullTime   `db:"updated_at"`
}

func (r *row) toDomain() *domain.Owner {
	o := &domain.Owner{
		ID:                        r.ID,
		TenantID:                  r.TenantID,
		FirstName:                 r.FirstName,
		LastName:                  r.LastName,
		SMSOptIn:                  r.SMSOptIn,
		ReputationScore:           r.ReputationScore,
		NoShowCount:               r.NoShowCount,
		LateCancellationCount:     r.LateCancellationCount,
		CompletedAppointmentCount: r.CompletedAppointmentCount,
		RecoveryPoints:            r.RecoveryPoints,
		CreatedAt:                 r.CreatedAt.Time,
		UpdatedAt:                 r.UpdatedAt.Time,
	}
	if r.Phone.Valid {
		phone := r.Phone.String
		o.Phone = &phone
	}
	if r.LastReputationUpdate.Valid {
		ts := r.LastReputationUpdate.Time
		o.LastReputationUpdate = &ts
	}
	return o
}

// Repository репозиторий клиентов (владельцев питомцев)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID
// Внутри транзакции строка блокируется: счетчики меняются по схеме read-modify-write
func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Owner, error) {
	builder := psqlbuilder.Select(columns...).
		From("owners").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		Where("deleted_at IS NULL")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	items, err := r.query(ctx, "GetByID", query, args)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrOwnerNotFound
	}
	return items[0], nil
}

// ListRecoveryCandidates возвращает клиентов с неполным рейтингом,
// чей рейтинг не пересчитывался с момента updatedBefore (или не пересчитывался никогда)
func (r *Repository) ListRecoveryCandidates(ctx context.Context, tenantID uuid.UUID, updatedBefore time.Time) ([]*domain.Owner, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From("owners").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Lt{"reputation_score": domain.ReputationMax}).
		Where(squirrel.Or{
			squirrel.Eq{"last_reputation_update": nil},
			squirrel.Lt{"last_reputation_update": updatedBefore},
		}).
		Where("deleted_at IS NULL").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecoveryCandidates - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListRecoveryCandidates", query, args)
}

// ListByMinNoShows возвращает клиентов, у которых не менее minNoShows неявок,
// в порядке убывания числа неявок
func (r *Repository) ListByMinNoShows(ctx context.Context, tenantID uuid.UUID, minNoShows int) ([]*domain.Owner, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From("owners").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.GtOrEq{"no_show_count": minNoShows}).
		Where("deleted_at IS NULL").
		OrderBy("no_show_count DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMinNoShows - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByMinNoShows", query, args)
}

// ListByScoreRange возвращает клиентов с закешированным рейтингом в диапазоне [lo, hi]
func (r *Repository) ListByScoreRange(ctx context.Context, tenantID uuid.UUID, lo, hi int) ([]*domain.Owner, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From("owners").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.GtOrEq{"reputation_score": lo}).
		Where(squirrel.LtOrEq{"reputation_score": hi}).
		Where("deleted_at IS NULL").
		OrderBy("reputation_score DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByScoreRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByScoreRange", query, args)
}

// UpdateReputation сохраняет счетчики и закешированный рейтинг клиента
func (r *Repository) UpdateReputation(ctx context.Context, o *domain.Owner) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("owners").
		Set("reputation_score", o.ReputationScore).
		Set("no_show_count", o.NoShowCount).
		Set("late_cancellation_count", o.LateCancellationCount).
		Set("completed_appointment_count", o.CompletedAppointmentCount).
		Set("recovery_points", o.RecoveryPoints).
		Set("last_reputation_update", o.LastReputationUpdate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": o.TenantID, "id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateReputation - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateReputation - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateReputation - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOwnerNotFound
	}
	return nil
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Owner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var raw []row
	if err := sqlx.StructScan(rows, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s - scan rows: %v", ErrScanRow, op, err)
	}

	items := make([]*domain.Owner, 0, len(raw))
	for i := range raw {
		items = append(items, raw[i].toDomain())
	}
	return items, nil
}
