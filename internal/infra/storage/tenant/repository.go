package tenant

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-PetCareService/pkg/types"
)

var columns = []string{
	"id",
	"name",
	"timezone",
	"business_start",
	"business_end",
	"slot_step_minutes",
	"closed_weekdays",
	"holidays",
	"is_active",
	"created_at",
	"updated_at",
}

type row struct {
	ID              uuid.UUID      `db:"id"`
	Name            string         `db:"name"`
	Timezone        sql.NullString `db:"timezone"`
	BusinessStart   sql.NullString `db:"business_start"`
	BusinessEnd     sql.NullString `db:"business_end"`
	SlotStepMinutes sql.NullInt32  `db:"slot_step_minutes"`
	ClosedWeekdays  pq.StringArray `db:"closed_weekdays"`
	Holidays        pq.StringArray `db:"holidays"`
	IsActive        bool           `db:"is_active"`
	CreatedAt       sql.NullTime   `db:"created_at"`
	UpdatedAt       sql.NullTime   `db:"updated_at"`
}

// toDomain конвертирует строку в доменную модель
// Незаполненные настройки календаря остаются пустыми, их заполняет ApplyDefaults
func (r *row) toDomain() (*domain.Tenant, error) {
	t := &domain.Tenant{
		ID:              r.ID,
		Name:            r.Name,
		Timezone:        r.Timezone.String,
		BusinessStart:   types.TimeString(r.BusinessStart.String),
		BusinessEnd:     types.TimeString(r.BusinessEnd.String),
		SlotStepMinutes: int(r.SlotStepMinutes.Int32),
		Holidays:        []string(r.Holidays),
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt.Time,
		UpdatedAt:       r.UpdatedAt.Time,
	}

	if len(r.ClosedWeekdays) > 0 {
		t.ClosedWeekdays = make([]domain.Weekday, 0, len(r.ClosedWeekdays))
		for _, raw := range r.ClosedWeekdays {
			w, err := domain.ParseWeekday(raw)
			if err != nil {
				return nil, fmt.Errorf("tenant %s: %w", r.ID, err)
			}
			t.ClosedWeekdays = append(t.ClosedWeekdays, w)
		}
	}

	return t, nil
}

// Repository репозиторий тенантов (салонов)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тенанта по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From("tenants").
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	items, err := r.query(ctx, "GetByID", query, args)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrTenantNotFound
	}
	return items[0], nil
}

// ListActive возвращает активных тенантов, используется batch-задачами
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Tenant, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From("tenants").
		Where(squirrel.Eq{"is_active": true}).
		Where("deleted_at IS NULL").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListActive", query, args)
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Tenant, error) {
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

	items := make([]*domain.Tenant, 0, len(raw))
	for i := range raw {
		t, err := raw[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %s - %v", ErrScanRow, op, err)
		}
		items = append(items, t)
	}
	return items, nil
}
