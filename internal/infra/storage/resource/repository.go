package resource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

var columns = []string{"id", "tenant_id", "name", "type", "capacity", "is_bookable", "schedule", "created_at", "updated_at"}

type row struct {
	ID         uuid.UUID    `db:"id"`
	TenantID   uuid.UUID    `db:"tenant_id"`
	Name       string       `db:"name"`
	Type       string       `db:"type"`
	Capacity   int          `db:"capacity"`
	IsBookable bool         `db:"is_bookable"`
	Schedule   []byte       `db:"schedule"`
	CreatedAt  sql.NullTime `db:"created_at"`
	UpdatedAt  sql.NullTime `db:"updated_at"`
}

// Repository репозиторий ресурсов (столы, фургоны, комнаты, клетки)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает ресурс по ID
// Внутри транзакции строка ресурса блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("resources").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		Where("deleted_at IS NULL")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var raw []row
	if err := sqlx.StructScan(rows, &raw); err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rows: %v", ErrScanRow, err)
	}
	if len(raw) == 0 {
		return nil, ErrResourceNotFound
	}

	schedule, err := domain.ParseWeeklySchedule(raw[0].Schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - resource %s: %v", ErrScanRow, id, err)
	}

	return &domain.Resource{
		ID:         raw[0].ID,
		TenantID:   raw[0].TenantID,
		Name:       raw[0].Name,
		Type:       domain.ResourceType(raw[0].Type),
		Capacity:   raw[0].Capacity,
		IsBookable: raw[0].IsBookable,
		Schedule:   schedule,
		CreatedAt:  raw[0].CreatedAt.Time,
		UpdatedAt:  raw[0].UpdatedAt.Time,
	}, nil
}
