package staff

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

var columns = []string{"id", "tenant_id", "name", "is_active", "is_available", "schedule", "created_at", "updated_at"}

type row struct {
	ID          uuid.UUID    `db:"id"`
	TenantID    uuid.UUID    `db:"tenant_id"`
	Name        string       `db:"name"`
	IsActive    bool         `db:"is_active"`
	IsAvailable bool         `db:"is_available"`
	Schedule    []byte       `db:"schedule"`
	CreatedAt   sql.NullTime `db:"created_at"`
	UpdatedAt   sql.NullTime `db:"updated_at"`
}

func (r *row) toDomain() (*domain.Staff, error) {
	schedule, err := domain.ParseWeeklySchedule(r.Schedule)
	if err != nil {
		return nil, err
	}
	return &domain.Staff{
		ID:          r.ID,
		TenantID:    r.TenantID,
		Name:        r.Name,
		IsActive:    r.IsActive,
		IsAvailable: r.IsAvailable,
		Schedule:    schedule,
		CreatedAt:   r.CreatedAt.Time,
		UpdatedAt:   r.UpdatedAt.Time,
	}, nil
}

// Repository репозиторий сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сотрудника по ID
// Внутри транзакции строка сотрудника блокируется (FOR UPDATE): так сериализуются
// все бронирования одного сотрудника, даже когда пересекающихся записей еще нет
func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("staff").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		Where("deleted_at IS NULL")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	items, err := r.query(ctx, executor, "GetByID", query, args)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrStaffNotFound
	}
	return items[0], nil
}

// ListBookable возвращает активных и доступных сотрудников тенанта, упорядоченных по ID
func (r *Repository) ListBookable(ctx context.Context, tenantID uuid.UUID) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("staff").
		Where(squirrel.Eq{"tenant_id": tenantID, "is_active": true, "is_available": true}).
		Where("deleted_at IS NULL").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookable - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListBookable", query, args)
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Staff, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var raw []row
	if err := sqlx.StructScan(rows, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s - scan rows: %v", ErrScanRow, op, err)
	}

	items := make([]*domain.Staff, 0, len(raw))
	for i := range raw {
		s, err := raw[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %s - staff %s: %v", ErrScanRow, op, raw[i].ID, err)
		}
		items = append(items, s)
	}
	return items, nil
}
