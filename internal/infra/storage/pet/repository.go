package pet

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

// Repository репозиторий питомцев и их вакцинаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs возвращает питомцев тенанта по списку ID
// Отсутствующие питомцы просто не попадают в результат
func (r *Repository) GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*domain.Pet, error) {
	if len(ids) == 0 {
		return []*domain.Pet{}, nil
	}

	query, args, err := psqlbuilder.Select(petColumns...).
		From("pets").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": ids}).
		Where("deleted_at IS NULL").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryPets(ctx, "GetByIDs", query, args)
}

// ListByTenant возвращает всех питомцев тенанта (для batch-пересчета статусов)
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Pet, error) {
	query, args, err := psqlbuilder.Select(petColumns...).
		From("pets").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where("deleted_at IS NULL").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryPets(ctx, "ListByTenant", query, args)
}

// UpdateVaccinationStatus сохраняет общий статус вакцинации питомца
func (r *Repository) UpdateVaccinationStatus(ctx context.Context, tenantID, petID uuid.UUID, status domain.VaccinationStatus) error {
	query, args, err := psqlbuilder.Update("pets").
		Set("vaccination_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": petID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateVaccinationStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "UpdateVaccinationStatus", query, args, ErrPetNotFound)
}

func (r *Repository) queryPets(ctx context.Context, op, query string, args []interface{}) ([]*domain.Pet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var raw []petRow
	if err := sqlx.StructScan(rows, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s - scan rows: %v", ErrScanRow, op, err)
	}

	items := make([]*domain.Pet, 0, len(raw))
	for i := range raw {
		items = append(items, raw[i].toDomain())
	}
	return items, nil
}

func (r *Repository) execOne(ctx context.Context, op, query string, args []interface{}, notFound error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
