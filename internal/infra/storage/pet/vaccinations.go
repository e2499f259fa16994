package pet

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

// ListVaccinations возвращает записи о вакцинациях указанных питомцев
// Если types не пуст, выборка ограничивается этими типами вакцин
func (r *Repository) ListVaccinations(ctx context.Context, tenantID uuid.UUID, petIDs []uuid.UUID, types []string) ([]*domain.VaccinationRecord, error) {
	if len(petIDs) == 0 {
		return []*domain.VaccinationRecord{}, nil
	}

	builder := psqlbuilder.Select(recordColumns...).
		From("vaccination_records").
		Where(squirrel.Eq{"tenant_id": tenantID, "pet_id": petIDs}).
		Where("deleted_at IS NULL").
		OrderBy("pet_id ASC", "vaccination_type ASC", "expiry_date DESC NULLS LAST")

	if len(types) > 0 {
		builder = builder.Where(squirrel.Eq{"vaccination_type": types})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListVaccinations - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryRecords(ctx, "ListVaccinations", query, args)
}

// ListVaccinationsByTenant возвращает все записи о вакцинациях тенанта
func (r *Repository) ListVaccinationsByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.VaccinationRecord, error) {
	query, args, err := psqlbuilder.Select(recordColumns...).
		From("vaccination_records").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where("deleted_at IS NULL").
		OrderBy("pet_id ASC", "vaccination_type ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListVaccinationsByTenant - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryRecords(ctx, "ListVaccinationsByTenant", query, args)
}

// ListVaccinationsExpiring возвращает записи тенанта со сроком действия в интервале [from, to]
func (r *Repository) ListVaccinationsExpiring(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*domain.VaccinationRecord, error) {
	query, args, err := psqlbuilder.Select(recordColumns...).
		From("vaccination_records").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.GtOrEq{"expiry_date": from}).
		Where(squirrel.LtOrEq{"expiry_date": to}).
		Where("deleted_at IS NULL").
		OrderBy("expiry_date ASC", "pet_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListVaccinationsExpiring - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryRecords(ctx, "ListVaccinationsExpiring", query, args)
}

// ListExpiredVaccinations возвращает записи тенанта, срок действия которых истек до before
func (r *Repository) ListExpiredVaccinations(ctx context.Context, tenantID uuid.UUID, before time.Time) ([]*domain.VaccinationRecord, error) {
	query, args, err := psqlbuilder.Select(recordColumns...).
		From("vaccination_records").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Lt{"expiry_date": before}).
		Where("deleted_at IS NULL").
		OrderBy("expiry_date ASC", "pet_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredVaccinations - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryRecords(ctx, "ListExpiredVaccinations", query, args)
}

// MarkAlertSent увеличивает счетчик напоминаний по записи и запоминает время отправки
func (r *Repository) MarkAlertSent(ctx context.Context, tenantID, recordID uuid.UUID, at time.Time) error {
	query, args, err := psqlbuilder.Update("vaccination_records").
		Set("alert_count", squirrel.Expr("alert_count + 1")).
		Set("last_alert_sent_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": recordID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkAlertSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "MarkAlertSent", query, args, ErrRecordNotFound)
}

// UpdateRecordStatus сохраняет вычисленный статус записи о вакцинации
func (r *Repository) UpdateRecordStatus(ctx context.Context, tenantID, recordID uuid.UUID, status domain.VaccinationStatus) error {
	query, args, err := psqlbuilder.Update("vaccination_records").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": recordID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateRecordStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "UpdateRecordStatus", query, args, ErrRecordNotFound)
}

func (r *Repository) queryRecords(ctx context.Context, op, query string, args []interface{}) ([]*domain.VaccinationRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var raw []recordRow
	if err := sqlx.StructScan(rows, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s - scan rows: %v", ErrScanRow, op, err)
	}

	items := make([]*domain.VaccinationRecord, 0, len(raw))
	for i := range raw {
		items = append(items, raw[i].toDomain())
	}
	return items, nil
}
