package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

// Repository репозиторий записей на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись на прием
// ID генерируется на стороне приложения, если не задан
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
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
			"deposit_cents",
			"notes",
		).
		Values(
			a.ID,
			a.TenantID,
			a.OwnerID,
			pq.Array(uuidStrings(a.PetIDs)),
			a.ServiceID,
			a.StaffID,
			a.ResourceID,
			a.ScheduledStart,
			a.ScheduledEnd,
			a.Status,
			a.DepositCents,
			a.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return a, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("appointments").
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
		return nil, ErrAppointmentNotFound
	}
	return items[0], nil
}

// ListOverlapping возвращает живые (pending, confirmed, in_progress) записи субъекта,
// пересекающиеся с окном [start, end)
//
// Внутри транзакции найденные строки блокируются FOR UPDATE: конкурирующая
// транзакция, проверяющая тот же субъект и окно, ждет коммита или отката
func (r *Repository) ListOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": filter.TenantID}).
		Where(squirrel.Eq{"status": domain.LiveStatusStrings()}).
		Where(squirrel.Lt{"scheduled_start": filter.Window.End}).
		Where(squirrel.Gt{"scheduled_end": filter.Window.Start}).
		Where("deleted_at IS NULL").
		OrderBy("scheduled_start ASC", "id ASC")

	if len(filter.StaffIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"staff_id": filter.StaffIDs})
	}
	if filter.ResourceID != nil {
		builder = builder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}
	if filter.ExcludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListOverlapping", query, args)
}

// ListNoShowCandidates возвращает pending/confirmed записи без отметки о прибытии,
// начало которых раньше cutoff и которые еще не отмечены как неявка
// Внутри транзакции уже заблокированные строки пропускаются (SKIP LOCKED)
func (r *Repository) ListNoShowCandidates(ctx context.Context, tenantID uuid.UUID, cutoff time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"status": []string{string(domain.AppointmentPending), string(domain.AppointmentConfirmed)}}).
		Where(squirrel.Lt{"scheduled_start": cutoff}).
		Where(squirrel.Eq{"arrived_at": nil}).
		Where(squirrel.Eq{"is_no_show": false}).
		Where("deleted_at IS NULL").
		OrderBy("scheduled_start ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListNoShowCandidates - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListNoShowCandidates", query, args)
}

// UpdateSchedule обновляет время, сотрудника и ресурс записи (перенос)
func (r *Repository) UpdateSchedule(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("scheduled_start", a.ScheduledStart).
		Set("scheduled_end", a.ScheduledEnd).
		Set("staff_id", a.StaffID).
		Set("resource_id", a.ResourceID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": a.TenantID, "id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateSchedule", query, args, ErrAppointmentNotFound)
}

// UpdateStatus сохраняет статус и связанные с ним поля (прибытие, отмена)
func (r *Repository) UpdateStatus(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", a.Status).
		Set("arrived_at", a.ArrivedAt).
		Set("cancelled_at", a.CancelledAt).
		Set("cancellation_reason", a.CancellationReason).
		Set("cancelled_by_customer", a.CancelledByCustomer).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": a.TenantID, "id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateStatus", query, args, ErrAppointmentNotFound)
}

// MarkNoShow отмечает запись как неявку
// Обновление условное (is_no_show = false), повторная отметка вернет ErrNotUpdated
func (r *Repository) MarkNoShow(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("is_no_show", true).
		Set("status", domain.AppointmentNoShow).
		Set("no_show_marked_at", a.NoShowMarkedAt).
		Set("no_show_fee_charged", a.NoShowFeeCharged).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": a.TenantID, "id": a.ID, "is_no_show": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkNoShow - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "MarkNoShow", query, args, ErrNotUpdated)
}

// SetNoShowFee обновляет сумму начисленного штрафа за неявку
func (r *Repository) SetNoShowFee(ctx context.Context, tenantID, id uuid.UUID, feeCents int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("no_show_fee_charged", feeCents).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetNoShowFee - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "SetNoShowFee", query, args, ErrAppointmentNotFound)
}

// OwnerStats возвращает общее число записей клиента, число неявок, число завершенных записей
// и время последней неявки
func (r *Repository) OwnerStats(ctx context.Context, tenantID, ownerID uuid.UUID) (*domain.OwnerAppointmentStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE is_no_show)",
		"COUNT(*) FILTER (WHERE status = 'completed')",
		"MAX(scheduled_start) FILTER (WHERE is_no_show)",
	).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": tenantID, "owner_id": ownerID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: OwnerStats - build select query: %v", ErrBuildQuery, err)
	}

	var (
		stats  domain.OwnerAppointmentStats
		lastNS sql.NullTime
	)
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&stats.Total, &stats.NoShows, &stats.Completed, &lastNS); err != nil {
		return nil, fmt.Errorf("%w: OwnerStats - scan: %v", ErrScanRow, err)
	}
	stats.LastNoShowAt = nullTime(lastNS)
	return &stats, nil
}

// ListNoShowsByOwner возвращает последние limit неявок клиента, начиная с самой поздней
func (r *Repository) ListNoShowsByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, limit int) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": tenantID, "owner_id": ownerID, "is_no_show": true}).
		Where("deleted_at IS NULL").
		OrderBy("scheduled_start DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListNoShowsByOwner - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListNoShowsByOwner", query, args)
}

// CountNoShowsScheduledSince считает неявки клиента с началом приема не раньше since
func (r *Repository) CountNoShowsScheduledSince(ctx context.Context, tenantID, ownerID uuid.UUID, since time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"tenant_id": tenantID, "owner_id": ownerID, "is_no_show": true}).
		Where(squirrel.GtOrEq{"scheduled_start": since}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountNoShowsScheduledSince - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountNoShowsScheduledSince - scan: %v", ErrScanRow, err)
	}
	return count, nil
}

// query выполняет SELECT и маппит строки через sqlx
func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Appointment, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var raw []row
	if err := sqlx.StructScan(rows, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s - scan rows: %v", ErrScanRow, op, err)
	}

	items := make([]*domain.Appointment, 0, len(raw))
	for i := range raw {
		a, err := raw[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %s - convert row: %v", ErrScanRow, op, err)
		}
		items = append(items, a)
	}
	return items, nil
}

// execOne выполняет UPDATE и проверяет, что затронута ровно одна строка
func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, notFound error) error {
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
