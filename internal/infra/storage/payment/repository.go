package payment

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

var columns = []string{
	"id",
	"tenant_id",
	"owner_id",
	"appointment_id",
	"payment_type",
	"status",
	"amount_cents",
	"description",
	"notes",
	"created_at",
	"updated_at",
}

type row struct {
	ID            uuid.UUID      `db:"id"`
	TenantID      uuid.UUID      `db:"tenant_id"`
	OwnerID       uuid.UUID      `db:"owner_id"`
	AppointmentID uuid.NullUUID  `db:"appointment_id"`
	Type          string         `db:"payment_type"`
	Status        string         `db:"status"`
	AmountCents   int64          `db:"amount_cents"`
	Description   sql.NullString `db:"description"`
	Notes         sql.NullString `db:"notes"`
	CreatedAt     sql.NullTime   `db:"created_at"`
	UpdatedAt     sql.NullTime   `db:"updated_at"`
}

func (r *row) toDomain() *domain.Payment {
	p := &domain.Payment{
		ID:          r.ID,
		TenantID:    r.TenantID,
		OwnerID:     r.OwnerID,
		Type:        domain.PaymentType(r.Type),
		Status:      domain.PaymentStatus(r.Status),
		AmountCents: r.AmountCents,
		Description: r.Description.String,
		CreatedAt:   r.CreatedAt.Time,
		UpdatedAt:   r.UpdatedAt.Time,
	}
	if r.AppointmentID.Valid {
		id := r.AppointmentID.UUID
		p.AppointmentID = &id
	}
	if r.Notes.Valid {
		notes := r.Notes.String
		p.Notes = &notes
	}
	return p
}

// Repository репозиторий платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платеж
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("payments").
		Columns("id", "tenant_id", "owner_id", "appointment_id", "payment_type", "status", "amount_cents", "description", "notes").
		Values(p.ID, p.TenantID, p.OwnerID, p.AppointmentID, p.Type, p.Status, p.AmountCents, p.Description, p.Notes).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}

// GetByAppointment возвращает последний платеж указанного типа по записи
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByAppointment(ctx context.Context, tenantID, appointmentID uuid.UUID, paymentType domain.PaymentType) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("payments").
		Where(squirrel.Eq{"tenant_id": tenantID, "appointment_id": appointmentID, "payment_type": paymentType}).
		OrderBy("created_at DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var raw []row
	if err := sqlx.StructScan(rows, &raw); err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - scan rows: %v", ErrScanRow, err)
	}
	if len(raw) == 0 {
		return nil, ErrPaymentNotFound
	}
	return raw[0].toDomain(), nil
}

// UpdateStatus меняет статус платежа и дописывает заметку
func (r *Repository) UpdateStatus(ctx context.Context, p *domain.Payment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", p.Status).
		Set("notes", p.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": p.TenantID, "id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// FeeTotals считает начисленные и неоплаченные штрафы за неявки клиента
// Отмененные и списанные (waived) штрафы не учитываются
func (r *Repository) FeeTotals(ctx context.Context, tenantID, ownerID uuid.UUID) (*domain.FeeTotals, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COALESCE(SUM(amount_cents), 0)",
		"COALESCE(SUM(amount_cents) FILTER (WHERE status IN ('pending', 'failed')), 0)",
	).
		From("payments").
		Where(squirrel.Eq{"tenant_id": tenantID, "owner_id": ownerID, "payment_type": domain.PaymentTypeNoShowFee}).
		Where(squirrel.NotEq{"status": []string{string(domain.PaymentCancelled), string(domain.PaymentWaived)}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FeeTotals - build select query: %v", ErrBuildQuery, err)
	}

	var totals domain.FeeTotals
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&totals.ChargedCents, &totals.UnpaidCents); err != nil {
		return nil, fmt.Errorf("%w: FeeTotals - scan: %v", ErrScanRow, err)
	}
	return &totals, nil
}
