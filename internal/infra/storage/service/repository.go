package service

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
)

var columns = []string{
	"id",
	"tenant_id",
	"name",
	"duration_minutes",
	"setup_buffer_minutes",
	"cleanup_buffer_minutes",
	"price_cents",
	"max_pets_per_session",
	"requires_vaccination",
	"required_vaccinations",
	"requires_table",
	"requires_van",
	"requires_room",
	"deposit_required",
	"deposit_amount_cents",
	"deposit_percentage",
	"is_active",
	"is_bookable_online",
	"created_at",
	"updated_at",
}

type row struct {
	ID                   uuid.UUID      `db:"id"`
	TenantID             uuid.UUID      `db:"tenant_id"`
	Name                 string         `db:"name"`
	DurationMinutes      int            `db:"duration_minutes"`
	SetupBufferMinutes   int            `db:"setup_buffer_minutes"`
	CleanupBufferMinutes int            `db:"cleanup_buffer_minutes"`
	PriceCents           int64          `db:"price_cents"`
	MaxPetsPerSession    int            `db:"max_pets_per_session"`
	RequiresVaccination  bool           `db:"requires_vaccination"`
	RequiredVaccinations pq.StringArray `db:"required_vaccinations"`
	RequiresTable        bool           `db:"requires_table"`
	RequiresVan          bool           `db:"requires_van"`
	RequiresRoom         bool           `db:"requires_room"`
	DepositRequired      bool           `db:"deposit_required"`
	DepositAmountCents   sql.NullInt64  `db:"deposit_amount_cents"`
	DepositPercentage    sql.NullInt32  `db:"deposit_percentage"`
	IsActive             bool           `db:"is_active"`
	IsBookableOnline     bool           `db:"is_bookable_online"`
	CreatedAt            sql.NullTime   `db:"created_at"`
	UpdatedAt            sql.NullTime   `db:"updated_at"`
}

func (r *row) toDomain() *domain.Service {
	s := &domain.Service{
		ID:                   r.ID,
		TenantID:             r.TenantID,
		Name:                 r.Name,
		DurationMinutes:      r.DurationMinutes,
		SetupBufferMinutes:   r.SetupBufferMinutes,
		CleanupBufferMinutes: r.CleanupBufferMinutes,
		PriceCents:           r.PriceCents,
		MaxPetsPerSession:    r.MaxPetsPerSession,
		RequiresVaccination:  r.RequiresVaccination,
		RequiredVaccinations: []string(r.RequiredVaccinations),
		RequiresTable:        r.RequiresTable,
		RequiresVan:          r.RequiresVan,
		RequiresRoom:         r.RequiresRoom,
		DepositRequired:      r.DepositRequired,
		IsActive:             r.IsActive,
		IsBookableOnline:     r.IsBookableOnline,
		CreatedAt:            r.CreatedAt.Time,
		UpdatedAt:            r.UpdatedAt.Time,
	}
	if r.DepositAmountCents.Valid {
		v := r.DepositAmountCents.Int64
		s.DepositAmountCents = &v
	}
	if r.DepositPercentage.Valid {
		v := int(r.DepositPercentage.Int32)
		s.DepositPercentage = &v
	}
	return s
}

// Repository репозиторий услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		Where("deleted_at IS NULL").
		ToSql()
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
		return nil, ErrServiceNotFound
	}

	return raw[0].toDomain(), nil
}
