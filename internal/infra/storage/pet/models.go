package pet

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var petColumns = []string{
	"id",
	"tenant_id",
	"owner_id",
	"name",
	"species",
	"vaccination_status",
	"created_at",
	"updated_at",
}

type petRow struct {
	ID                uuid.UUID      `db:"id"`
	TenantID          uuid.UUID      `db:"tenant_id"`
	OwnerID           uuid.UUID      `db:"owner_id"`
	Name              string         `db:"name"`
	Species           string         `db:"species"`
	VaccinationStatus sql.NullString `db:"vaccination_status"`
	CreatedAt         sql.NullTime   `db:"created_at"`
	UpdatedAt         sql.NullTime   `db:"updated_at"`
}

func (r *petRow) toDomain() *domain.Pet {
	status := domain.VaccinationUnknown
	if r.VaccinationStatus.Valid && r.VaccinationStatus.String != "" {
		status = domain.VaccinationStatus(r.VaccinationStatus.String)
	}
	return &domain.Pet{
		ID:                r.ID,
		TenantID:          r.TenantID,
		OwnerID:           r.OwnerID,
		Name:              r.Name,
		Species:           r.Species,
		VaccinationStatus: status,
		CreatedAt:         r.CreatedAt.Time,
		UpdatedAt:         r.UpdatedAt.Time,
	}
}

var recordColumns = []string{
	"id",
	"tenant_id",
	"pet_id",
	"vaccination_type",
	"administered_date",
	"expiry_date",
	"status",
	"alert_count",
	"last_alert_sent_at",
	"created_at",
	"updated_at",
}

type recordRow struct {
	ID               uuid.UUID      `db:"id"`
	TenantID         uuid.UUID      `db:"tenant_id"`
	PetID            uuid.UUID      `db:"pet_id"`
	Type             string         `db:"vaccination_type"`
	AdministeredDate sql.NullTime   `db:"administered_date"`
	ExpiryDate       sql.NullTime   `db:"expiry_date"`
	Status           sql.NullString `db:"status"`
	AlertCount       int            `db:"alert_count"`
	LastAlertSentAt  sql.NullTime   `db:"last_alert_sent_at"`
	CreatedAt        sql.NullTime   `db:"created_at"`
	UpdatedAt        sql.NullTime   `db:"updated_at"`
}

func (r *recordRow) toDomain() *domain.VaccinationRecord {
	rec := &domain.VaccinationRecord{
		ID:               r.ID,
		TenantID:         r.TenantID,
		PetID:            r.PetID,
		Type:             r.Type,
		AdministeredDate: r.AdministeredDate.Time,
		Status:           domain.VaccinationStatus(r.Status.String),
		AlertCount:       r.AlertCount,
		CreatedAt:        r.CreatedAt.Time,
		UpdatedAt:        r.UpdatedAt.Time,
	}
	if r.ExpiryDate.Valid {
		exp := r.ExpiryDate.Time
		rec.ExpiryDate = &exp
	}
	if r.LastAlertSentAt.Valid {
		sent := r.LastAlertSentAt.Time
		rec.LastAlertSentAt = &sent
	}
	return rec
}
