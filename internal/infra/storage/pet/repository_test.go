package pet

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
)

func TestRepository_GetByIDs_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))

	pets, err := repo.GetByIDs(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, pets)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByIDs_DefaultsUnknownStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))
	tenant, owner, id := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM pets WHERE`).
		WillReturnRows(sqlmock.NewRows(petColumns).AddRow(
			id.String(), tenant.String(), owner.String(), "Rex", "dog", nil, nil, nil,
		))

	pets, err := repo.GetByIDs(context.Background(), tenant, []uuid.UUID{id})
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, domain.VaccinationUnknown, pets[0].VaccinationStatus)
}

func TestRepository_ListVaccinations_FiltersTypes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))
	tenant, petID := uuid.New(), uuid.New()
	expiry := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM vaccination_records WHERE (.+) AND vaccination_type IN \(\$\d\)`).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(uuid.New().String(), tenant.String(), petID.String(), "rabies", expiry.AddDate(-1, 0, 0), expiry, "current", 1, expiry.AddDate(0, 0, -30), nil, nil).
			AddRow(uuid.New().String(), tenant.String(), petID.String(), "rabies", expiry.AddDate(-2, 0, 0), nil, nil, 0, nil, nil, nil))

	records, err := repo.ListVaccinations(context.Background(), tenant, []uuid.UUID{petID}, []string{"rabies"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].ExpiryDate)
	assert.True(t, records[0].ExpiryDate.Equal(expiry))
	assert.Equal(t, 1, records[0].AlertCount)
	require.NotNil(t, records[0].LastAlertSentAt)
	assert.Nil(t, records[1].ExpiryDate)
	assert.Nil(t, records[1].LastAlertSentAt)
}

func TestRepository_UpdateRecordStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))
	mock.ExpectExec(`UPDATE vaccination_records`).WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateRecordStatus(context.Background(), uuid.New(), uuid.New(), domain.VaccinationExpired)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRepository_ListVaccinationsExpiring(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))
	tenant := uuid.New()
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)

	mock.ExpectQuery(`SELECT (.+) FROM vaccination_records WHERE tenant_id = \$1 AND expiry_date >= \$2 AND expiry_date <= \$3`).
		WithArgs(tenant, from, to).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(uuid.New().String(), tenant.String(), uuid.New().String(), "rabies", nil, from.AddDate(0, 0, 7), "expiring_soon", 0, nil, nil, nil))

	records, err := repo.ListVaccinationsExpiring(context.Background(), tenant, from, to)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.VaccinationExpiringSoon, records[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkAlertSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))
	tenant, id := uuid.New(), uuid.New()
	at := time.Date(2026, 3, 2, 6, 20, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE vaccination_records SET alert_count = alert_count \+ 1, last_alert_sent_at = \$1`).
		WithArgs(at, id, tenant).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkAlertSent(context.Background(), tenant, id, at))
	require.NoError(t, mock.ExpectationsWereMet())
}
