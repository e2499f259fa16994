package vaccination

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/testutil/memstore"
	"github.com/m04kA/SMC-PetCareService/pkg/clock"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

type fakeSMS struct {
	sent   []string
	failTo string
}

func (f *fakeSMS) Send(_ context.Context, to, body string) error {
	if to == f.failTo {
		return errors.New("twilio: 503")
	}
	f.sent = append(f.sent, body)
	return nil
}

type monitorFixture struct {
	store   *memstore.Store
	sms     *fakeSMS
	monitor *Monitor
	tenant  *domain.Tenant
}

func newMonitorFixture(t *testing.T) *monitorFixture {
	t.Helper()
	store := memstore.New()
	sms := &fakeSMS{}
	tenant := &domain.Tenant{ID: uuid.New(), Timezone: "UTC", IsActive: true}
	return &monitorFixture{
		store:   store,
		sms:     sms,
		monitor: NewMonitor(store.PetRepo(), store.OwnerRepo(), sms, clock.Fixed{T: now}, nil, nopLogger{}),
		tenant:  tenant,
	}
}

// pet сохраняет питомца с владельцем; пустой phone означает владельца без SMS
func (f *monitorFixture) pet(name, phone string) uuid.UUID {
	owner := domain.Owner{ID: uuid.New(), TenantID: f.tenant.ID, FirstName: "Jane", LastName: "Doe"}
	if phone != "" {
		owner.Phone = ptr.Ptr(phone)
		owner.SMSOptIn = true
	}
	f.store.PutOwner(owner)

	id := uuid.New()
	f.store.PutPet(domain.Pet{ID: id, TenantID: f.tenant.ID, OwnerID: owner.ID, Name: name})
	return id
}

func (f *monitorFixture) record(petID uuid.UUID, vaccineType string, expiresInDays int) uuid.UUID {
	id := uuid.New()
	exp := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, expiresInDays)
	f.store.PutVaccination(domain.VaccinationRecord{ID: id, TenantID: f.tenant.ID, PetID: petID, Type: vaccineType, ExpiryDate: &exp})
	return id
}

func TestMonitor_SendExpiryAlerts(t *testing.T) {
	f := newMonitorFixture(t)
	buddy := f.pet("Buddy", "+15550001111")

	in30 := f.record(buddy, "rabies", 30)
	in14 := f.record(buddy, "bordetella", 14)
	in7 := f.record(buddy, "distemper", 7)
	in10 := f.record(buddy, "lepto", 10)

	report, err := f.monitor.SendExpiryAlerts(context.Background(), f.tenant)
	require.NoError(t, err)
	assert.Equal(t, AlertsJobName, report.Job)
	assert.Equal(t, 3, report.Detected)
	assert.Equal(t, 3, report.Applied)
	assert.Zero(t, report.Errors)

	require.Len(t, f.sms.sent, 3)
	assert.Equal(t, "Hi Jane Doe! Buddy's rabies vaccination expires in 30 days (April 01, 2026).\n\n"+
		"Please update vaccination records to continue booking appointments.", f.sms.sent[0])

	for _, id := range []uuid.UUID{in30, in14, in7} {
		rec := f.store.Vaccination(id)
		assert.Equal(t, 1, rec.AlertCount)
		require.NotNil(t, rec.LastAlertSentAt)
		assert.True(t, rec.LastAlertSentAt.Equal(now))
	}
	assert.Zero(t, f.store.Vaccination(in10).AlertCount)
}

func TestMonitor_SendExpiryAlerts_SameDayRerun(t *testing.T) {
	f := newMonitorFixture(t)
	buddy := f.pet("Buddy", "+15550001111")
	id := f.record(buddy, "rabies", 14)

	_, err := f.monitor.SendExpiryAlerts(context.Background(), f.tenant)
	require.NoError(t, err)

	report, err := f.monitor.SendExpiryAlerts(context.Background(), f.tenant)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Detected)
	assert.Zero(t, report.Applied)
	assert.Len(t, f.sms.sent, 1)
	assert.Equal(t, 1, f.store.Vaccination(id).AlertCount)
}

func TestMonitor_SendExpiryAlerts_SkipsAndFailures(t *testing.T) {
	f := newMonitorFixture(t)
	silent := f.pet("Milo", "")
	broken := f.pet("Luna", "+15550009999")
	ok := f.pet("Rex", "+15550002222")
	f.sms.failTo = "+15550009999"

	skipped := f.record(silent, "rabies", 7)
	failed := f.record(broken, "rabies", 7)
	sent := f.record(ok, "rabies", 7)

	report, err := f.monitor.SendExpiryAlerts(context.Background(), f.tenant)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Detected)
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 1, report.Errors)

	assert.Zero(t, f.store.Vaccination(skipped).AlertCount)
	assert.Zero(t, f.store.Vaccination(failed).AlertCount)
	assert.Equal(t, 1, f.store.Vaccination(sent).AlertCount)
}

func TestMonitor_SendExpiryAlerts_MarkFailureContinues(t *testing.T) {
	f := newMonitorFixture(t)
	first := f.pet("Buddy", "+15550001111")
	second := f.pet("Rex", "+15550002222")
	f.record(first, "rabies", 30)
	f.record(second, "rabies", 30)
	f.store.FailOnce("pet.MarkAlertSent", errors.New("deadlock detected"))

	report, err := f.monitor.SendExpiryAlerts(context.Background(), f.tenant)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Detected)
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 1, report.Errors)
}

func TestMonitor_ExpiringAndExpired(t *testing.T) {
	f := newMonitorFixture(t)
	buddy := f.pet("Buddy", "+15550001111")
	f.record(buddy, "rabies", 0)
	f.record(buddy, "bordetella", 25)
	f.record(buddy, "distemper", 45)
	expired := f.record(buddy, "lepto", -3)
	f.store.PutVaccination(domain.VaccinationRecord{TenantID: f.tenant.ID, PetID: buddy, Type: "undated"})

	expiring, err := f.monitor.ExpiringVaccinations(context.Background(), f.tenant, 30)
	require.NoError(t, err)
	require.Len(t, expiring, 2)
	assert.Equal(t, "rabies", expiring[0].Record.Type)
	assert.Equal(t, 0, expiring[0].DaysUntilExpiry)
	assert.Equal(t, "bordetella", expiring[1].Record.Type)
	assert.Equal(t, 25, expiring[1].DaysUntilExpiry)
	assert.Equal(t, "Buddy", expiring[1].Pet.Name)
	require.NotNil(t, expiring[1].Owner)
	assert.Equal(t, "Jane Doe", expiring[1].Owner.FullName())

	past, err := f.monitor.ExpiredVaccinations(context.Background(), f.tenant)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, expired, past[0].Record.ID)
	assert.Equal(t, -3, past[0].DaysUntilExpiry)
}

func TestMonitor_ExpiringVaccinations_StoreFailure(t *testing.T) {
	f := newMonitorFixture(t)
	f.store.FailOn("pet.ListVaccinationsExpiring", errors.New("connection refused"))

	_, err := f.monitor.ExpiringVaccinations(context.Background(), f.tenant, 30)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = f.monitor.SendExpiryAlerts(context.Background(), f.tenant)
	assert.Error(t, err)
}
