package reputation

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
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMetrics struct {
	recovered int
}

func (m *fakeMetrics) RecordReputationRecovery(count int) { m.recovered += count }

var now = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func daysAgo(days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

type fixture struct {
	store    *memstore.Store
	tx       *memstore.TxManager
	metrics  *fakeMetrics
	service  *Service
	tenantID uuid.UUID
}

func newFixture() *fixture {
	store := memstore.New()
	tx := memstore.NewTxManager(store)
	metrics := &fakeMetrics{}
	settings := Settings{
		MinBookingScore:    domain.DefaultMinBookingScore,
		RecoveryWindowDays: domain.DefaultRecoveryWindowDays,
		RecoveryBonus:      domain.DefaultRecoveryBonus,
	}
	return &fixture{
		store:    store,
		tx:       tx,
		metrics:  metrics,
		service:  NewService(store.OwnerRepo(), store.AppointmentRepo(), tx, clock.Fixed{T: now}, settings, metrics, nopLogger{}),
		tenantID: uuid.New(),
	}
}

// owner сохраняет клиента с согласованным кэшем рейтинга
func (f *fixture) owner(noShows, lateCancels, completed int, updated time.Time) uuid.UUID {
	o := domain.Owner{
		ID:                        uuid.New(),
		TenantID:                  f.tenantID,
		FirstName:                 "Alex",
		NoShowCount:               noShows,
		LateCancellationCount:     lateCancels,
		CompletedAppointmentCount: completed,
	}
	o.RefreshReputation(updated)
	f.store.PutOwner(o)
	return o.ID
}

func (f *fixture) noShowAt(ownerID uuid.UUID, start time.Time) {
	f.store.PutAppointment(domain.Appointment{
		TenantID:       f.tenantID,
		OwnerID:        ownerID,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Hour),
		Status:         domain.AppointmentNoShow,
		IsNoShow:       true,
	})
}

func TestService_CanBook(t *testing.T) {
	tests := []struct {
		name        string
		noShows     int
		lateCancels int
		wantOK      bool
		wantReason  string
	}{
		{name: "clean history", wantOK: true},
		{name: "exactly at threshold", noShows: 3, lateCancels: 1, wantOK: true},
		{name: "below threshold", noShows: 4, wantOK: false, wantReason: "Reputation score too low (20/100). Minimum required: 30"},
		{name: "floor", noShows: 10, wantOK: false, wantReason: "Reputation score too low (0/100). Minimum required: 30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			id := f.owner(tt.noShows, tt.lateCancels, 0, now)

			ok, reason, err := f.service.CanBook(context.Background(), f.tenantID, id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestService_CanBook_UnknownOwner(t *testing.T) {
	f := newFixture()

	ok, reason, err := f.service.CanBook(context.Background(), f.tenantID, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "Customer not found", reason)

	err = f.service.Check(context.Background(), f.tenantID, uuid.New())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestService_Check_UsesDerivedScore(t *testing.T) {
	f := newFixture()
	id := f.owner(4, 0, 0, now)

	// устаревший кэш не должен пропустить клиента
	o := f.store.Owner(id)
	o.ReputationScore = 100
	f.store.PutOwner(o)

	err := f.service.Check(context.Background(), f.tenantID, id)
	assert.ErrorIs(t, err, ErrScoreTooLow)
}

func TestService_RecordEvent(t *testing.T) {
	tests := []struct {
		event Event
		want  int
	}{
		{event: EventNoShow, want: 80},
		{event: EventLateCancellation, want: 90},
		{event: EventCompleted, want: 100},
	}

	for _, tt := range tests {
		t.Run(string(tt.event), func(t *testing.T) {
			f := newFixture()
			id := f.owner(0, 0, 0, daysAgo(1))

			owner, err := f.service.RecordEvent(context.Background(), f.tenantID, id, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, owner.ReputationScore)

			stored := f.store.Owner(id)
			assert.Equal(t, tt.want, stored.ReputationScore)
			assert.Equal(t, stored.DerivedReputationScore(), stored.ReputationScore)
			assert.True(t, stored.LastReputationUpdate.Equal(now))
		})
	}
}

func TestService_RecordEvent_RollsBack(t *testing.T) {
	f := newFixture()
	id := f.owner(0, 0, 0, daysAgo(1))
	f.store.FailOn("owner.UpdateReputation", errors.New("db is down"))

	_, err := f.service.RecordEvent(context.Background(), f.tenantID, id, EventNoShow)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, f.store.Owner(id).NoShowCount)
}

func TestService_Summary(t *testing.T) {
	f := newFixture()
	id := f.owner(1, 1, 5, daysAgo(3))
	f.noShowAt(id, daysAgo(40))
	for i := 0; i < 2; i++ {
		f.store.PutAppointment(domain.Appointment{
			TenantID:       f.tenantID,
			OwnerID:        id,
			ScheduledStart: daysAgo(10 + i),
			ScheduledEnd:   daysAgo(10 + i).Add(time.Hour),
			Status:         domain.AppointmentCompleted,
		})
	}

	summary, err := f.service.Summary(context.Background(), f.tenantID, id)
	require.NoError(t, err)
	assert.Equal(t, 80, summary.Score)
	assert.Equal(t, domain.ReputationGood, summary.Category)
	assert.True(t, summary.CanBook)
	assert.Empty(t, summary.Reason)
	assert.Equal(t, 1, summary.NoShowCount)
	assert.Equal(t, 1, summary.LateCancellationCount)
	assert.Equal(t, 5, summary.CompletedAppointmentCount)
	assert.Equal(t, 3, summary.TotalAppointments)
	assert.Equal(t, "66.67", summary.CompletionRate.StringFixed(2))

	restricted := f.owner(5, 0, 0, daysAgo(3))
	summary, err = f.service.Summary(context.Background(), f.tenantID, restricted)
	require.NoError(t, err)
	assert.Equal(t, domain.ReputationRestricted, summary.Category)
	assert.False(t, summary.CanBook)
	assert.Equal(t, "Reputation score too low (0/100). Minimum required: 30", summary.Reason)
	assert.Zero(t, summary.TotalAppointments)
	assert.True(t, summary.CompletionRate.IsZero())
}

func TestService_ListByCategory(t *testing.T) {
	f := newFixture()
	excellent := f.owner(0, 0, 0, daysAgo(1))
	good := f.owner(1, 0, 0, daysAgo(1))
	betterGood := f.owner(1, 0, 4, daysAgo(1))
	f.owner(3, 0, 0, daysAgo(1))

	got, err := f.service.ListByCategory(context.Background(), f.tenantID, domain.ReputationGood)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, betterGood, got[0].ID)
	assert.Equal(t, good, got[1].ID)

	got, err = f.service.ListByCategory(context.Background(), f.tenantID, domain.ReputationExcellent)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, excellent, got[0].ID)

	got, err = f.service.ListByCategory(context.Background(), f.tenantID, domain.ReputationRestricted)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_ApplyRecovery(t *testing.T) {
	f := newFixture()

	// старые неявки, рейтинг давно не менялся
	eligible := f.owner(2, 0, 0, daysAgo(100))
	f.noShowAt(eligible, daysAgo(120))

	// неявка внутри окна блокирует восстановление
	blocked := f.owner(2, 0, 0, daysAgo(100))
	f.noShowAt(blocked, daysAgo(30))

	// рейтинг менялся недавно
	recent := f.owner(2, 0, 0, daysAgo(10))

	// бонус упирается в максимум
	nearMax := f.owner(0, 0, 0, daysAgo(100))
	o := f.store.Owner(nearMax)
	o.RecoveryPoints = -2
	o.RefreshReputation(daysAgo(100))
	f.store.PutOwner(o)

	// уже максимум
	f.owner(0, 0, 0, daysAgo(200))

	report, err := f.service.ApplyRecovery(context.Background(), &domain.Tenant{ID: f.tenantID})
	require.NoError(t, err)
	assert.Equal(t, domain.BatchReport{Job: JobName, TenantID: f.tenantID, Detected: 3, Applied: 2}, report)
	assert.Equal(t, 3, f.tx.Calls, "each candidate gets its own transaction")
	assert.Equal(t, 2, f.metrics.recovered)

	got := f.store.Owner(eligible)
	assert.Equal(t, 65, got.ReputationScore)
	assert.Equal(t, 5, got.RecoveryPoints)
	assert.Equal(t, got.DerivedReputationScore(), got.ReputationScore)
	assert.True(t, got.LastReputationUpdate.Equal(now))

	assert.Equal(t, 60, f.store.Owner(blocked).ReputationScore)
	assert.Equal(t, 60, f.store.Owner(recent).ReputationScore)

	got = f.store.Owner(nearMax)
	assert.Equal(t, 100, got.ReputationScore)
	assert.Equal(t, 0, got.RecoveryPoints)
}

func TestService_ApplyRecovery_FromFloor(t *testing.T) {
	f := newFixture()
	id := f.owner(7, 0, 0, daysAgo(100))

	_, err := f.service.ApplyRecovery(context.Background(), &domain.Tenant{ID: f.tenantID})
	require.NoError(t, err)

	got := f.store.Owner(id)
	assert.Equal(t, 5, got.ReputationScore)
	assert.Equal(t, got.DerivedReputationScore(), got.ReputationScore)
}

func TestService_ApplyRecovery_CountsErrors(t *testing.T) {
	f := newFixture()
	f.owner(2, 0, 0, daysAgo(100))
	f.owner(3, 0, 0, daysAgo(100))
	f.store.FailOn("owner.UpdateReputation", errors.New("db is down"))

	report, err := f.service.ApplyRecovery(context.Background(), &domain.Tenant{ID: f.tenantID})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Detected)
	assert.Equal(t, 0, report.Applied)
	assert.Equal(t, 2, report.Errors)
	assert.Zero(t, f.metrics.recovered)
}

func TestService_ApplyRecovery_FailureKeepsOtherGrants(t *testing.T) {
	for _, op := range []string{"appointment.CountNoShowsScheduledSince", "owner.UpdateReputation"} {
		t.Run(op, func(t *testing.T) {
			f := newFixture()
			first := f.owner(2, 0, 0, daysAgo(100))
			second := f.owner(3, 0, 0, daysAgo(100))
			f.store.FailOnce(op, errors.New("current transaction is aborted"))

			report, err := f.service.ApplyRecovery(context.Background(), &domain.Tenant{ID: f.tenantID})
			require.NoError(t, err)
			assert.Equal(t, 2, report.Detected)
			assert.Equal(t, 1, report.Applied)
			assert.Equal(t, 1, report.Errors)
			assert.Equal(t, 2, f.tx.Calls)
			assert.Equal(t, 1, f.metrics.recovered)

			// ровно один клиент получил бонус, у второго состояние не изменилось
			a, b := f.store.Owner(first), f.store.Owner(second)
			assert.Equal(t, 5, a.RecoveryPoints+b.RecoveryPoints)
			for _, o := range []domain.Owner{a, b} {
				assert.Equal(t, o.DerivedReputationScore(), o.ReputationScore)
			}
		})
	}
}

func TestService_ApplyRecovery_MissingTimestampIsStale(t *testing.T) {
	f := newFixture()
	o := domain.Owner{ID: uuid.New(), TenantID: f.tenantID, NoShowCount: 1, ReputationScore: 80}
	f.store.PutOwner(o)

	report, err := f.service.ApplyRecovery(context.Background(), &domain.Tenant{ID: f.tenantID})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 85, f.store.Owner(o.ID).ReputationScore)
	assert.NotNil(t, f.store.Owner(o.ID).LastReputationUpdate)
}
