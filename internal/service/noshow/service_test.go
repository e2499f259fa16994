package noshow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/testutil/memstore"
	"github.com/m04kA/SMC-PetCareService/pkg/clock"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type sentSMS struct {
	to, body string
}

type fakeSMS struct {
	sent []sentSMS
	err  error
}

func (f *fakeSMS) Send(_ context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentSMS{to: to, body: body})
	return nil
}

type fakeMetrics struct {
	noShows int
	fees    int
	waived  int
}

func (m *fakeMetrics) RecordNoShow(feeApplied bool) {
	m.noShows++
	if feeApplied {
		m.fees++
	}
}

func (m *fakeMetrics) RecordFeeWaived() { m.waived++ }

// понедельник 2026-03-02 12:00 UTC
var now = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memstore.Store
	tx      *memstore.TxManager
	sms     *fakeSMS
	metrics *fakeMetrics
	service *Service
	tenant  *domain.Tenant
	ownerID uuid.UUID
}

func newFixture(t *testing.T, noShowCount int) *fixture {
	t.Helper()

	store := memstore.New()
	tenant := &domain.Tenant{ID: uuid.New(), Timezone: "UTC", IsActive: true}
	store.PutTenant(*tenant)

	ownerID := uuid.New()
	owner := domain.Owner{
		ID:          ownerID,
		TenantID:    tenant.ID,
		FirstName:   "Jane",
		LastName:    "Doe",
		Phone:       ptr.Ptr("+15550001111"),
		SMSOptIn:    true,
		NoShowCount: noShowCount,
	}
	owner.RefreshReputation(now.Add(-time.Hour))
	store.PutOwner(owner)

	tx := memstore.NewTxManager(store)
	sms := &fakeSMS{}
	metrics := &fakeMetrics{}
	settings := Settings{GraceMinutes: 15, FeeEnabled: true, FeeSchedule: domain.DefaultNoShowFeeSchedule}

	return &fixture{
		store:   store,
		tx:      tx,
		sms:     sms,
		metrics: metrics,
		service: NewService(store.AppointmentRepo(), store.OwnerRepo(), store.PaymentRepo(), tx, sms,
			clock.Fixed{T: now}, settings, metrics, nopLogger{}),
		tenant:  tenant,
		ownerID: ownerID,
	}
}

func (f *fixture) appointment(start time.Time, status domain.AppointmentStatus) uuid.UUID {
	id := uuid.New()
	f.store.PutAppointment(domain.Appointment{
		ID:             id,
		TenantID:       f.tenant.ID,
		OwnerID:        f.ownerID,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Hour),
		Status:         status,
	})
	return id
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	reason, ok := domain.ReasonOf(err)
	require.True(t, ok, "expected a rejection, got %v", err)
	return reason
}

func TestFeeForCount(t *testing.T) {
	tests := []struct {
		prior int
		want  int64
	}{
		{prior: 0, want: 2500},
		{prior: 1, want: 3500},
		{prior: 2, want: 5000},
		{prior: 3, want: 7500},
		{prior: 5, want: 7500},
		{prior: 42, want: 7500},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FeeForCount(domain.DefaultNoShowFeeSchedule, tt.prior), "prior=%d", tt.prior)
	}
	assert.Zero(t, FeeForCount(nil, 3))
}

func TestService_CalculatePenalty(t *testing.T) {
	for count, want := range map[int]int64{0: 2500, 1: 3500, 2: 5000, 3: 7500, 5: 7500} {
		f := newFixture(t, count)

		fee, err := f.service.CalculatePenalty(context.Background(), f.tenant.ID, f.ownerID)
		require.NoError(t, err)
		assert.Equal(t, want, fee, "no_show_count=%d", count)
	}
}

func TestService_CalculatePenalty_UnknownOwner(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.service.CalculatePenalty(context.Background(), f.tenant.ID, uuid.New())
	assert.Equal(t, "Customer not found", reasonOf(t, err))
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestService_MarkAsNoShow(t *testing.T) {
	f := newFixture(t, 1)
	apptID := f.appointment(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), domain.AppointmentConfirmed)

	result, err := f.service.MarkAsNoShow(context.Background(), f.tenant, apptID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), result.FeeCents)
	require.NotNil(t, result.PaymentID)
	assert.True(t, result.SMSSent)

	appt := f.store.Appointment(apptID)
	assert.True(t, appt.IsNoShow)
	assert.Equal(t, domain.AppointmentNoShow, appt.Status)
	assert.Equal(t, int64(3500), appt.NoShowFeeCharged)
	require.NotNil(t, appt.NoShowMarkedAt)
	assert.True(t, appt.NoShowMarkedAt.Equal(now))

	payments := f.store.PaymentsFor(apptID)
	require.Len(t, payments, 1)
	assert.Equal(t, domain.PaymentPending, payments[0].Status)
	assert.Equal(t, domain.PaymentTypeNoShowFee, payments[0].Type)
	assert.Equal(t, int64(3500), payments[0].AmountCents)
	assert.Equal(t, "No-show fee for appointment "+apptID.String(), payments[0].Description)

	owner := f.store.Owner(f.ownerID)
	assert.Equal(t, 2, owner.NoShowCount)
	assert.Equal(t, 60, owner.ReputationScore)
	assert.Equal(t, owner.DerivedReputationScore(), owner.ReputationScore)

	require.Len(t, f.sms.sent, 1)
	assert.Equal(t, "+15550001111", f.sms.sent[0].to)
	assert.Equal(t,
		"Hi Jane, you missed your appointment on March 02 at 10:00 AM. "+
			"A no-show fee of $35.00 has been applied to your account. "+
			"To avoid future fees, please cancel at least 24 hours in advance.",
		f.sms.sent[0].body)
	assert.Equal(t, 1, f.metrics.fees)
}

func TestService_MarkAsNoShow_Idempotent(t *testing.T) {
	f := newFixture(t, 0)
	apptID := f.appointment(now.Add(-2*time.Hour), domain.AppointmentPending)

	_, err := f.service.MarkAsNoShow(context.Background(), f.tenant, apptID, true)
	require.NoError(t, err)

	_, err = f.service.MarkAsNoShow(context.Background(), f.tenant, apptID, true)
	assert.Equal(t, "Already marked as no-show", reasonOf(t, err))
	assert.ErrorIs(t, err, ErrAlreadyMarked)

	assert.Equal(t, 1, f.store.Owner(f.ownerID).NoShowCount)
	assert.Len(t, f.store.PaymentsFor(apptID), 1)
	assert.Len(t, f.sms.sent, 1)
}

func TestService_MarkAsNoShow_WithoutFee(t *testing.T) {
	f := newFixture(t, 0)
	apptID := f.appointment(now.Add(-2*time.Hour), domain.AppointmentConfirmed)

	result, err := f.service.MarkAsNoShow(context.Background(), f.tenant, apptID, false)
	require.NoError(t, err)
	assert.Zero(t, result.FeeCents)
	assert.Nil(t, result.PaymentID)

	assert.True(t, f.store.Appointment(apptID).IsNoShow)
	assert.Empty(t, f.store.PaymentsFor(apptID))
	assert.Equal(t, 0, f.store.Owner(f.ownerID).NoShowCount)
	assert.Empty(t, f.sms.sent)
}

func TestService_MarkAsNoShow_RollsBackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		op   string
	}{
		{name: "payment insert fails", op: "payment.Create"},
		{name: "owner update fails", op: "owner.UpdateReputation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 0)
			apptID := f.appointment(now.Add(-2*time.Hour), domain.AppointmentConfirmed)
			f.store.FailOn(tt.op, errors.New("db is down"))

			_, err := f.service.MarkAsNoShow(context.Background(), f.tenant, apptID, true)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInternal)

			appt := f.store.Appointment(apptID)
			assert.False(t, appt.IsNoShow)
			assert.Equal(t, domain.AppointmentConfirmed, appt.Status)
			assert.Empty(t, f.store.PaymentsFor(apptID))
			assert.Equal(t, 0, f.store.Owner(f.ownerID).NoShowCount)
			assert.Empty(t, f.sms.sent)
			assert.Zero(t, f.metrics.noShows)
		})
	}
}

func TestService_MarkAsNoShow_Rejections(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.service.MarkAsNoShow(context.Background(), f.tenant, uuid.New(), true)
	assert.Equal(t, "Appointment not found", reasonOf(t, err))

	completed := f.appointment(now.Add(-3*time.Hour), domain.AppointmentCompleted)
	_, err = f.service.MarkAsNoShow(context.Background(), f.tenant, completed, true)
	assert.Equal(t, "Cannot transition appointment from completed to no_show", reasonOf(t, err))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_MarkAsNoShow_SMSFailureKeepsMark(t *testing.T) {
	f := newFixture(t, 0)
	f.sms.err = errors.New("provider unavailable")
	apptID := f.appointment(now.Add(-2*time.Hour), domain.AppointmentConfirmed)

	result, err := f.service.MarkAsNoShow(context.Background(), f.tenant, apptID, true)
	require.NoError(t, err)
	assert.False(t, result.SMSSent)
	assert.True(t, f.store.Appointment(apptID).IsNoShow)
	assert.Equal(t, 1, f.store.Owner(f.ownerID).NoShowCount)
}

func TestService_MarkAsNoShow_NoSMSWithoutOptIn(t *testing.T) {
	f := newFixture(t, 0)
	owner := f.store.Owner(f.ownerID)
	owner.SMSOptIn = false
	f.store.PutOwner(owner)
	apptID := f.appointment(now.Add(-2*time.Hour), domain.AppointmentConfirmed)

	result, err := f.service.MarkAsNoShow(context.Background(), f.tenant, apptID, true)
	require.NoError(t, err)
	assert.False(t, result.SMSSent)
	assert.Empty(t, f.sms.sent)
}

func TestService_WaiveFee(t *testing.T) {
	f := newFixture(t, 0)
	apptID := f.appointment(now.Add(-2*time.Hour), domain.AppointmentConfirmed)
	_, err := f.service.MarkAsNoShow(context.Background(), f.tenant, apptID, true)
	require.NoError(t, err)

	require.NoError(t, f.service.WaiveFee(context.Background(), f.tenant.ID, apptID, "family emergency"))

	payments := f.store.PaymentsFor(apptID)
	require.Len(t, payments, 1)
	assert.Equal(t, domain.PaymentWaived, payments[0].Status)
	require.NotNil(t, payments[0].Notes)
	assert.Equal(t, "Fee waived: family emergency", *payments[0].Notes)
	assert.Zero(t, f.store.Appointment(apptID).NoShowFeeCharged)
	assert.Equal(t, 1, f.metrics.waived)

	err = f.service.WaiveFee(context.Background(), f.tenant.ID, apptID, "again")
	assert.Equal(t, "Fee already waived", reasonOf(t, err))
}

func TestService_WaiveFee_NotNoShow(t *testing.T) {
	f := newFixture(t, 0)
	apptID := f.appointment(now.Add(time.Hour), domain.AppointmentConfirmed)

	err := f.service.WaiveFee(context.Background(), f.tenant.ID, apptID, "whatever")
	assert.Equal(t, "Appointment is not marked as no-show", reasonOf(t, err))
	assert.ErrorIs(t, err, ErrNotNoShow)
}

func TestService_WaiveFee_PaidFee(t *testing.T) {
	f := newFixture(t, 0)
	apptID := f.appointment(now.Add(-2*time.Hour), domain.AppointmentConfirmed)
	_, err := f.service.MarkAsNoShow(context.Background(), f.tenant, apptID, true)
	require.NoError(t, err)

	paid := f.store.PaymentsFor(apptID)[0]
	paid.Status = domain.PaymentSucceeded
	f.store.PutPayment(paid)

	err = f.service.WaiveFee(context.Background(), f.tenant.ID, apptID, "late")
	assert.Equal(t, "Cannot waive fee with payment status succeeded", reasonOf(t, err))
	assert.Equal(t, int64(2500), f.store.Appointment(apptID).NoShowFeeCharged)
}

func TestService_Detect(t *testing.T) {
	f := newFixture(t, 0)
	overdue := f.appointment(now.Add(-time.Hour), domain.AppointmentConfirmed)
	f.appointment(now.Add(-10*time.Minute), domain.AppointmentPending) // в пределах grace
	f.appointment(now.Add(-time.Hour), domain.AppointmentCancelled)
	arrived := f.appointment(now.Add(-time.Hour), domain.AppointmentConfirmed)
	a := f.store.Appointment(arrived)
	a.ArrivedAt = ptr.Ptr(now.Add(-time.Hour))
	f.store.PutAppointment(a)

	found, err := f.service.Detect(context.Background(), f.tenant.ID, 15)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, overdue, found[0].ID)

	found, err = f.service.Detect(context.Background(), f.tenant.ID, 5)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestService_ProcessTenant(t *testing.T) {
	f := newFixture(t, 0)
	first := f.appointment(now.Add(-3*time.Hour), domain.AppointmentConfirmed)
	second := f.appointment(now.Add(-2*time.Hour), domain.AppointmentPending)
	f.appointment(now.Add(time.Hour), domain.AppointmentConfirmed)

	report, err := f.service.ProcessTenant(context.Background(), f.tenant)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchReport{Job: JobName, TenantID: f.tenant.ID, Detected: 2, Applied: 2}, report)

	// штрафы растут по порядку обработки
	assert.Equal(t, int64(2500), f.store.Appointment(first).NoShowFeeCharged)
	assert.Equal(t, int64(3500), f.store.Appointment(second).NoShowFeeCharged)
	assert.Equal(t, 2, f.store.Owner(f.ownerID).NoShowCount)
	assert.Equal(t, 2, f.tx.Calls)
}

func TestService_ProcessTenant_ContinuesAfterFailure(t *testing.T) {
	f := newFixture(t, 0)
	f.appointment(now.Add(-3*time.Hour), domain.AppointmentConfirmed)
	f.appointment(now.Add(-2*time.Hour), domain.AppointmentConfirmed)
	f.store.FailOn("payment.Create", errors.New("db is down"))

	report, err := f.service.ProcessTenant(context.Background(), f.tenant)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Detected)
	assert.Equal(t, 0, report.Applied)
	assert.Equal(t, 2, report.Errors)
}

func TestRate(t *testing.T) {
	tests := []struct {
		name  string
		stats *domain.OwnerAppointmentStats
		want  string
	}{
		{name: "no appointments", stats: &domain.OwnerAppointmentStats{}, want: "0"},
		{name: "one of four", stats: &domain.OwnerAppointmentStats{Total: 4, NoShows: 1}, want: "25"},
		{name: "one of three", stats: &domain.OwnerAppointmentStats{Total: 3, NoShows: 1}, want: "33.33"},
		{name: "two of three", stats: &domain.OwnerAppointmentStats{Total: 3, NoShows: 2}, want: "66.67"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(tt.want).Equal(Rate(tt.stats)), "got %s", Rate(tt.stats))
		})
	}
}

func TestService_History(t *testing.T) {
	f := newFixture(t, 0)
	missed := f.appointment(now.Add(-2*time.Hour), domain.AppointmentConfirmed)
	f.appointment(now.Add(-48*time.Hour), domain.AppointmentCompleted)
	f.appointment(now.Add(-72*time.Hour), domain.AppointmentCompleted)
	f.appointment(now.Add(24*time.Hour), domain.AppointmentConfirmed)

	_, err := f.service.MarkAsNoShow(context.Background(), f.tenant, missed, true)
	require.NoError(t, err)

	history, err := f.service.History(context.Background(), f.tenant.ID, f.ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, history.TotalNoShows)
	assert.Equal(t, int64(2500), history.TotalFeesCents)
	assert.Equal(t, int64(2500), history.UnpaidFeesCents)
	assert.Equal(t, "25.00", history.NoShowRate.StringFixed(2))
	require.NotNil(t, history.LastNoShowAt)
	assert.True(t, history.LastNoShowAt.Equal(now.Add(-2*time.Hour)))
	require.Len(t, history.RecentNoShows, 1)
	assert.Equal(t, missed, history.RecentNoShows[0].AppointmentID)
	assert.Equal(t, int64(2500), history.RecentNoShows[0].FeeCents)

	require.NoError(t, f.service.WaiveFee(context.Background(), f.tenant.ID, missed, "first time"))
	history, err = f.service.History(context.Background(), f.tenant.ID, f.ownerID)
	require.NoError(t, err)
	assert.Zero(t, history.TotalFeesCents)
	assert.Zero(t, history.UnpaidFeesCents)
}

func TestService_History_RecentNoShowsLimited(t *testing.T) {
	f := newFixture(t, 0)
	for i := 1; i <= 7; i++ {
		id := uuid.New()
		f.store.PutAppointment(domain.Appointment{
			ID:             id,
			TenantID:       f.tenant.ID,
			OwnerID:        f.ownerID,
			ScheduledStart: now.AddDate(0, 0, -i),
			ScheduledEnd:   now.AddDate(0, 0, -i).Add(time.Hour),
			Status:         domain.AppointmentNoShow,
			IsNoShow:       true,
		})
	}

	history, err := f.service.History(context.Background(), f.tenant.ID, f.ownerID)
	require.NoError(t, err)
	assert.Equal(t, 7, history.TotalNoShows)
	require.Len(t, history.RecentNoShows, domain.RecentNoShowsLimit)
	assert.True(t, history.RecentNoShows[0].ScheduledStart.Equal(now.AddDate(0, 0, -1)))
	assert.True(t, history.RecentNoShows[4].ScheduledStart.Equal(now.AddDate(0, 0, -5)))
}

func TestService_HighRiskCustomers(t *testing.T) {
	f := newFixture(t, 2)
	f.appointment(now.Add(-48*time.Hour), domain.AppointmentCompleted)
	f.store.PutAppointment(domain.Appointment{
		ID: uuid.New(), TenantID: f.tenant.ID, OwnerID: f.ownerID,
		ScheduledStart: now.Add(-24 * time.Hour), ScheduledEnd: now.Add(-23 * time.Hour),
		Status: domain.AppointmentNoShow, IsNoShow: true,
	})

	worst := uuid.New()
	f.store.PutOwner(domain.Owner{ID: worst, TenantID: f.tenant.ID, FirstName: "Max", NoShowCount: 5})
	f.store.PutOwner(domain.Owner{ID: uuid.New(), TenantID: f.tenant.ID, FirstName: "Ok", NoShowCount: 1})
	f.store.PutOwner(domain.Owner{ID: uuid.New(), TenantID: uuid.New(), FirstName: "Other", NoShowCount: 9})

	got, err := f.service.HighRiskCustomers(context.Background(), f.tenant.ID, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, worst, got[0].Owner.ID)
	assert.Equal(t, 5, got[0].NoShowCount)
	assert.True(t, got[0].NoShowRate.IsZero())

	assert.Equal(t, f.ownerID, got[1].Owner.ID)
	assert.Equal(t, 2, got[1].NoShowCount)
	assert.Equal(t, "50.00", got[1].NoShowRate.StringFixed(2))

	got, err = f.service.HighRiskCustomers(context.Background(), f.tenant.ID, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, worst, got[0].Owner.ID)
}

func TestService_HighRiskCustomers_StoreFailure(t *testing.T) {
	f := newFixture(t, 2)
	f.store.FailOn("owner.ListByMinNoShows", errors.New("connection reset"))

	_, err := f.service.HighRiskCustomers(context.Background(), f.tenant.ID, 2)
	assert.ErrorIs(t, err, ErrInternal)
}
