package availability

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/tenants"
	"github.com/m04kA/SMC-PetCareService/internal/testutil/memstore"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// monday 2026-03-02
func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func window(startH, startM, endH, endM int) domain.Interval {
	return domain.Interval{Start: at(startH, startM), End: at(endH, endM)}
}

type fixture struct {
	store   *memstore.Store
	checker *Checker
	tenant  *domain.Tenant
	staffID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	tenant := domain.Tenant{ID: uuid.New(), Name: "Happy Paws", Timezone: "UTC", IsActive: true}
	store.PutTenant(tenant)

	staffID := uuid.New()
	store.PutStaff(domain.Staff{ID: staffID, TenantID: tenant.ID, Name: "Kate", IsActive: true, IsAvailable: true})

	tenantSvc := tenants.NewService(store.TenantRepo(), tenants.Defaults{
		BusinessStart:   "09:00",
		BusinessEnd:     "17:00",
		SlotStepMinutes: 30,
		ClosedWeekdays:  domain.DefaultClosedWeekdays,
	}, nopLogger{})

	loaded, err := tenantSvc.Get(context.Background(), tenant.ID)
	require.NoError(t, err)

	return &fixture{
		store:   store,
		checker: NewChecker(store.AppointmentRepo(), store.StaffRepo(), store.ResourceRepo(), tenantSvc, nopLogger{}),
		tenant:  loaded,
		staffID: staffID,
	}
}

func (f *fixture) book(staffID, resourceID *uuid.UUID, w domain.Interval, status domain.AppointmentStatus) uuid.UUID {
	id := uuid.New()
	f.store.PutAppointment(domain.Appointment{
		ID:             id,
		TenantID:       f.tenant.ID,
		OwnerID:        uuid.New(),
		StaffID:        staffID,
		ResourceID:     resourceID,
		ScheduledStart: w.Start,
		ScheduledEnd:   w.End,
		Status:         status,
	})
	return id
}

func TestChecker_IsStaffAvailable(t *testing.T) {
	f := newFixture(t)
	f.book(&f.staffID, nil, window(10, 0, 11, 0), domain.AppointmentConfirmed)
	f.book(&f.staffID, nil, window(13, 0, 14, 0), domain.AppointmentCancelled)
	f.book(&f.staffID, nil, window(14, 0, 15, 0), domain.AppointmentNoShow)

	tests := []struct {
		name   string
		window domain.Interval
		want   bool
	}{
		{name: "free morning", window: window(9, 0, 10, 0), want: true},
		{name: "overlaps confirmed", window: window(10, 30, 11, 30), want: false},
		{name: "contains confirmed", window: window(9, 30, 11, 30), want: false},
		{name: "touches end of confirmed", window: window(11, 0, 12, 0), want: true},
		{name: "cancelled does not block", window: window(13, 0, 14, 0), want: true},
		{name: "no-show does not block", window: window(14, 0, 15, 0), want: true},
		{name: "outside business hours", window: window(16, 30, 17, 30), want: false},
		{name: "before opening", window: window(8, 0, 9, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.checker.IsStaffAvailable(context.Background(), f.tenant, f.staffID, tt.window, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecker_IsStaffAvailable_ExcludesOwnAppointment(t *testing.T) {
	f := newFixture(t)
	id := f.book(&f.staffID, nil, window(10, 0, 11, 0), domain.AppointmentConfirmed)

	got, err := f.checker.IsStaffAvailable(context.Background(), f.tenant, f.staffID, window(10, 30, 11, 30), &id)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = f.checker.IsStaffAvailable(context.Background(), f.tenant, f.staffID, window(10, 30, 11, 30), nil)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestChecker_IsStaffAvailable_InactiveAndUnknown(t *testing.T) {
	f := newFixture(t)
	inactive := uuid.New()
	f.store.PutStaff(domain.Staff{ID: inactive, TenantID: f.tenant.ID, IsActive: true, IsAvailable: false})

	got, err := f.checker.IsStaffAvailable(context.Background(), f.tenant, inactive, window(9, 0, 10, 0), nil)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = f.checker.IsStaffAvailable(context.Background(), f.tenant, uuid.New(), window(9, 0, 10, 0), nil)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestChecker_IsStaffAvailable_WeeklySchedule(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	f.store.PutStaff(domain.Staff{
		ID:          id,
		TenantID:    f.tenant.ID,
		IsActive:    true,
		IsAvailable: true,
		Schedule: domain.WeeklySchedule{
			domain.Monday: {Open: "08:00", Close: "12:00", Breaks: []domain.Break{{Start: "10:00", End: "10:30"}}},
		},
	})

	tests := []struct {
		name   string
		window domain.Interval
		want   bool
	}{
		{name: "before tenant opening but inside own schedule", window: window(8, 0, 9, 0), want: true},
		{name: "touches break start", window: window(9, 0, 10, 0), want: true},
		{name: "overlaps break", window: window(9, 30, 10, 15), want: false},
		{name: "after own close", window: window(11, 30, 12, 30), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.checker.IsStaffAvailable(context.Background(), f.tenant, id, tt.window, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	// вторник в расписании отсутствует
	tuesday := domain.Interval{Start: at(9, 0).AddDate(0, 0, 1), End: at(10, 0).AddDate(0, 0, 1)}
	got, err := f.checker.IsStaffAvailable(context.Background(), f.tenant, id, tuesday, nil)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestChecker_IsStaffAvailable_ClosedDay(t *testing.T) {
	f := newFixture(t)
	saturday := domain.Interval{Start: at(10, 0).AddDate(0, 0, 5), End: at(11, 0).AddDate(0, 0, 5)}

	got, err := f.checker.IsStaffAvailable(context.Background(), f.tenant, f.staffID, saturday, nil)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestChecker_IsStaffAvailable_MatchesOverlapPredicate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 300; i++ {
		f := newFixture(t)

		// минуты от 09:00, оба окна внутри рабочего дня
		bookedStart := rng.Intn(400)
		bookedLen := 15 + rng.Intn(60)
		queryStart := rng.Intn(400)
		queryLen := 15 + rng.Intn(60)

		booked := domain.Interval{
			Start: at(9, 0).Add(time.Duration(bookedStart) * time.Minute),
			End:   at(9, 0).Add(time.Duration(bookedStart+bookedLen) * time.Minute),
		}
		query := domain.Interval{
			Start: at(9, 0).Add(time.Duration(queryStart) * time.Minute),
			End:   at(9, 0).Add(time.Duration(queryStart+queryLen) * time.Minute),
		}
		f.book(&f.staffID, nil, booked, domain.AppointmentPending)

		got, err := f.checker.IsStaffAvailable(context.Background(), f.tenant, f.staffID, query, nil)
		require.NoError(t, err)

		overlaps := booked.Start.Before(query.End) && query.Start.Before(booked.End)
		assert.Equal(t, !overlaps, got, "booked=%d+%d query=%d+%d", bookedStart, bookedLen, queryStart, queryLen)
	}
}

func TestChecker_IsResourceAvailable_Capacity(t *testing.T) {
	f := newFixture(t)
	resourceID := uuid.New()
	f.store.PutResource(domain.Resource{
		ID:         resourceID,
		TenantID:   f.tenant.ID,
		Name:       "Table 1",
		Type:       domain.ResourceTable,
		Capacity:   2,
		IsBookable: true,
	})

	slot := window(10, 0, 11, 0)
	for i := 0; i < 2; i++ {
		got, err := f.checker.IsResourceAvailable(context.Background(), f.tenant, resourceID, slot, nil)
		require.NoError(t, err)
		require.True(t, got, "booking %d must fit", i+1)
		f.book(nil, &resourceID, slot, domain.AppointmentConfirmed)
	}

	got, err := f.checker.IsResourceAvailable(context.Background(), f.tenant, resourceID, slot, nil)
	require.NoError(t, err)
	assert.False(t, got, "third booking exceeds capacity 2")

	got, err = f.checker.IsResourceAvailable(context.Background(), f.tenant, resourceID, window(11, 0, 12, 0), nil)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestChecker_IsResourceAvailable_NotBookable(t *testing.T) {
	f := newFixture(t)
	resourceID := uuid.New()
	f.store.PutResource(domain.Resource{ID: resourceID, TenantID: f.tenant.ID, Capacity: 1})

	got, err := f.checker.IsResourceAvailable(context.Background(), f.tenant, resourceID, window(10, 0, 11, 0), nil)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = f.checker.IsResourceAvailable(context.Background(), f.tenant, uuid.New(), window(10, 0, 11, 0), nil)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestChecker_CheckStaff_LoadsTenant(t *testing.T) {
	f := newFixture(t)

	got, err := f.checker.CheckStaff(context.Background(), f.tenant.ID, f.staffID, window(9, 0, 10, 0), nil)
	require.NoError(t, err)
	assert.True(t, got)

	_, err = f.checker.CheckStaff(context.Background(), uuid.New(), f.staffID, window(9, 0, 10, 0), nil)
	assert.ErrorIs(t, err, tenants.ErrTenantNotFound)
}

func TestCountOverlapping(t *testing.T) {
	excluded := uuid.New()
	appointments := []*domain.Appointment{
		{ID: uuid.New(), ScheduledStart: at(9, 0), ScheduledEnd: at(10, 0), Status: domain.AppointmentPending},
		{ID: uuid.New(), ScheduledStart: at(9, 30), ScheduledEnd: at(10, 30), Status: domain.AppointmentInProgress},
		{ID: excluded, ScheduledStart: at(9, 0), ScheduledEnd: at(10, 0), Status: domain.AppointmentConfirmed},
		{ID: uuid.New(), ScheduledStart: at(9, 0), ScheduledEnd: at(10, 0), Status: domain.AppointmentCompleted},
	}

	assert.Equal(t, 2, CountOverlapping(appointments, window(9, 45, 10, 15), &excluded))
	assert.Equal(t, 3, CountOverlapping(appointments, window(9, 45, 10, 15), nil))
	assert.Equal(t, 0, CountOverlapping(appointments, window(10, 30, 11, 0), nil))
}
