package validate_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/tenants"
	"github.com/m04kA/SMC-PetCareService/internal/service/validation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTenants struct {
	tenant *domain.Tenant
	err    error
}

func (f fakeTenants) Get(context.Context, uuid.UUID) (*domain.Tenant, error) {
	return f.tenant, f.err
}

type fakeValidator struct {
	got validation.Request
	err error
}

func (f *fakeValidator) Validate(_ context.Context, _ *domain.Tenant, req validation.Request) (*domain.Service, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Service{ID: req.ServiceID}, nil
}

func request() *Request {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &Request{
		TenantID:  uuid.New(),
		ServiceID: uuid.New(),
		PetIDs:    []uuid.UUID{uuid.New()},
		Start:     start,
		End:       start.Add(time.Hour),
	}
}

func TestUseCase_Execute(t *testing.T) {
	tenant := &domain.Tenant{ID: uuid.New()}

	tests := []struct {
		name string
		err  error
		want Response
	}{
		{name: "valid", want: Response{Valid: true}},
		{
			name: "rejected",
			err:  domain.Reject(validation.ErrStaffUnavailable, validation.ReasonStaffUnavailable),
			want: Response{Valid: false, Reason: "Staff member is not available at this time", Kind: "staff_unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := &fakeValidator{err: tt.err}
			uc := NewUseCase(fakeTenants{tenant: tenant}, validator, nopLogger{})

			req := request()
			exclude := uuid.New()
			req.ExcludeID = &exclude

			resp, err := uc.Execute(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *resp)
			assert.Equal(t, &exclude, validator.got.ExcludeID)
		})
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := NewUseCase(fakeTenants{err: tenants.ErrTenantNotFound}, &fakeValidator{}, nopLogger{})
	_, err := uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrTenantNotFound)

	uc = NewUseCase(fakeTenants{tenant: &domain.Tenant{}}, &fakeValidator{err: errors.New("db is down")}, nopLogger{})
	_, err = uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrInternal)

	req := request()
	req.ServiceID = uuid.Nil
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
