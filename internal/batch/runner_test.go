package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTenants struct {
	tenants []*domain.Tenant
	err     error
}

func (f fakeTenants) ListActive(context.Context) ([]*domain.Tenant, error) {
	return f.tenants, f.err
}

type fakeMetrics struct {
	outcomes []string
}

func (m *fakeMetrics) RecordBatchRun(job, outcome string) {
	m.outcomes = append(m.outcomes, job+":"+outcome)
}

func tenants(n int) []*domain.Tenant {
	out := make([]*domain.Tenant, n)
	for i := range out {
		out[i] = &domain.Tenant{ID: uuid.New()}
	}
	return out
}

func TestRunner_Run(t *testing.T) {
	metrics := &fakeMetrics{}
	list := tenants(3)
	runner := NewRunner(fakeTenants{tenants: list}, time.Minute, metrics, nopLogger{})

	var seen []uuid.UUID
	runner.Register("noshow", func(_ context.Context, tenant *domain.Tenant) (domain.BatchReport, error) {
		seen = append(seen, tenant.ID)
		return domain.BatchReport{Detected: 2, Applied: 1, Errors: 1}, nil
	})

	report, err := runner.Run(context.Background(), "noshow")
	require.NoError(t, err)
	assert.Equal(t, domain.BatchReport{Job: "noshow", Detected: 6, Applied: 3, Errors: 3}, report)
	assert.Len(t, seen, 3)
	assert.Equal(t, []string{"noshow:partial"}, metrics.outcomes)
}

func TestRunner_Run_TenantFailureContinues(t *testing.T) {
	metrics := &fakeMetrics{}
	list := tenants(3)
	runner := NewRunner(fakeTenants{tenants: list}, 0, metrics, nopLogger{})

	calls := 0
	runner.Register("reputation", func(_ context.Context, tenant *domain.Tenant) (domain.BatchReport, error) {
		calls++
		if tenant.ID == list[0].ID {
			return domain.BatchReport{}, errors.New("db is down")
		}
		return domain.BatchReport{Detected: 1, Applied: 1}, nil
	})

	report, err := runner.Run(context.Background(), "reputation")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, report.Applied)
	assert.Equal(t, 1, report.Errors)
}

func TestRunner_Run_Success(t *testing.T) {
	metrics := &fakeMetrics{}
	runner := NewRunner(fakeTenants{tenants: tenants(1)}, 0, metrics, nopLogger{})
	runner.Register("vaccination", func(context.Context, *domain.Tenant) (domain.BatchReport, error) {
		return domain.BatchReport{Detected: 4, Applied: 4}, nil
	})

	_, err := runner.Run(context.Background(), "vaccination")
	require.NoError(t, err)
	assert.Equal(t, []string{"vaccination:success"}, metrics.outcomes)
}

func TestRunner_Run_Errors(t *testing.T) {
	metrics := &fakeMetrics{}

	runner := NewRunner(fakeTenants{}, 0, metrics, nopLogger{})
	_, err := runner.Run(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnknownJob)

	listErr := errors.New("db is down")
	runner = NewRunner(fakeTenants{err: listErr}, 0, metrics, nopLogger{})
	runner.Register("noshow", func(context.Context, *domain.Tenant) (domain.BatchReport, error) {
		return domain.BatchReport{}, nil
	})
	_, err = runner.Run(context.Background(), "noshow")
	assert.ErrorIs(t, err, listErr)
	assert.Equal(t, []string{"noshow:failed"}, metrics.outcomes)
}

func TestRunner_Run_Timeout(t *testing.T) {
	metrics := &fakeMetrics{}
	runner := NewRunner(fakeTenants{tenants: tenants(2)}, 10*time.Millisecond, metrics, nopLogger{})
	runner.Register("noshow", func(ctx context.Context, _ *domain.Tenant) (domain.BatchReport, error) {
		<-ctx.Done()
		return domain.BatchReport{}, ctx.Err()
	})

	_, err := runner.Run(context.Background(), "noshow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []string{"noshow:timeout"}, metrics.outcomes)
}
