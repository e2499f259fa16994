// Package batch запускает периодические задачи по всем активным тенантам
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// ErrUnknownJob возвращается для неизвестного имени задачи
var ErrUnknownJob = errors.New("batch: unknown job")

// JobFunc обрабатывает одного тенанта
type JobFunc func(ctx context.Context, tenant *domain.Tenant) (domain.BatchReport, error)

// TenantLister источник активных тенантов
type TenantLister interface {
	ListActive(ctx context.Context) ([]*domain.Tenant, error)
}

// Metrics счетчик запусков задач
type Metrics interface {
	RecordBatchRun(job, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Runner выполняет задачу последовательно по тенантам
// Ошибка одного тенанта учитывается в отчете, обход продолжается.
type Runner struct {
	tenants TenantLister
	jobs    map[string]JobFunc
	timeout time.Duration
	metrics Metrics
	logger  Logger
}

// NewRunner создает новый экземпляр раннера
func NewRunner(tenants TenantLister, timeout time.Duration, metrics Metrics, logger Logger) *Runner {
	return &Runner{
		tenants: tenants,
		jobs:    make(map[string]JobFunc),
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
	}
}

// Register добавляет задачу под именем name
func (r *Runner) Register(name string, job JobFunc) {
	r.jobs[name] = job
}

// Run выполняет задачу name по всем активным тенантам
func (r *Runner) Run(ctx context.Context, name string) (domain.BatchReport, error) {
	total := domain.BatchReport{Job: name}

	job, ok := r.jobs[name]
	if !ok {
		return total, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	ctx, span := otel.Tracer("petcare/batch").Start(ctx, "batch."+name)
	defer span.End()

	started := time.Now()
	r.logger.Info("Batch %s: started", name)

	tenants, err := r.tenants.ListActive(ctx)
	if err != nil {
		r.logger.Error("Batch %s: failed to list tenants: %v", name, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "list tenants")
		r.metrics.RecordBatchRun(name, "failed")
		return total, err
	}

	for _, tenant := range tenants {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Batch %s: stopped before tenant=%s: %v", name, tenant.ID, err)
			span.SetStatus(codes.Error, "timeout")
			r.metrics.RecordBatchRun(name, "timeout")
			return total, err
		}

		report, err := job(ctx, tenant)
		total.Add(report)
		if err != nil {
			r.logger.Error("Batch %s: tenant=%s failed: %v", name, tenant.ID, err)
			total.Errors++
			continue
		}
	}

	span.SetAttributes(
		attribute.Int("batch.tenants", len(tenants)),
		attribute.Int("batch.detected", total.Detected),
		attribute.Int("batch.applied", total.Applied),
		attribute.Int("batch.errors", total.Errors),
	)

	outcome := "success"
	if total.Errors > 0 {
		outcome = "partial"
	}
	r.metrics.RecordBatchRun(name, outcome)

	r.logger.Info("Batch %s: finished in %s tenants=%d detected=%d applied=%d errors=%d",
		name, time.Since(started).Round(time.Millisecond), len(tenants), total.Detected, total.Applied, total.Errors)
	return total, nil
}
