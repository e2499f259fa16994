package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках ничего не пишется
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbQueryErrors     *prometheus.CounterVec
	dbOpenConnections *prometheus.GaugeVec
	dbInUse           *prometheus.GaugeVec
	dbIdle            *prometheus.GaugeVec
	dbWaitCount       *prometheus.GaugeVec

	bookingRejections    *prometheus.CounterVec
	noShowsMarked        *prometheus.CounterVec
	noShowFeesWaived     *prometheus.CounterVec
	reputationRecoveries *prometheus.CounterVec
	batchRuns            *prometheus.CounterVec

	serviceName string
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return newWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в отдельном registry (для тестов)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	return newWithRegisterer(serviceName, reg)
}

func newWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		dbQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		dbOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		dbInUse: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		dbIdle: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		dbWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		bookingRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_rejections_total",
			Help: "Booking attempts rejected by validation, reputation or conflicts",
		}, []string{"service", "kind"}),
		noShowsMarked: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "no_shows_marked_total",
			Help: "Appointments marked as no-show",
		}, []string{"service", "fee_applied"}),
		noShowFeesWaived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "no_show_fees_waived_total",
			Help: "No-show fees waived",
		}, []string{"service"}),
		reputationRecoveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reputation_recoveries_total",
			Help: "Owners whose reputation score was raised by the recovery job",
		}, []string{"service"}),
		batchRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "batch_job_runs_total",
			Help: "Batch job runs per tenant by outcome",
		}, []string{"service", "job", "outcome"}),
	}
}

// RecordHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// RecordDBQuery записывает длительность (и ошибку) запроса к БД
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(m.serviceName).Set(float64(open))
	m.dbInUse.WithLabelValues(m.serviceName).Set(float64(inUse))
	m.dbIdle.WithLabelValues(m.serviceName).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(m.serviceName).Set(float64(waitCount))
}

// RecordBookingRejection увеличивает счетчик отклоненных бронирований
func (m *Metrics) RecordBookingRejection(kind string) {
	if m == nil {
		return
	}
	m.bookingRejections.WithLabelValues(m.serviceName, kind).Inc()
}

// RecordNoShow увеличивает счетчик отмеченных неявок
func (m *Metrics) RecordNoShow(feeApplied bool) {
	if m == nil {
		return
	}
	m.noShowsMarked.WithLabelValues(m.serviceName, strconv.FormatBool(feeApplied)).Inc()
}

// RecordFeeWaived увеличивает счетчик списанных штрафов
func (m *Metrics) RecordFeeWaived() {
	if m == nil {
		return
	}
	m.noShowFeesWaived.WithLabelValues(m.serviceName).Inc()
}

// RecordReputationRecovery увеличивает счетчик восстановлений репутации
func (m *Metrics) RecordReputationRecovery(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.reputationRecoveries.WithLabelValues(m.serviceName).Add(float64(count))
}

// RecordBatchRun записывает результат запуска batch-задачи
func (m *Metrics) RecordBatchRun(job, outcome string) {
	if m == nil {
		return
	}
	m.batchRuns.WithLabelValues(m.serviceName, job, outcome).Inc()
}
