package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "playcafe_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	sessionOpsTotal  *prometheus.CounterVec
	sessionOpLatency *prometheus.HistogramVec

	reportTotal   *prometheus.CounterVec
	reportLatency *prometheus.HistogramVec

	exportTotal *prometheus.CounterVec

	shiftCloseTotal *prometheus.CounterVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		sessionOpsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "session_ops_total",
				Help: "Total session lifecycle operations by op and result",
			},
			[]string{"op", "result"},
		)
		sessionOpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "session_op_latency_seconds",
				Help:    "Session lifecycle operation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		)

		reportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_generate_total",
				Help: "Total settlement report generations by period and result",
			},
			[]string{"period", "result"},
		)
		reportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_generate_latency_seconds",
				Help:    "Settlement report generation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"period"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)

		shiftCloseTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "shift_close_total",
				Help: "Total shift-end settlements by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			sessionOpsTotal,
			sessionOpLatency,
			reportTotal,
			reportLatency,
			exportTotal,
			shiftCloseTotal,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

func resultLabel(ok bool) string {
	if ok {
		return resultSuccess
	}
	return resultError
}

// ObserveSessionOp records a session lifecycle operation.
func ObserveSessionOp(op string, ok bool, duration time.Duration) {
	if op == "" {
		op = "unknown"
	}
	if sessionOpsTotal != nil {
		sessionOpsTotal.WithLabelValues(op, resultLabel(ok)).Inc()
	}
	if sessionOpLatency != nil {
		sessionOpLatency.WithLabelValues(op).Observe(duration.Seconds())
	}
}

// ObserveReport records a settlement report generation.
func ObserveReport(period string, ok bool, duration time.Duration) {
	if period == "" {
		period = "unknown"
	}
	if reportTotal != nil {
		reportTotal.WithLabelValues(period, resultLabel(ok)).Inc()
	}
	if reportLatency != nil {
		reportLatency.WithLabelValues(period).Observe(duration.Seconds())
	}
}

// ObserveExport records a report export.
func ObserveExport(format string, ok bool) {
	if format == "" {
		format = "unknown"
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, resultLabel(ok)).Inc()
	}
}

// ObserveShiftClose records a shift-end settlement.
func ObserveShiftClose(ok bool) {
	if shiftCloseTotal != nil {
		shiftCloseTotal.WithLabelValues(resultLabel(ok)).Inc()
	}
}
