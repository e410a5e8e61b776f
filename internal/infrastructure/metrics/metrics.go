package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Event ledger metrics
	EventsCreated  prometheus.Counter
	LedgerEntries  *prometheus.CounterVec
	WaterfallDrops prometheus.Counter
	EntryAmountARS prometheus.Histogram

	// Register metrics
	RegisterEntries  *prometheus.CounterVec
	SalesCompleted   prometheus.Counter
	ApprovalsGranted *prometheus.CounterVec
	ApprovalsPending prometheus.Gauge

	// Cash count metrics
	CashCountsCreated   *prometheus.CounterVec
	DiscrepanciesFound  prometheus.Counter
	DiscrepancyAmount   prometheus.Histogram

	// Notification metrics
	IntentsDispatched *prometheus.CounterVec
	IntentsDropped    prometheus.Counter

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Event ledger metrics
		EventsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caja_events_created_total",
			Help: "Total number of events created",
		}),
		LedgerEntries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_ledger_entries_total",
				Help: "Total ledger entries appended by kind",
			},
			[]string{"kind"},
		),
		WaterfallDrops: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caja_waterfall_drops_total",
			Help: "Total payments that overflowed all buckets",
		}),
		EntryAmountARS: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caja_entry_amount_ars",
			Help:    "Ledger entry amounts in ARS",
			Buckets: []float64{100, 1000, 10000, 50000, 100000, 500000, 1000000},
		}),

		// Register metrics
		RegisterEntries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_register_entries_total",
				Help: "Total register entries created by register",
			},
			[]string{"register"},
		),
		SalesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caja_sales_completed_total",
			Help: "Total shop sales recorded",
		}),
		ApprovalsGranted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_approvals_total",
				Help: "Total approval decisions by role and outcome",
			},
			[]string{"role", "decision"},
		),
		ApprovalsPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "caja_approvals_pending",
			Help: "Current number of entries awaiting approval",
		}),

		// Cash count metrics
		CashCountsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_cash_counts_total",
				Help: "Total cash counts by status",
			},
			[]string{"status"},
		),
		DiscrepanciesFound: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caja_discrepancies_total",
			Help: "Total cash counts that exceeded the discrepancy threshold",
		}),
		DiscrepancyAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caja_discrepancy_amount_ars",
			Help:    "Absolute discrepancy amounts in ARS",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000},
		}),

		// Notification metrics
		IntentsDispatched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_intents_dispatched_total",
				Help: "Total notification intents dispatched by type",
			},
			[]string{"type"},
		),
		IntentsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caja_intents_dropped_total",
			Help: "Total notification intents dropped",
		}),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "caja_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "caja_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
	}
}
