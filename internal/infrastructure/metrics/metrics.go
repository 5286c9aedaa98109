package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsCreated *prometheus.CounterVec
	TransactionsEdited  prometheus.Counter
	TransactionsDeleted prometheus.Counter
	TransactionAmount   prometheus.Histogram
	TransactionErrors   *prometheus.CounterVec

	// Settlement metrics
	SettlementsCreated prometheus.Counter
	SettlementsNoOp    prometheus.Counter

	// Balance metrics
	BalanceComputations prometheus.Counter
	SnapshotSize        prometheus.Histogram

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transaction metrics
		TransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splittab_transactions_created_total",
				Help: "Total number of transactions recorded, by kind",
			},
			[]string{"kind"},
		),
		TransactionsEdited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splittab_transactions_edited_total",
			Help: "Total number of transaction edits",
		}),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splittab_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "splittab_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splittab_transaction_errors_total",
				Help: "Total number of transaction errors by type",
			},
			[]string{"error_type"},
		),

		// Settlement metrics
		SettlementsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splittab_settlements_created_total",
			Help: "Total number of settlement repayments recorded",
		}),
		SettlementsNoOp: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splittab_settlements_noop_total",
			Help: "Total number of settle-up requests for already settled pairs",
		}),

		// Balance metrics
		BalanceComputations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splittab_balance_computations_total",
			Help: "Total number of balance derivations from the transaction snapshot",
		}),
		SnapshotSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "splittab_snapshot_size",
			Help:    "Number of transactions folded per balance derivation",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
		}),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splittab_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "splittab_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "splittab_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splittab_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splittab_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splittab_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splittab_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
