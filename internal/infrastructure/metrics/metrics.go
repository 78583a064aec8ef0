package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Withdrawal metrics
	WithdrawalsCompleted   prometheus.Counter
	WithdrawalsCompensated prometheus.Counter
	WithdrawalConflicts    prometheus.Counter
	WithdrawalDuration     prometheus.Histogram
	WithdrawalAmount       prometheus.Histogram
	WithdrawalErrors       *prometheus.CounterVec

	// Plan metrics
	PlansCreated          prometheus.Counter
	PlanStatusTransitions *prometheus.CounterVec
	ContributionsRecorded prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

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
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Withdrawal metrics
		WithdrawalsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stash_withdrawals_completed_total",
			Help: "Total number of completed withdrawals",
		}),
		WithdrawalsCompensated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stash_withdrawals_compensated_total",
			Help: "Total number of withdrawals rolled back after side effects",
		}),
		WithdrawalConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stash_withdrawal_conflicts_total",
			Help: "Total number of optimistic-concurrency conflicts on plan saves",
		}),
		WithdrawalDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stash_withdrawal_duration_seconds",
			Help:    "Duration of withdrawal operations",
			Buckets: prometheus.DefBuckets,
		}),
		WithdrawalAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stash_withdrawal_amount_minor_units",
			Help:    "Withdrawal amounts in minor units",
			Buckets: []float64{1000, 10000, 100000, 1000000, 10000000, 100000000},
		}),
		WithdrawalErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stash_withdrawal_errors_total",
				Help: "Total number of withdrawal errors by type",
			},
			[]string{"error_type"},
		),

		// Plan metrics
		PlansCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stash_plans_created_total",
			Help: "Total number of savings plans created",
		}),
		PlanStatusTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stash_plan_status_transitions_total",
				Help: "Total plan status transitions",
			},
			[]string{"to"},
		),
		ContributionsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stash_contributions_recorded_total",
			Help: "Total number of plan contributions recorded",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stash_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stash_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stash_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stash_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "stash_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stash_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stash_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stash_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stash_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stash_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stash_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stash_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
