package spend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/voxlane/costguard/pkg/spend/cache"
	"github.com/voxlane/costguard/pkg/spend/tier"
)

// Metrics contains Prometheus metrics for the cost-control subsystem.
type Metrics struct {
	// Admission checks
	admissionChecks *prometheus.CounterVec

	// Recorded spend
	costRecorded *prometheus.CounterVec

	// Budget position
	budgetUsage     *prometheus.GaugeVec
	budgetRemaining prometheus.Gauge
	budgetTier      prometheus.Gauge

	// Cache lookups
	cacheLookups *prometheus.CounterVec

	// Persistence
	persistenceFailures prometheus.Counter
	saveDuration        prometheus.Histogram
}

// NewMetrics creates a Metrics instance registered with the given
// registerer. Pass a fresh prometheus.NewRegistry() in tests to avoid
// duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		admissionChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "costguard_admission_checks_total",
				Help: "Total number of admission checks performed",
			},
			[]string{"result"},
		),

		costRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "costguard_cost_recorded_usd_total",
				Help: "Total realized cost recorded, in USD",
			},
			[]string{"service"},
		),

		budgetUsage: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "costguard_budget_usage_usd",
				Help: "Current recorded cost per accounting window, in USD",
			},
			[]string{"window"},
		),

		budgetRemaining: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "costguard_budget_remaining_usd",
				Help: "Remaining daily budget in USD",
			},
		),

		budgetTier: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "costguard_budget_tier",
				Help: "Current budget tier (0=normal, 1=warning, 2=critical, 3=exceeded)",
			},
		),

		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "costguard_cache_lookups_total",
				Help: "Total artifact cache lookups by result",
			},
			[]string{"result"},
		),

		persistenceFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "costguard_persistence_failures_total",
				Help: "Total snapshot saves that did not complete",
			},
		),

		saveDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "costguard_record_duration_seconds",
				Help:    "Duration of cost recording including persistence",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~400ms
			},
		),
	}
}

// RecordAdmission records an admission check outcome.
func (m *Metrics) RecordAdmission(allowed bool) {
	result := "allowed"
	if !allowed {
		result = "denied"
	}
	m.admissionChecks.WithLabelValues(result).Inc()
}

// RecordCost records realized spend for a service.
func (m *Metrics) RecordCost(service string, amount float64) {
	m.costRecorded.WithLabelValues(service).Add(amount)
}

// RecordCacheLookup records a cache lookup outcome.
func (m *Metrics) RecordCacheLookup(result cache.Result) {
	m.cacheLookups.WithLabelValues(string(result)).Inc()
}

// RecordPersistenceFailure records a snapshot save that did not
// complete.
func (m *Metrics) RecordPersistenceFailure() {
	m.persistenceFailures.Inc()
}

// ObserveRecordDuration records how long a cost recording took.
func (m *Metrics) ObserveRecordDuration(seconds float64) {
	m.saveDuration.Observe(seconds)
}

// SetBudgetPosition updates the budget gauges from a usage snapshot.
func (m *Metrics) SetBudgetPosition(dailyTotal, monthlyTotal, remaining float64, t tier.Tier) {
	m.budgetUsage.WithLabelValues("daily").Set(dailyTotal)
	m.budgetUsage.WithLabelValues("monthly").Set(monthlyTotal)
	m.budgetRemaining.Set(remaining)
	m.budgetTier.Set(float64(tier.Severity(t)))
}
