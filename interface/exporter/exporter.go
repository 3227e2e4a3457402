package exporter

import (
	"rewards/domain"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	METRIC_ERROR_COUNT          = "error_count"
	METRIC_OPERATIONS_TOTAL     = "operations_total"
	METRIC_OPERATION_DURATION   = "operation_duration_seconds"
	METRIC_VAULT_BALANCE        = "vault_balance"
	METRIC_SUPPLY               = "supply"
	METRIC_LAST_DISTRIBUTION    = "last_distribution_timestamp_seconds"
	METRIC_NEXT_DISTRIBUTION_IN = "next_distribution_in_seconds"
	METRIC_TAX_RATE             = "tax_rate_basis_points"

	StatusOk       = "ok"
	StatusRejected = "rejected"
	StatusError    = "error"

	VaultTax    = "tax"
	VaultReward = "reward"
)

const (
	namespace = "rewards"
	subsystem = "engine"
)

var (
	errorCount = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      METRIC_ERROR_COUNT,
		Help:      "Counts the number of operations that failed for reasons other than a policy rejection",
	})

	operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      METRIC_OPERATIONS_TOTAL,
		Help:      "Counts the invoked operations by outcome",
	}, []string{"operation", "status"})

	operationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      METRIC_OPERATION_DURATION,
		Help:      "Duration of invoked operations",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
	}, []string{"operation"})

	vaultBalance = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      METRIC_VAULT_BALANCE,
		Help:      "Balance of a program vault in base units",
	}, []string{"vault"})

	supply = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      METRIC_SUPPLY,
		Help:      "Circulating supply of the governed asset in base units",
	})

	lastDistribution = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      METRIC_LAST_DISTRIBUTION,
		Help:      "Unix time of the last successful distribution",
	})

	nextDistributionIn = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      METRIC_NEXT_DISTRIBUTION_IN,
		Help:      "Seconds until the next distribution may run",
	})

	taxRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      METRIC_TAX_RATE,
		Help:      "Configured transfer tax rate",
	})

	initOnce sync.Once
)

// Init registers the metrics with the default registerer.
func Init() {
	initOnce.Do(func() {
		Register(prometheus.DefaultRegisterer)
	})
}

func Register(registerer prometheus.Registerer) {
	registerer.MustRegister(
		errorCount,
		operations,
		operationDuration,
		vaultBalance,
		supply,
		lastDistribution,
		nextDistributionIn,
		taxRate,
	)
}

func IncErrorCount() {
	errorCount.Inc()
}

func ObserveOperation(operation, status string, duration time.Duration) {
	operations.WithLabelValues(operation, status).Inc()
	operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func GetOperationCounter(operation, status string) prometheus.Counter {
	return operations.WithLabelValues(operation, status)
}

func GetVaultGauge(vault string) prometheus.Gauge {
	return vaultBalance.WithLabelValues(vault)
}

func SetStatistic(result *domain.StatisticResult) {
	vaultBalance.WithLabelValues(VaultTax).Set(float64(result.TaxVaultBalance))
	vaultBalance.WithLabelValues(VaultReward).Set(float64(result.RewardVaultBalance))
	supply.Set(float64(result.Supply))
	lastDistribution.Set(float64(result.State.LastDistributionTimestamp))
	nextDistributionIn.Set(float64(result.SecondsUntilDistribution()))
	taxRate.Set(float64(result.State.TaxRateBasisPoints))
}
