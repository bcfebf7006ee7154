// Package metrics defines the Prometheus collectors for the coin ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger holds the collectors updated by the ledger service.
type Ledger struct {
	Transactions      *prometheus.CounterVec
	Coins             *prometheus.CounterVec
	Rejections        *prometheus.CounterVec
	Redemptions       prometheus.Counter
	RewardsUsed       prometheus.Counter
	ReconcileMismatch prometheus.Gauge
	OperationDuration *prometheus.HistogramVec
}

// New registers the ledger collectors with reg. Pass prometheus.DefaultRegisterer
// in binaries and a fresh registry in tests.
func New(reg prometheus.Registerer) *Ledger {
	factory := promauto.With(reg)
	return &Ledger{
		Transactions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coin_ledger",
			Name:      "transactions_total",
			Help:      "Committed ledger transactions by direction and source.",
		}, []string{"direction", "source"}),
		Coins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coin_ledger",
			Name:      "coins_total",
			Help:      "Coins moved by committed transactions, by direction.",
		}, []string{"direction"}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coin_ledger",
			Name:      "rejections_total",
			Help:      "Operations rejected without mutation, by reason.",
		}, []string{"reason"}),
		Redemptions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "coin_ledger",
			Name:      "redemptions_total",
			Help:      "Rewards granted by successful redemptions.",
		}),
		RewardsUsed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "coin_ledger",
			Name:      "rewards_used_total",
			Help:      "User rewards marked as used.",
		}),
		ReconcileMismatch: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "coin_ledger",
			Name:      "reconcile_mismatched_accounts",
			Help:      "Accounts whose balance differed from their history at the last reconciliation.",
		}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "coin_ledger",
			Name:      "operation_duration_seconds",
			Help:      "Latency of ledger operations including storage round trips.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// Nop returns collectors registered nowhere, for callers that do not export metrics.
func Nop() *Ledger {
	return New(prometheus.NewRegistry())
}
