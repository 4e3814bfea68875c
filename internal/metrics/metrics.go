// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "qisst"

var (
	// RPCRequests counts RPCs by procedure and Connect code ("ok" on success).
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "RPC calls handled, by procedure and result code.",
	}, []string{"procedure", "code"})

	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "RPC handling latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	// BookActions counts applied mutations by action and outcome (applied|rejected).
	BookActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "book_actions_total",
		Help:      "Book mutations by action and outcome.",
	}, []string{"action", "outcome"})

	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "persist_failures_total",
		Help:      "Snapshot saves rejected by the persistence store.",
	})

	// Degraded is 1 while the last snapshot save failed.
	Degraded = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "persistence_degraded",
		Help:      "1 when the last snapshot save failed, 0 otherwise.",
	})

	// SnapshotRecords tracks the size of each snapshot collection.
	SnapshotRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_records",
		Help:      "Number of records per snapshot collection.",
	}, []string{"collection"})

	// BackupOperations counts remote backup pushes and pulls by result.
	BackupOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backup_operations_total",
		Help:      "Remote backup operations by kind (push|pull) and result.",
	}, []string{"operation", "result"})

	LastBackupTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backup_last_success_timestamp_seconds",
		Help:      "Unix time of the last successful backup push.",
	})

	// CycleAlerts counts alerts raised by the scheduled sweep.
	CycleAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cycle_alerts_total",
		Help:      "Cycle alerts raised by the scheduled sweep.",
	})
)
