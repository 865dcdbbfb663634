package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	snapshotsAppended = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitconomy",
		Subsystem: "ledger",
		Name:      "snapshots_appended_total",
		Help:      "Number of asset snapshots appended, by trigger kind.",
	}, []string{"trigger"})
	lastSnapshotGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitconomy",
		Subsystem: "ledger",
		Name:      "last_snapshot_appended_timestamp_seconds",
		Help:      "Unix timestamp of the most recent snapshot append.",
	})
)

func init() {
	prometheus.MustRegister(snapshotsAppended, lastSnapshotGauge)
}

// RecordSnapshotAppended updates the ledger append counters.
func RecordSnapshotAppended(trigger string) {
	snapshotsAppended.WithLabelValues(trigger).Inc()
	lastSnapshotGauge.Set(float64(time.Now().Unix()))
}
