package observability

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tangutlex_lookups_total",
		Help: "Total number of lookup queries, by direction.",
	}, []string{"direction"})

	LookupSegmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tangutlex_lookup_segments_total",
		Help: "Query terms or characters looked up, by direction and outcome (found, missing).",
	}, []string{"direction", "outcome"})

	LookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tangutlex_lookup_seconds",
		Help:    "Time spent answering a lookup query.",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
	}, []string{"direction"})

	DatasetLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tangutlex_dataset_load_seconds",
		Help:    "Time spent decoding and indexing the dataset.",
		Buckets: prometheus.DefBuckets,
	})

	DatasetEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tangutlex_dataset_entries",
		Help: "Number of entries in the active collection.",
	})

	DatasetMissingPhonetics = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tangutlex_dataset_missing_phonetics",
		Help: "Entries in the active collection without a phonetic transcription.",
	})

	DatasetSkippedRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tangutlex_dataset_skipped_records",
		Help: "Records dropped from the active collection for lacking a character.",
	})

	DatasetReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tangutlex_dataset_reloads_total",
		Help: "Dataset reload attempts, by result (ok, error).",
	}, []string{"result"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tangutlex_watcher_events_total",
		Help: "Total number of file system events received by the dataset watcher.",
	})
)

// WriteTextfile dumps the default registry in the Prometheus text format so a
// node_exporter textfile collector can pick it up.
func WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics directory %q: %w", dir, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile %q: %w", path, err)
	}
	return nil
}
