package world

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Метрики хранилища чанков:
// * world_chunks_loaded — gauge
// * world_edits_queued_total — counter
// * world_flush_duration_seconds — histogram
// * world_remesh_requests_total — counter

type storeMetrics struct {
	chunksLoaded  prometheus.Gauge
	editsQueued   prometheus.Counter
	flushDuration prometheus.Histogram
	remeshTotal   prometheus.Counter
}

var (
	storeMetricsOnce   sync.Once
	sharedStoreMetrics *storeMetrics
)

// newStoreMetrics регистрирует метрики в дефолтном регистре один раз;
// все хранилища процесса делят общий набор.
func newStoreMetrics() *storeMetrics {
	storeMetricsOnce.Do(func() {
		sharedStoreMetrics = registerStoreMetrics()
	})
	return sharedStoreMetrics
}

func registerStoreMetrics() *storeMetrics {
	m := &storeMetrics{
		chunksLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "chunks_loaded",
			Help:      "Число загруженных чанков.",
		}),
		editsQueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "edits_queued_total",
			Help:      "Число правок блоков, поставленных в очередь.",
		}),
		flushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "world",
			Name:      "flush_duration_seconds",
			Help:      "Длительность FlushAll за тик.",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
		remeshTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "remesh_requests_total",
			Help:      "Число позиций, отправленных на ремеш после флаша.",
		}),
	}

	prometheus.MustRegister(m.chunksLoaded, m.editsQueued, m.flushDuration, m.remeshTotal)
	return m
}
