package mesher

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Метрики конвейера мешинга:
// * mesher_jobs_total{result} — counter (completed/failed/skipped)
// * mesher_job_duration_seconds — histogram
// * mesher_queue_length — gauge
// * mesher_quads_total — counter

type schedulerMetrics struct {
	jobs        *prometheus.CounterVec
	jobDuration prometheus.Histogram
	queueLength prometheus.Gauge
	quads       prometheus.Counter
}

var (
	metricsOnce   sync.Once
	sharedMetrics *schedulerMetrics
)

// newSchedulerMetrics регистрирует метрики в дефолтном регистре один раз;
// все планировщики процесса делят общий набор.
func newSchedulerMetrics() *schedulerMetrics {
	metricsOnce.Do(func() {
		sharedMetrics = registerSchedulerMetrics()
	})
	return sharedMetrics
}

func registerSchedulerMetrics() *schedulerMetrics {
	m := &schedulerMetrics{
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mesher",
			Name:      "jobs_total",
			Help:      "Число задач мешинга по результату.",
		}, []string{"result"}),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mesher",
			Name:      "job_duration_seconds",
			Help:      "Длительность одной задачи мешинга.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		queueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mesher",
			Name:      "queue_length",
			Help:      "Текущая длина очереди чанков на мешинг.",
		}),
		quads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mesher",
			Name:      "quads_total",
			Help:      "Суммарное число сгенерированных квадов.",
		}),
	}

	prometheus.MustRegister(m.jobs, m.jobDuration, m.queueLength, m.quads)
	return m
}
