// internal/common/metrics/metrics.go
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ValuationTotalValue = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "valuation_total_value",
			Help:    "Estimated business values produced by the valuation worker",
			Buckets: prometheus.ExponentialBuckets(100_000, 2.5, 10),
		},
		[]string{"industry"},
	)

	ReadinessPercentage = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readiness_score_percentage",
			Help:    "Readiness percentages per section and overall",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
		[]string{"section"},
	)

	ExitReadyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_exit_ready_total",
			Help: "Diagnostics scored, split by whether the business reached the top exit band",
		},
		[]string{"exit_ready"},
	)
)

// JobObserver is told about every finished job, with status "completed" or the failure's error code.
type JobObserver func(taskType, status string, duration time.Duration)

var (
	observerMu  sync.RWMutex
	jobObserver JobObserver
)

// SetJobObserver forwards finished jobs to o in addition to the Prometheus collectors. Nil disables it.
func SetJobObserver(o JobObserver) {
	observerMu.Lock()
	defer observerMu.Unlock()
	jobObserver = o
}

// JobTimer tracks one job from start to completion or failure.
type JobTimer struct {
	taskType string
	start    time.Time
}

func StartJob(taskType string) *JobTimer {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{taskType: taskType, start: time.Now()}
}

func (t *JobTimer) Completed() {
	t.finish("completed")
	WorkerJobsCompleted.WithLabelValues(t.taskType).Inc()
}

func (t *JobTimer) Failed(errorCode string) {
	t.finish(errorCode)
	WorkerJobsFailed.WithLabelValues(t.taskType, errorCode).Inc()
}

func (t *JobTimer) finish(status string) {
	elapsed := time.Since(t.start)
	WorkerJobsActive.WithLabelValues(t.taskType).Dec()
	WorkerJobDuration.WithLabelValues(t.taskType).Observe(elapsed.Seconds())

	observerMu.RLock()
	observe := jobObserver
	observerMu.RUnlock()
	if observe != nil {
		observe(t.taskType, status, elapsed)
	}
}
