package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestJobTimer_Completed(t *testing.T) {
	const taskType = "metrics-test-completed"

	timer := StartJob(taskType)
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(taskType)))

	timer.Completed()
	assert.Equal(t, 0.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(taskType)))
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues(taskType)))
}

func TestJobTimer_Failed(t *testing.T) {
	const taskType = "metrics-test-failed"

	StartJob(taskType).Failed("INVALID_INPUT")
	StartJob(taskType).Failed("INVALID_INPUT")

	assert.Equal(t, 2.0, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues(taskType, "INVALID_INPUT")))
	assert.Equal(t, 0.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(taskType)))
}

func TestSetJobObserver(t *testing.T) {
	type call struct{ taskType, status string }
	var calls []call
	SetJobObserver(func(taskType, status string, d time.Duration) {
		assert.GreaterOrEqual(t, d, time.Duration(0))
		calls = append(calls, call{taskType, status})
	})
	t.Cleanup(func() { SetJobObserver(nil) })

	StartJob("metrics-test-observer").Completed()
	StartJob("metrics-test-observer").Failed("DIVISION_BY_ZERO")

	assert.Equal(t, []call{
		{"metrics-test-observer", "completed"},
		{"metrics-test-observer", "DIVISION_BY_ZERO"},
	}, calls)
}
