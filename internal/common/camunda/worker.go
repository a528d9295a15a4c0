// internal/common/camunda/worker.go
package camunda

import (
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"business-advisor/internal/common/config"
	"business-advisor/internal/common/logger"
	"business-advisor/internal/common/metrics"
)

// JobHandlerFunc is the handler signature every task worker exposes.
type JobHandlerFunc func(client worker.JobClient, job entities.Job)

// Worker is one open job subscription.
type Worker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// StartWorker subscribes handler to taskType. It returns nil when the worker is disabled.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler JobHandlerFunc, log logger.Logger) *Worker {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})
	if !wcfg.Enabled {
		log.Info("worker disabled", nil)
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(Recover(taskType, handler, log)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return &Worker{worker: jobWorker, logger: log, taskType: taskType}
}

// Recover keeps a panicking handler from taking the job worker down. The job is left to
// time out on the broker and be redelivered.
func Recover(taskType string, handler JobHandlerFunc, log logger.Logger) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		defer func() {
			if r := recover(); r != nil {
				metrics.WorkerJobsFailed.WithLabelValues(taskType, "PANIC").Inc()
				log.Error("handler panicked", map[string]interface{}{
					"jobKey": job.GetKey(),
					"panic":  fmt.Sprint(r),
				})
			}
		}()
		handler(client, job)
	}
}

func (w *Worker) TaskType() string { return w.taskType }

// Stop closes the subscription and waits for in-flight jobs. The shared client stays open.
func (w *Worker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
