// internal/workers/market/compute-market-indicators/handler.go
package computemarketindicators

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "business-advisor/internal/common/errors"
	"business-advisor/internal/common/logger"
	"business-advisor/internal/common/metrics"
	"business-advisor/internal/common/validation"
	"business-advisor/internal/market"
)

const (
	TaskType = "compute-market-indicators"
)

type Handler struct {
	config       *Config
	logger       logger.Logger
	validator    *validation.Validator
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, validator *validation.Validator, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       log,
		validator:    validator,
		errorHandler: apperrors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	timer := metrics.StartJob(TaskType)

	if h.validator != nil {
		if err := h.validator.Check(TaskType, job.Variables); err != nil {
			h.failJob(client, job, timer, err)
			return
		}
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, timer, apperrors.NewInvalidInputError("parse input: "+err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, timer, err)
		return
	}

	h.completeJob(client, job, output)
	timer.Completed()
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ind, err := market.Compute(input.Series)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("market indicators computed", map[string]interface{}{
		"points": len(input.Series),
		"latest": ind.Latest.Month,
	})

	return &Output{Indicators: Indicators{
		DealVolumeChangePct: ind.DealVolumeChangePct,
		ValueChangePct:      ind.ValueChangePct,
		MultipleChange:      ind.MultipleChange,
		SentimentChange:     ind.SentimentChange,
		DealTrend:           market.Trend(ind.DealVolumeChangePct),
		ValueTrend:          market.Trend(ind.ValueChangePct),
		Latest:              ind.Latest,
		Previous:            ind.Previous,
	}}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, timer *metrics.JobTimer, err error) {
	timer.Failed(string(apperrors.FromDomain(err).Code))
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
