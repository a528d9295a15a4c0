// internal/workers/valuation/calculate-business-valuation/handler.go
package calculatebusinessvaluation

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "business-advisor/internal/common/errors"
	"business-advisor/internal/common/logger"
	"business-advisor/internal/common/metrics"
	"business-advisor/internal/common/validation"
	"business-advisor/internal/valuation"
)

const (
	TaskType = "calculate-business-valuation"
)

type Handler struct {
	config       *Config
	logger       logger.Logger
	validator    *validation.Validator
	errorHandler *apperrors.ErrorHandler
}

// NewHandler builds the handler. validator may be nil, in which case inputs are only decoded.
func NewHandler(config *Config, validator *validation.Validator, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if config.Multipliers == nil {
		config.Multipliers = valuation.DefaultMultipliers()
	}
	if config.Now == nil {
		config.Now = LoadConfig().Now
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

	input, err := h.parseInput(job.Variables)
	if err != nil {
		h.failJob(client, job, timer, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, input)
	if err != nil {
		h.failJob(client, job, timer, err)
		return
	}

	h.completeJob(client, job, output)
	timer.Completed()
}

func (h *Handler) parseInput(variables string) (*Input, error) {
	if h.validator != nil {
		if err := h.validator.Check(TaskType, variables); err != nil {
			return nil, err
		}
	}
	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidInputError("parse input: " + err.Error())
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, span := otel.Tracer("business-advisor/valuation").Start(ctx, "valuation.compute")
	defer span.End()

	year := input.CurrentYear
	if year == 0 {
		year = h.config.Now().Year()
	}

	profile := valuation.BusinessProfile{
		Industry:          valuation.IndustryCode(input.Profile.Industry),
		Revenue:           input.Profile.Revenue,
		EBITDA:            input.Profile.EBITDA,
		GrowthRatePercent: input.Profile.GrowthRate,
		EmployeeCount:     input.Profile.Employees,
		YearsOperating:    input.Profile.YearsOperation,
	}
	span.SetAttributes(attribute.String("industry", input.Profile.Industry), attribute.Int("currentYear", year))

	result, err := valuation.Compute(profile, h.config.Multipliers, year)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	metrics.ValuationTotalValue.WithLabelValues(string(profile.Industry)).Observe(result.TotalValue)
	h.logger.Info("valuation calculated", map[string]interface{}{
		"industry":       profile.Industry,
		"totalValue":     result.TotalValue,
		"ebitdaMultiple": result.EBITDAMultiple,
	})

	return &Output{Valuation: toValuation(profile.Industry, result)}, nil
}

func toValuation(code valuation.IndustryCode, r *valuation.Result) Valuation {
	projection := make([]ProjectionYear, len(r.Projection))
	for i, p := range r.Projection {
		projection[i] = ProjectionYear{Year: p.Year, Revenue: p.Revenue, EBITDA: p.EBITDA, Value: p.Value}
	}
	return Valuation{
		Industry:          string(code),
		IndustryLabel:     code.Label(),
		TotalValue:        r.TotalValue,
		EBITDAMultiple:    r.EBITDAMultiple,
		RevenuePercentage: r.RevenuePercentage,
		Projection:        projection,
	}
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
