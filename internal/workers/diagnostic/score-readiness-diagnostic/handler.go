// internal/workers/diagnostic/score-readiness-diagnostic/handler.go
package scorereadinessdiagnostic

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "business-advisor/internal/common/errors"
	"business-advisor/internal/common/logger"
	"business-advisor/internal/common/metrics"
	"business-advisor/internal/common/validation"
	"business-advisor/internal/diagnostic"
)

const (
	TaskType = "score-readiness-diagnostic"
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
	if len(config.Catalog.Sections) == 0 {
		config.Catalog = diagnostic.DefaultCatalog()
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
	_, span := otel.Tracer("business-advisor/diagnostic").Start(ctx, "diagnostic.score")
	defer span.End()

	scores, err := diagnostic.ScoreAnswers(diagnostic.AnswerSet(input.Answers), h.config.Catalog)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	recs, err := diagnostic.Recommend(scores)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	exitReady := diagnostic.ExitReady(scores)
	span.SetAttributes(attribute.Int("overall", scores.Overall.Percentage), attribute.Bool("exitReady", exitReady))

	h.observe(scores, exitReady)
	h.logger.Info("readiness diagnostic scored", map[string]interface{}{
		"overall":   scores.Overall.Percentage,
		"exitReady": exitReady,
	})

	return &Output{
		Scores:          toScores(scores),
		Recommendations: toRecommendations(recs),
		ExitReady:       exitReady,
	}, nil
}

func (h *Handler) observe(scores diagnostic.Scores, exitReady bool) {
	for id, s := range scores.Sections {
		metrics.ReadinessPercentage.WithLabelValues(string(id)).Observe(float64(s.Percentage))
	}
	metrics.ReadinessPercentage.WithLabelValues("overall").Observe(float64(scores.Overall.Percentage))
	metrics.ExitReadyTotal.WithLabelValues(strconv.FormatBool(exitReady)).Inc()
}

func toScores(s diagnostic.Scores) Scores {
	out := Scores{
		Sections: make(map[string]SectionScore, len(s.Sections)),
		Overall:  toScore(s.Overall),
	}
	for id, sec := range s.Sections {
		out.Sections[string(id)] = SectionScore{Score: toScore(sec.Score), Title: sec.Title}
	}
	return out
}

func toScore(s diagnostic.Score) Score {
	return Score{Raw: s.Raw, Percentage: s.Percentage, Band: diagnostic.Band(s.Percentage)}
}

func toRecommendations(recs []diagnostic.Recommendation) []Recommendation {
	out := make([]Recommendation, len(recs))
	for i, r := range recs {
		out[i] = Recommendation{Type: string(r.Type), Priority: string(r.Priority), Text: r.Text}
	}
	return out
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
