// internal/workers/recommendation/calculate-card-score/handler.go
package calculatecardscore

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "card-advisor-workers/internal/common/errors"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/common/metrics"
	"card-advisor-workers/internal/engine"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-card-score"
)

type Handler struct {
	config       *Config
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		errorHandler: apperrors.NewErrorHandler(l),
		logger:       l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, apperrors.NewInvalidInputError(err))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}
	h.completeJob(ctx, client, job, output)
}

// Execute scores one card against one profile.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input.UserProfile == nil {
		return nil, apperrors.NewInvalidProfileError("userProfile is required")
	}
	if input.Card == nil {
		return nil, apperrors.NewInvalidInputError(errors.New("card is required"))
	}

	breakdown := engine.Breakdown(*input.UserProfile, *input.Card)
	raw := engine.Total(breakdown)
	score := raw
	if h.config.NormalizeScores {
		score = engine.NormalizeScore(raw)
	}

	h.logger.Debug("card scored", map[string]interface{}{
		"card":     input.Card.Name,
		"rawScore": raw,
	})

	return &Output{
		CardName:  input.Card.Name,
		Score:     score,
		RawScore:  raw,
		Eligible:  breakdown.IncomeEligible && breakdown.CreditScoreEligible,
		Breakdown: breakdown,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}
