// internal/workers/recommendation/simulate-card-reward/handler.go
package simulatecardreward

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "card-advisor-workers/internal/common/errors"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/common/metrics"
	"card-advisor-workers/internal/engine"
	"card-advisor-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "simulate-card-reward"
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

// Execute estimates the yearly reward of one card for one profile, with the
// contribution of each spending category.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input.UserProfile == nil {
		return nil, apperrors.NewInvalidProfileError("userProfile is required")
	}
	if input.Card == nil {
		return nil, apperrors.NewInvalidInputError(errors.New("card is required"))
	}
	profile, card := *input.UserProfile, *input.Card

	perCategory := make(map[string]float64, len(models.SpendingCategories))
	for _, cat := range models.SpendingCategories {
		perCategory[string(cat)] = engine.SimulateAnnualReward(onlyCategory(profile, cat), card)
	}

	annual := engine.SimulateAnnualReward(profile, card)
	return &Output{
		CardName:         card.Name,
		RewardType:       card.RewardType.Normalize(),
		AnnualReward:     annual,
		RewardSimulation: engine.RenderRewardSimulation(annual, card.RewardType),
		CategoryRewards:  perCategory,
	}, nil
}

// onlyCategory keeps a single category's spend. The simulation is a sum over
// categories, so this isolates that category's share.
func onlyCategory(p models.UserProfile, cat models.SpendingCategory) models.UserProfile {
	out := p
	out.SpendingFuel, out.SpendingTravel, out.SpendingGroceries, out.SpendingDining = 0, 0, 0, 0
	switch cat {
	case models.CategoryFuel:
		out.SpendingFuel = p.SpendingFuel
	case models.CategoryTravel:
		out.SpendingTravel = p.SpendingTravel
	case models.CategoryGroceries:
		out.SpendingGroceries = p.SpendingGroceries
	case models.CategoryDining:
		out.SpendingDining = p.SpendingDining
	}
	return out
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
