// internal/workers/recommendation/rank-card-recommendations/handler.go
package rankcardrecommendations

import (
	"context"
	"encoding/json"
	"errors"

	"card-advisor-workers/internal/catalog"
	apperrors "card-advisor-workers/internal/common/errors"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/common/metrics"
	"card-advisor-workers/internal/common/observability"
	"card-advisor-workers/internal/engine"
	"card-advisor-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "rank-card-recommendations"
)

var errNoCatalog = errors.New("no catalog in variables and no catalog store configured")

type Handler struct {
	config       *Config
	source       catalog.Source
	obs          *observability.Observability
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the ranking worker. source may be nil when every process
// supplies the catalog in its variables.
func NewHandler(config *Config, source catalog.Source, obs *observability.Observability, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		source:       source,
		obs:          obs,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserProfile == nil {
		return nil, apperrors.NewInvalidProfileError("userProfile is required")
	}
	profile := *input.UserProfile

	cards, from, err := h.catalog(ctx, input)
	if err != nil {
		return nil, err
	}

	excluded := 0
	for _, card := range cards {
		if engine.AlreadyHeld(profile, card) {
			excluded++
		}
	}

	ranker := engine.Ranker{MaxResults: h.config.MaxResults, Normalize: h.config.NormalizeScores}
	if input.MaxResults > 0 && input.MaxResults < ranker.MaxResults {
		ranker.MaxResults = input.MaxResults
	}
	recs := ranker.Rank(profile, cards)

	metrics.RecommendationsServed.Observe(float64(len(recs)))
	metrics.CardsExcluded.Add(float64(excluded))
	h.obs.RecordShortlist(ctx, len(recs))

	h.logger.Info("shortlist ranked", map[string]interface{}{
		"catalogSource": from,
		"catalogSize":   len(cards),
		"excluded":      excluded,
		"returned":      len(recs),
	})

	return &Output{
		Recommendations:     recs,
		RecommendationCount: len(recs),
		CatalogSize:         len(cards),
		ExcludedCount:       excluded,
		TopCategory:         engine.TopCategory(profile),
		CatalogSource:       from,
	}, nil
}

func (h *Handler) catalog(ctx context.Context, input *Input) ([]models.CardRecord, string, error) {
	if len(input.Catalog) > 0 {
		return input.Catalog, CatalogFromVariables, nil
	}
	if h.source == nil {
		return nil, "", apperrors.NewCatalogLoadFailedError(CatalogFromStore, errNoCatalog)
	}

	cards, err := h.source.LoadAll(ctx)
	if err != nil {
		if stdErr, ok := apperrors.AsStandardError(err); ok {
			return nil, "", stdErr
		}
		return nil, "", apperrors.NewCatalogLoadFailedError(CatalogFromStore, err)
	}
	return cards, CatalogFromStore, nil
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
