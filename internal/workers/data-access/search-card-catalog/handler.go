// internal/workers/data-access/search-card-catalog/handler.go
package searchcardcatalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"card-advisor-workers/internal/catalog"
	apperrors "card-advisor-workers/internal/common/errors"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/common/metrics"
	"card-advisor-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "search-card-catalog"
)

// Searcher runs catalog searches. *catalog.SearchIndex satisfies it.
type Searcher interface {
	Search(ctx context.Context, q catalog.SearchQuery) (*catalog.SearchResult, error)
}

type Handler struct {
	config       *Config
	searcher     Searcher
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, searcher Searcher, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		searcher:     searcher,
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
	if err := validate(input); err != nil {
		return nil, apperrors.NewInvalidInputError(err)
	}
	if h.searcher == nil {
		return nil, apperrors.NewElasticsearchConnectionFailedError(errors.New("search index is not configured"))
	}

	result, err := h.searcher.Search(ctx, catalog.SearchQuery{
		Text:         input.Query,
		RewardType:   input.RewardType,
		MaxAnnualFee: input.MaxAnnualFee,
		Size:         input.Size,
	})
	if err != nil {
		return nil, apperrors.Normalize(err)
	}

	out := &Output{
		Cards:     make([]models.CardRecord, 0, len(result.Hits)),
		Hits:      make([]Hit, 0, len(result.Hits)),
		TotalHits: result.Total,
		Took:      result.Took,
	}
	for _, hit := range result.Hits {
		out.Cards = append(out.Cards, hit.Card)
		out.Hits = append(out.Hits, Hit{Name: hit.Card.Name, Score: hit.Score})
	}

	h.logger.Debug("catalog search completed", map[string]interface{}{
		"query":     input.Query,
		"totalHits": out.TotalHits,
		"took":      out.Took,
	})
	return out, nil
}

func validate(input *Input) error {
	if rt := strings.TrimSpace(input.RewardType); rt != "" {
		if models.RewardType(rt).Normalize() == models.RewardOther && !strings.EqualFold(rt, string(models.RewardOther)) {
			return fmt.Errorf("unknown rewardType %q", input.RewardType)
		}
	}
	if input.MaxAnnualFee != nil && *input.MaxAnnualFee < 0 {
		return errors.New("maxAnnualFee cannot be negative")
	}
	if input.Size < 0 {
		return errors.New("size cannot be negative")
	}
	return nil
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
