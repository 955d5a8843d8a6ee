// internal/workers/data-access/load-card-catalog/handler.go
package loadcardcatalog

import (
	"context"
	"encoding/json"
	"errors"

	"card-advisor-workers/internal/catalog"
	apperrors "card-advisor-workers/internal/common/errors"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "load-card-catalog"

	sourceName = "store"
)

// Invalidator is implemented by caching sources.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Handler struct {
	config       *Config
	source       catalog.Source
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, source catalog.Source, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		source:       source,
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
	if job.Variables != "" {
		if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
			h.errorHandler.HandleJobError(ctx, client, job, apperrors.NewInvalidInputError(err))
			return
		}
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}
	h.completeJob(ctx, client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if h.source == nil {
		return nil, apperrors.NewCatalogLoadFailedError(sourceName, errors.New("no catalog store configured"))
	}

	refreshed := false
	if input.Refresh {
		if inv, ok := h.source.(Invalidator); ok {
			if err := inv.Invalidate(ctx); err != nil {
				// A stale entry only delays the refresh until the TTL expires.
				h.logger.Warn("catalog cache invalidation failed", map[string]interface{}{"error": err.Error()})
			} else {
				refreshed = true
			}
		}
	}

	cards, err := h.source.LoadAll(ctx)
	if err != nil {
		if stdErr, ok := apperrors.AsStandardError(err); ok {
			return nil, stdErr
		}
		return nil, apperrors.NewCatalogLoadFailedError(sourceName, err)
	}

	h.logger.Info("catalog loaded", map[string]interface{}{"cardCount": len(cards), "refreshed": refreshed})
	return &Output{Catalog: cards, CardCount: len(cards), Refreshed: refreshed}, nil
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
