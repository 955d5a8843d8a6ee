// cmd/worker-manager/workers.go
package main

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"card-advisor-workers/internal/common/camunda"
	"card-advisor-workers/internal/common/config"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/common/observability"
	"card-advisor-workers/internal/intake"

	// Intake Workers (2)
	sis "card-advisor-workers/internal/workers/intake/start-intake-session"
	sia "card-advisor-workers/internal/workers/intake/submit-intake-answer"

	// Recommendation Workers (3)
	ccs "card-advisor-workers/internal/workers/recommendation/calculate-card-score"
	rcr "card-advisor-workers/internal/workers/recommendation/rank-card-recommendations"
	scr "card-advisor-workers/internal/workers/recommendation/simulate-card-reward"

	// Data Access Workers (2)
	lcc "card-advisor-workers/internal/workers/data-access/load-card-catalog"
	scc "card-advisor-workers/internal/workers/data-access/search-card-catalog"

	// Communication Workers (1)
	src "card-advisor-workers/internal/workers/communication/send-recommendation-summary"
)

type dependencies struct {
	dialogue *intake.Dialogue
	catalog  *catalogDeps
	notifier *notifier
	obs      *observability.Observability
}

type registration struct {
	taskType string
	handler  camunda.JobHandler
}

// registerWorkers opens a job worker for every enabled task type and returns
// the open workers.
func registerWorkers(client zbc.Client, cfg *config.Config, deps dependencies, log logger.Logger) []worker.JobWorker {
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	var searcher scc.Searcher
	if deps.catalog.search != nil {
		searcher = deps.catalog.search
	}

	regs := []registration{
		{sis.TaskType, sis.NewHandler(&sis.Config{Timeout: timeout(sis.TaskType)}, deps.dialogue, log)},
		{sia.TaskType, sia.NewHandler(&sia.Config{Timeout: timeout(sia.TaskType)}, deps.dialogue, log)},

		{ccs.TaskType, ccs.NewHandler(&ccs.Config{
			Timeout:         timeout(ccs.TaskType),
			NormalizeScores: cfg.Recommendation.NormalizeScores,
		}, log)},
		{scr.TaskType, scr.NewHandler(&scr.Config{Timeout: timeout(scr.TaskType)}, log)},
		{rcr.TaskType, rcr.NewHandler(&rcr.Config{
			Timeout:         timeout(rcr.TaskType),
			MaxResults:      cfg.Recommendation.MaxResults,
			NormalizeScores: cfg.Recommendation.NormalizeScores,
		}, deps.catalog.source, deps.obs, log)},

		{lcc.TaskType, lcc.NewHandler(&lcc.Config{Timeout: timeout(lcc.TaskType)}, deps.catalog.source, log)},
		{scc.TaskType, scc.NewHandler(&scc.Config{Timeout: timeout(scc.TaskType)}, searcher, log)},

		{src.TaskType, src.NewHandler(&src.Config{
			EmailEnabled: cfg.Notifications.Email.Enabled,
			SMSEnabled:   cfg.Notifications.SMS.Enabled,
			FromEmail:    cfg.Notifications.Email.FromEmail,
			SenderID:     cfg.Notifications.SMS.SenderID,
			Timeout:      timeout(src.TaskType),
		}, deps.notifier.email, deps.notifier.sms, log)},
	}

	workers := make([]worker.JobWorker, 0, len(regs))
	for _, r := range regs {
		if w := camunda.StartWorker(client, r.taskType, config.GetWorkerConfig(cfg, r.taskType), r.handler, deps.obs, log); w != nil {
			workers = append(workers, w)
		}
	}
	return workers
}
