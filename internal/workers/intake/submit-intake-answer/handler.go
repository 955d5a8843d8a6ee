// internal/workers/intake/submit-intake-answer/handler.go
package submitintakeanswer

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "card-advisor-workers/internal/common/errors"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/common/metrics"
	"card-advisor-workers/internal/intake"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "submit-intake-answer"
)

type Handler struct {
	config       *Config
	dialogue     *intake.Dialogue
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, dialogue *intake.Dialogue, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		dialogue:     dialogue,
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

// Execute applies one answer to the carried session. A rejected answer is a
// normal outcome: the session is returned unchanged apart from its history.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.IntakeSession == nil {
		return nil, apperrors.NewInvalidIntakeStateError("intakeSession is required")
	}
	if input.UserAnswer == nil {
		return nil, apperrors.NewInvalidIntakeStateError("userAnswer is required")
	}

	session, err := intake.Restore(*input.IntakeSession)
	if err != nil {
		return nil, apperrors.NewInvalidIntakeStateError(err.Error())
	}

	reply, err := h.dialogue.Answer(ctx, session, *input.UserAnswer)
	if err != nil {
		if errors.Is(err, intake.ErrSessionComplete) {
			return nil, apperrors.NewInvalidIntakeStateError("intake session is already complete")
		}
		return nil, apperrors.NewInternalError(err)
	}

	outcome := "rejected"
	if reply.Accepted {
		outcome = "accepted"
	}
	metrics.IntakeAnswers.WithLabelValues(reply.Field.Key(), outcome).Inc()

	output := &Output{
		IntakeSession:    session.State(),
		AssistantMessage: reply.Text,
		AnswerAccepted:   reply.Accepted,
		IntakeComplete:   reply.Complete,
		Field:            reply.Field.Key(),
	}

	if reply.Complete {
		profile, err := session.Profile()
		if err != nil {
			return nil, apperrors.NewInvalidProfileError(err.Error())
		}
		output.UserProfile = &profile
	}

	h.logger.Info("intake answer processed", map[string]interface{}{
		"sessionId": session.ID(),
		"field":     output.Field,
		"accepted":  output.AnswerAccepted,
		"complete":  output.IntakeComplete,
	})
	return output, nil
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
