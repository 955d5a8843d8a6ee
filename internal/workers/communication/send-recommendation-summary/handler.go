// internal/workers/communication/send-recommendation-summary/handler.go
package sendrecommendationsummary

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	apperrors "card-advisor-workers/internal/common/errors"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/common/metrics"
	"card-advisor-workers/internal/common/validation"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-recommendation-summary"
)

// EmailSender is the subset of the SES client used here.
type EmailSender interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SMSSender is the subset of the SNS client used here.
type SMSSender interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config       *Config
	email        EmailSender
	sms          SMSSender
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

// NewHandler wires the notification worker. A nil sender turns its channel
// off regardless of config.
func NewHandler(config *Config, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		email:        email,
		sms:          sms,
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

// Execute emails the shortlist and, when a phone number is known, texts the
// top pick. Email failures fail the job; SMS failures are reported in the
// output only.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	emailTo := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)

	emailOn := h.config.EmailEnabled && h.email != nil
	smsOn := h.config.SMSEnabled && h.sms != nil

	if emailOn && emailTo != "" && !validation.ValidateEmail(emailTo) {
		return nil, apperrors.NewInvalidRecipientError(ChannelEmail, emailTo)
	}
	if smsOn && phone != "" && !validation.ValidatePhone(phone) {
		return nil, apperrors.NewInvalidRecipientError(ChannelSMS, phone)
	}

	data := summaryData{UserName: strings.TrimSpace(input.UserName), Recommendations: input.Recommendations}
	out := &Output{
		NotificationID: uuid.New().String(),
		EmailStatus:    StatusDisabled,
		SMSStatus:      StatusDisabled,
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}

	if emailOn {
		switch {
		case emailTo == "":
			out.EmailStatus = StatusSkipped
		default:
			if err := h.sendEmail(ctx, emailTo, data); err != nil {
				metrics.NotificationsSent.WithLabelValues(ChannelEmail, StatusFailed).Inc()
				return nil, apperrors.NewNotificationSendFailedError(ChannelEmail, err)
			}
			out.EmailStatus = StatusSent
		}
	}

	if smsOn {
		switch {
		case phone == "" || len(input.Recommendations) == 0:
			out.SMSStatus = StatusSkipped
		default:
			if err := h.sendSMS(ctx, phone, data); err != nil {
				h.logger.Warn("sms send failed", map[string]interface{}{
					"error":          err.Error(),
					"notificationId": out.NotificationID,
				})
				out.SMSStatus = StatusFailed
			} else {
				out.SMSStatus = StatusSent
			}
		}
	}

	metrics.NotificationsSent.WithLabelValues(ChannelEmail, out.EmailStatus).Inc()
	metrics.NotificationsSent.WithLabelValues(ChannelSMS, out.SMSStatus).Inc()

	out.Status = overallStatus(out.EmailStatus, out.SMSStatus)
	h.logger.Info("recommendation summary processed", map[string]interface{}{
		"notificationId": out.NotificationID,
		"status":         out.Status,
		"email":          out.EmailStatus,
		"sms":            out.SMSStatus,
	})
	return out, nil
}

func overallStatus(email, sms string) string {
	switch {
	case email == StatusSent || sms == StatusSent:
		return StatusSent
	case sms == StatusFailed:
		return StatusFailed
	case email == StatusSkipped || sms == StatusSkipped:
		return StatusSkipped
	default:
		return StatusDisabled
	}
}

func (h *Handler) sendEmail(ctx context.Context, to string, data summaryData) error {
	body, err := renderEmail(data)
	if err != nil {
		return err
	}
	_, err = h.email.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(emailSubject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to string, data summaryData) error {
	message, err := renderSMS(data)
	if err != nil {
		return err
	}
	input := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	}
	if h.config.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {DataType: aws.String("String"), StringValue: aws.String(h.config.SenderID)},
		}
	}
	_, err = h.sms.Publish(ctx, input)
	return err
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
