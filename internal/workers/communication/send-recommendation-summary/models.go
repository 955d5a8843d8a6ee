// internal/workers/communication/send-recommendation-summary/models.go
package sendrecommendationsummary

import "card-advisor-workers/internal/models"

type Input struct {
	Email           string                  `json:"email,omitempty"`
	Phone           string                  `json:"phone,omitempty"`
	UserName        string                  `json:"userName,omitempty"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"`
	EmailStatus    string `json:"emailStatus"`
	SMSStatus      string `json:"smsStatus"`
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
	StatusSkipped  = "skipped"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)
