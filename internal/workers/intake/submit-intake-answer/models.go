// internal/workers/intake/submit-intake-answer/models.go
package submitintakeanswer

import "card-advisor-workers/internal/models"

type Input struct {
	IntakeSession *models.IntakeSession `json:"intakeSession"`
	UserAnswer    *string               `json:"userAnswer"`
}

type Output struct {
	IntakeSession    models.IntakeSession `json:"intakeSession"`
	AssistantMessage string               `json:"assistantMessage"`
	AnswerAccepted   bool                 `json:"answerAccepted"`
	IntakeComplete   bool                 `json:"intakeComplete"`
	// Field is the key of the question the answer was checked against.
	Field       string              `json:"field"`
	UserProfile *models.UserProfile `json:"userProfile,omitempty"`
}
