// internal/workers/intake/start-intake-session/models.go
package startintakesession

import "card-advisor-workers/internal/models"

type Input struct {
	// SessionID lets the process reuse its own correlation id.
	SessionID string `json:"sessionId,omitempty"`
}

type Output struct {
	SessionID        string               `json:"sessionId"`
	IntakeSession    models.IntakeSession `json:"intakeSession"`
	AssistantMessage string               `json:"assistantMessage"`
	IntakeComplete   bool                 `json:"intakeComplete"`
	StartedAt        string               `json:"startedAt"`
}
