// internal/workers/intake/start-intake-session/handler_test.go
package startintakesession

import (
	"context"
	"encoding/json"
	"testing"

	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/intake"
	"card-advisor-workers/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(DefaultConfig(), intake.NewDialogue(nil), logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func TestHandler_Execute_NewSession(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(out.SessionID)
	assert.NoError(t, parseErr)
	assert.Equal(t, intake.FieldIncome.Prompt(), out.AssistantMessage)
	assert.False(t, out.IntakeComplete)
	assert.NotEmpty(t, out.StartedAt)

	assert.Equal(t, out.SessionID, out.IntakeSession.ID)
	assert.Equal(t, 0, out.IntakeSession.Step)
	assert.Empty(t, out.IntakeSession.Answers)
	require.Len(t, out.IntakeSession.History, 1)
	assert.Equal(t, models.Message{Role: models.RoleAssistant, Content: out.AssistantMessage}, out.IntakeSession.History[0])
}

func TestHandler_Execute_KeepsProvidedID(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{SessionID: "  session-42 "})
	require.NoError(t, err)
	assert.Equal(t, "session-42", out.SessionID)
}

func TestHandler_Execute_DistinctIDs(t *testing.T) {
	h := newTestHandler(t)

	a, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	b, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestOutput_WorkflowVariables(t *testing.T) {
	h := newTestHandler(t)
	out, err := h.Execute(context.Background(), &Input{SessionID: "s-1"})
	require.NoError(t, err)

	data, err := json.Marshal(out)
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &vars))
	for _, key := range []string{"sessionId", "intakeSession", "assistantMessage", "intakeComplete"} {
		assert.Contains(t, vars, key)
	}
}
