// internal/intake/dialogue.go
package intake

import (
	"context"
	"errors"
	"fmt"

	"card-advisor-workers/internal/common/genai"
	"card-advisor-workers/internal/models"
)

// CompletionMessage is sent verbatim once every question is answered.
const CompletionMessage = "All questions answered. Ready to recommend cards?"

// Reply is what the assistant says back after an answer.
type Reply struct {
	Text     string
	Accepted bool
	Complete bool
	// Field is the field the answer was checked against.
	Field FieldKind
}

// Dialogue drives a Session and words its questions through a rephraser.
type Dialogue struct {
	rephraser genai.Rephraser
}

func NewDialogue(r genai.Rephraser) *Dialogue {
	if r == nil {
		r = genai.Static{}
	}
	return &Dialogue{rephraser: r}
}

// Start opens a session and returns the first question as written.
func (d *Dialogue) Start(id string) (*Session, string) {
	s := NewSession(id)
	q := Fields[0].Prompt()
	s.record(models.RoleAssistant, q)
	return s, q
}

// Answer applies one user answer. Validation failures are reported in the
// reply, not as an error; the error return is for a finished session.
func (d *Dialogue) Answer(ctx context.Context, s *Session, answer string) (Reply, error) {
	field, ok := s.Current()
	if !ok {
		return Reply{Text: CompletionMessage, Complete: true}, ErrSessionComplete
	}

	if err := s.Submit(answer); err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return Reply{}, err
		}
		text := d.reask(ctx, s, field, verr.Message)
		s.record(models.RoleAssistant, text)
		return Reply{Text: text, Field: field}, nil
	}

	if s.Complete() {
		s.record(models.RoleAssistant, CompletionMessage)
		return Reply{Text: CompletionMessage, Accepted: true, Complete: true, Field: field}, nil
	}

	next, _ := s.Current()
	text := d.rephrase(ctx, next.Prompt(), s.History())
	s.record(models.RoleAssistant, text)
	return Reply{Text: text, Accepted: true, Field: field}, nil
}

func (d *Dialogue) reask(ctx context.Context, s *Session, field FieldKind, problem string) string {
	return d.rephrase(ctx, fmt.Sprintf("%s %s", problem, field.Prompt()), s.History())
}

func (d *Dialogue) rephrase(ctx context.Context, text string, history []models.Message) string {
	if cr, ok := d.rephraser.(genai.ContextRephraser); ok {
		return cr.RephraseWithContext(ctx, text, history)
	}
	return d.rephraser.Rephrase(ctx, text)
}
