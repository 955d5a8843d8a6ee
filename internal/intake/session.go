// internal/intake/session.go
package intake

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"card-advisor-workers/internal/models"
)

var ErrSessionComplete = errors.New("intake session already complete")

// Session walks the fixed question list. It wraps the serialisable
// models.IntakeSession so the state can round-trip through workflow variables.
type Session struct {
	state models.IntakeSession
}

func NewSession(id string) *Session {
	return &Session{state: models.IntakeSession{
		ID:      id,
		Answers: make(map[string]string),
		History: []models.Message{},
	}}
}

// Restore rebuilds a session from carried state, rejecting impossible steps.
func Restore(state models.IntakeSession) (*Session, error) {
	if state.Step < 0 || state.Step > len(Fields) {
		return nil, fmt.Errorf("step %d outside [0,%d]", state.Step, len(Fields))
	}
	for _, f := range Fields[:state.Step] {
		if _, ok := state.Answers[f.Key()]; !ok {
			return nil, fmt.Errorf("missing answer for %s at step %d", f.Key(), state.Step)
		}
	}
	if state.Answers == nil {
		state.Answers = make(map[string]string)
	}
	if state.History == nil {
		state.History = []models.Message{}
	}
	return &Session{state: state}, nil
}

// State returns a copy safe to hand to the workflow engine.
func (s *Session) State() models.IntakeSession {
	answers := make(map[string]string, len(s.state.Answers))
	for k, v := range s.state.Answers {
		answers[k] = v
	}
	return models.IntakeSession{
		ID:      s.state.ID,
		Step:    s.state.Step,
		Answers: answers,
		History: append([]models.Message{}, s.state.History...),
	}
}

func (s *Session) ID() string { return s.state.ID }

func (s *Session) Complete() bool {
	return s.state.Step >= len(Fields)
}

// Current returns the field awaiting an answer.
func (s *Session) Current() (FieldKind, bool) {
	if s.Complete() {
		return 0, false
	}
	return Fields[s.state.Step], true
}

func (s *Session) History() []models.Message {
	return s.state.History
}

func (s *Session) record(role, content string) {
	s.state.History = append(s.state.History, models.Message{Role: role, Content: content})
}

// Submit validates the answer for the current field. On success the answer
// is stored and the session advances; a *ValidationError leaves it in place.
func (s *Session) Submit(answer string) error {
	field, ok := s.Current()
	if !ok {
		return ErrSessionComplete
	}
	answer = strings.TrimSpace(answer)
	if err := field.Validate(answer); err != nil {
		return err
	}
	s.state.Answers[field.Key()] = answer
	s.record(models.RoleUser, answer)
	s.state.Step++
	return nil
}

// Profile assembles the answers collected so far. Unanswered fields stay at
// their zero value.
func (s *Session) Profile() (models.UserProfile, error) {
	var p models.UserProfile
	amounts := map[FieldKind]*float64{
		FieldIncome:            &p.Income,
		FieldSpendingFuel:      &p.SpendingFuel,
		FieldSpendingTravel:    &p.SpendingTravel,
		FieldSpendingGroceries: &p.SpendingGroceries,
		FieldSpendingDining:    &p.SpendingDining,
	}
	for field, dst := range amounts {
		raw, ok := s.state.Answers[field.Key()]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || v < 0 {
			return models.UserProfile{}, fmt.Errorf("answer for %s: invalid amount %q", field.Key(), raw)
		}
		*dst = v
	}

	p.BenefitsPreference = strings.ToLower(strings.TrimSpace(s.state.Answers[FieldBenefits.Key()]))

	p.ExistingCards = strings.TrimSpace(s.state.Answers[FieldExistingCards.Key()])
	if p.ExistingCards == "" {
		p.ExistingCards = models.ExistingCardsNone
	}

	score, err := models.ParseCreditScore(s.state.Answers[FieldCreditScore.Key()])
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("answer for %s: %w", FieldCreditScore.Key(), err)
	}
	p.CreditScore = score

	return p, nil
}
