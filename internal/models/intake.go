package models

// Message roles recorded in an intake session history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IntakeSession is the state of one intake conversation. It travels with the
// workflow instance as process variables and is never persisted by the workers.
type IntakeSession struct {
	ID      string            `json:"id"`
	Step    int               `json:"step"`
	Answers map[string]string `json:"answers"`
	History []Message         `json:"history"`
}
