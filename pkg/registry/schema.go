// pkg/registry/schema.go
package registry

import "encoding/json"

// ActivityRegistry describes every task type the card-advisor workers serve.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity is one BPMN service task. Schemas are kept as raw JSON and
// compiled on demand.
type Activity struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"displayName"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	TaskType    string          `json:"taskType"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
	// OutputSchema documents the variables the job completes with.
	OutputSchema json.RawMessage `json:"outputSchema,omitempty"`
	ErrorCodes   []string        `json:"errorCodes"`
	Timeout      string          `json:"timeout"`
	Retries      int             `json:"retries"`
	Processes    []string        `json:"processes,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
}
