// internal/workers/intake/submit-intake-answer/config.go
package submitintakeanswer

import "time"

type Config struct {
	// Timeout bounds the whole job, including the rephrasing call.
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{Timeout: 10 * time.Second}
}
