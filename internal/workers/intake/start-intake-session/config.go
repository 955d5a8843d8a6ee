// internal/workers/intake/start-intake-session/config.go
package startintakesession

import "time"

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}
