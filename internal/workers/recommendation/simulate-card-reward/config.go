// internal/workers/recommendation/simulate-card-reward/config.go
package simulatecardreward

import "time"

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}
