// internal/workers/data-access/load-card-catalog/config.go
package loadcardcatalog

import "time"

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{Timeout: 10 * time.Second}
}
