// internal/workers/data-access/search-card-catalog/config.go
package searchcardcatalog

import "time"

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{Timeout: 30 * time.Second}
}
