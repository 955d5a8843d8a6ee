// internal/workers/recommendation/rank-card-recommendations/config.go
package rankcardrecommendations

import (
	"time"

	"card-advisor-workers/internal/engine"
)

type Config struct {
	Timeout         time.Duration
	MaxResults      int
	NormalizeScores bool
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:    15 * time.Second,
		MaxResults: engine.DefaultMaxResults,
	}
}
