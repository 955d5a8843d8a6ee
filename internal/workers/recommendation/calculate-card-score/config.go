// internal/workers/recommendation/calculate-card-score/config.go
package calculatecardscore

import "time"

type Config struct {
	Timeout time.Duration
	// NormalizeScores rescales the raw 0..120 sum to 0..100.
	NormalizeScores bool
}

func DefaultConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}
