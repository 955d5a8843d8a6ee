// cmd/worker-manager/server.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"card-advisor-workers/internal/common/camunda"
)

const readinessTimeout = 3 * time.Second

type readinessCheck struct {
	name  string
	check func(ctx context.Context) error
}

func readinessChecks(zeebe *camunda.Client, infra *infrastructure) []readinessCheck {
	checks := []readinessCheck{{name: "zeebe", check: zeebe.HealthCheck}}
	if infra.postgres != nil {
		checks = append(checks, readinessCheck{name: "postgres", check: infra.postgres.Ping})
	}
	if infra.redis != nil {
		checks = append(checks, readinessCheck{name: "redis", check: infra.redis.Ping})
	}
	if infra.elastic != nil {
		checks = append(checks, readinessCheck{name: "elasticsearch", check: infra.elastic.Ping})
	}
	return checks
}

// newHealthServer serves /health (liveness), /ready (dependency checks) and
// /metrics.
func newHealthServer(addr string, checks []readinessCheck) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status, code := "ready", http.StatusOK
		results := make(map[string]string, len(checks))
		for _, c := range checks {
			if err := c.check(ctx); err != nil {
				results[c.name] = err.Error()
				status, code = "not_ready", http.StatusServiceUnavailable
				continue
			}
			results[c.name] = "ok"
		}

		writeJSON(w, code, map[string]interface{}{
			"status": status,
			"checks": results,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
