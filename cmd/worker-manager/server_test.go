// cmd/worker-manager/server_test.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okCheck(context.Context) error { return nil }

func TestHealthServer_Health(t *testing.T) {
	srv := httptest.NewServer(newHealthServer(":0", nil).Handler)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestHealthServer_Ready(t *testing.T) {
	tests := []struct {
		name       string
		checks     []readinessCheck
		wantCode   int
		wantStatus string
		wantChecks map[string]interface{}
	}{
		{
			name: "all dependencies up",
			checks: []readinessCheck{
				{name: "zeebe", check: okCheck},
				{name: "postgres", check: okCheck},
			},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
			wantChecks: map[string]interface{}{"zeebe": "ok", "postgres": "ok"},
		},
		{
			name: "redis down",
			checks: []readinessCheck{
				{name: "zeebe", check: okCheck},
				{name: "redis", check: func(context.Context) error { return errors.New("redis ping failed") }},
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "not_ready",
			wantChecks: map[string]interface{}{"zeebe": "ok", "redis": "redis ping failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(newHealthServer(":0", tt.checks).Handler)
			defer srv.Close()

			res, err := http.Get(srv.URL + "/ready")
			require.NoError(t, err)
			defer res.Body.Close()

			assert.Equal(t, tt.wantCode, res.StatusCode)
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Equal(t, tt.wantChecks, body["checks"])
		})
	}
}

func TestHealthServer_Metrics(t *testing.T) {
	srv := httptest.NewServer(newHealthServer(":0", nil).Handler)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
