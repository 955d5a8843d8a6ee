// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const fullConfig = `
app:
  name: card-advisor-workers
  version: 1.2.0
camunda:
  broker_address: zeebe:26500
database:
  postgres:
    enabled: true
    host: postgres
    database: cards
    user: advisor
    password: ${TEST_DB_PASSWORD}
  elasticsearch:
    enabled: true
    url: http://es:9200
  redis:
    enabled: true
    address: redis:6379
workers:
  rank-card-recommendations:
    enabled: true
    timeout: 5000
  send-recommendation-summary:
    enabled: false
catalog:
  cache_ttl: 120
recommendation:
  normalize_scores: true
notifications:
  email:
    enabled: true
    from_email: cards@example.com
`

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.True(t, cfg.Camunda.UsePlaintext)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, []string{"http://es:9200"}, cfg.Database.Elasticsearch.GetAddresses())

	assert.Equal(t, "data/cards.yaml", cfg.Catalog.SeedPath)
	assert.Equal(t, 2*time.Minute, cfg.Catalog.CacheTTLDuration())
	assert.Equal(t, "credit_cards", cfg.Catalog.IndexName)
	assert.Equal(t, 5, cfg.Recommendation.MaxResults)
	assert.True(t, cfg.Recommendation.NormalizeScores)
	assert.Equal(t, "ap-south-1", cfg.Notifications.AWS.Region)
	assert.Equal(t, ":8080", cfg.Server.Address)

	rank := GetWorkerConfig(cfg, "rank-card-recommendations")
	assert.True(t, rank.Enabled)
	assert.Equal(t, 5000, rank.Timeout)
	assert.Equal(t, 5, rank.MaxJobsActive)
	assert.Equal(t, 3, rank.MaxRetries)

	assert.False(t, IsWorkerEnabled(cfg, "send-recommendation-summary"))
	assert.True(t, IsWorkerEnabled(cfg, "not-configured"))
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "not-configured").Timeout)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("CAMUNDA_BROKER_ADDRESS", "other:26500")
	t.Setenv("RECOMMENDATION_MAX_RESULTS", "3")

	cfg, err := LoadFromFile(writeConfig(t, fullConfig))
	require.NoError(t, err)
	assert.Equal(t, "other:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, 3, cfg.Recommendation.MaxResults)
}

func TestLoadFromFile_Minimal(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "camunda:\n  broker_address: localhost:26500\n"))
	require.NoError(t, err)
	assert.False(t, cfg.Database.Postgres.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5000, cfg.APIs.GenAI.Timeout)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "app:\n  name: x\n",
			wantErr: "camunda.broker_address",
		},
		{
			name:    "postgres without host",
			body:    "camunda: {broker_address: z}\ndatabase: {postgres: {enabled: true, database: d, user: u}}\n",
			wantErr: "database.postgres.host",
		},
		{
			name:    "elasticsearch without address",
			body:    "camunda: {broker_address: z}\ndatabase: {elasticsearch: {enabled: true}}\n",
			wantErr: "database.elasticsearch",
		},
		{
			name:    "email without sender",
			body:    "camunda: {broker_address: z}\nnotifications: {email: {enabled: true}}\n",
			wantErr: "from_email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "h", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "require"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=require", p.GetDSN())
}
