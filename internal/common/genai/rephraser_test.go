// internal/common/genai/rephraser_test.go
package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRephraser(t *testing.T, baseURL string) *HTTPRephraser {
	return NewHTTPRephraser(Config{
		BaseURL:     baseURL,
		Timeout:     500 * time.Millisecond,
		MaxRetries:  1,
		MaxTokens:   100,
		Temperature: 0.3,
	}, logger.NewTestLogger(t))
}

func TestHTTPRephraser_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/generate", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req["prompt"], "How much do you spend monthly on fuel (in INR)?")
		assert.Contains(t, req["prompt"], "user: 50000")
		assert.EqualValues(t, 100, req["max_tokens"])
		assert.InDelta(t, 0.3, req["temperature"], 1e-9)
		assert.NotNil(t, req["context"])

		json.NewEncoder(w).Encode(map[string]interface{}{"text": "  Thanks! And how much goes on fuel each month?  "})
	}))
	defer server.Close()

	r := newTestRephraser(t, server.URL+"/")
	history := []models.Message{{Role: models.RoleUser, Content: "50000"}}
	out := r.RephraseWithContext(context.Background(), "How much do you spend monthly on fuel (in INR)?", history)
	assert.Equal(t, "Thanks! And how much goes on fuel each month?", out)
}

func TestHTTPRephraser_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
		},
		{
			name:    "bad request",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadRequest) },
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("{not json")) },
		},
		{
			name:    "empty text",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"text":"   "}`)) },
		},
		{
			name: "slow upstream",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-time.After(2 * time.Second):
				case <-r.Context().Done():
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			r := newTestRephraser(t, server.URL)
			assert.Equal(t, "What is your monthly income in INR?", r.Rephrase(context.Background(), "What is your monthly income in INR?"))
		})
	}
}

func TestHTTPRephraser_Unreachable(t *testing.T) {
	r := newTestRephraser(t, "http://127.0.0.1:1")
	assert.Equal(t, "original", r.Rephrase(context.Background(), "original"))
}

func TestNew_SelectsImplementation(t *testing.T) {
	_, ok := New(Config{}, logger.NewNoOpLogger()).(Static)
	assert.True(t, ok)

	_, ok = New(Config{BaseURL: "http://genai:8080"}, logger.NewNoOpLogger()).(*HTTPRephraser)
	assert.True(t, ok)
}

func TestStatic(t *testing.T) {
	assert.Equal(t, "unchanged", Static{}.Rephrase(context.Background(), "unchanged"))
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt("Which benefit do you prefer?", nil)
	assert.True(t, strings.HasPrefix(p, "You are a friendly credit card recommendation assistant."))
	assert.Contains(t, p, "Rephrase this message for the user: Which benefit do you prefer?")
	assert.NotContains(t, p, "conversation history")
}
