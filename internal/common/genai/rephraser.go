// internal/common/genai/rephraser.go
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "card-advisor-workers/internal/common/errors"
	httpclient "card-advisor-workers/internal/common/http"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/common/metrics"
	"card-advisor-workers/internal/models"
)

const generatePath = "/api/ai/generate"

// Rephraser turns assistant text into friendlier wording. Implementations
// must return the input unchanged when they cannot do better.
type Rephraser interface {
	Rephrase(ctx context.Context, text string) string
}

// ContextRephraser can also use the conversation so far.
type ContextRephraser interface {
	Rephraser
	RephraseWithContext(ctx context.Context, text string, history []models.Message) string
}

// Static never changes the text.
type Static struct{}

func (Static) Rephrase(_ context.Context, text string) string { return text }

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxRetries  int
	MaxTokens   int
	Temperature float64
}

// HTTPRephraser calls the GenAI gateway's generate endpoint.
type HTTPRephraser struct {
	config Config
	client *httpclient.Client
	logger logger.Logger
}

var errEmptyText = errors.New("empty completion")

func NewHTTPRephraser(cfg Config, log logger.Logger) *HTTPRephraser {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 100
	}
	return &HTTPRephraser{
		config: cfg,
		client: httpclient.NewClient(cfg.Timeout, httpclient.WithRetries(cfg.MaxRetries, 100*time.Millisecond)),
		logger: log.WithFields(map[string]interface{}{"component": "genai-rephraser"}),
	}
}

// New returns an HTTPRephraser when a base URL is configured and Static otherwise.
func New(cfg Config, log logger.Logger) Rephraser {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return Static{}
	}
	return NewHTTPRephraser(cfg, log)
}

func (r *HTTPRephraser) Rephrase(ctx context.Context, text string) string {
	return r.RephraseWithContext(ctx, text, nil)
}

func (r *HTTPRephraser) RephraseWithContext(ctx context.Context, text string, history []models.Message) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	out, err := r.generate(ctx, text, history)
	if err != nil {
		reason := fallbackReason(ctx, err)
		metrics.RephraseFallbacks.WithLabelValues(reason).Inc()
		r.logger.Warn("rephrase failed, using original text", map[string]interface{}{
			"reason": reason,
			"error":  err,
		})
		return text
	}
	return out
}

type generateRequest struct {
	Prompt      string                 `json:"prompt"`
	Context     map[string]interface{} `json:"context,omitempty"`
	MaxTokens   int                    `json:"max_tokens"`
	Temperature float64                `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (r *HTTPRephraser) generate(ctx context.Context, text string, history []models.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	req := generateRequest{
		Prompt:      buildPrompt(text, history),
		MaxTokens:   r.config.MaxTokens,
		Temperature: r.config.Temperature,
	}
	if len(history) > 0 {
		req.Context = map[string]interface{}{"history": history}
	}

	var resp generateResponse
	url := strings.TrimRight(r.config.BaseURL, "/") + generatePath
	if err := r.client.PostJSON(ctx, url, req, &resp); err != nil {
		return "", apperrors.NewRephraseFailedError(fmt.Errorf("generate: %w", err))
	}
	out := strings.TrimSpace(resp.Text)
	if out == "" {
		return "", apperrors.NewRephraseFailedError(errEmptyText)
	}
	return out, nil
}

func buildPrompt(text string, history []models.Message) string {
	var b strings.Builder
	b.WriteString("You are a friendly credit card recommendation assistant.")
	if len(history) > 0 {
		b.WriteString(" Based on the conversation history:\n")
		for _, m := range history {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
	} else {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Rephrase this message for the user: %s\n", text)
	b.WriteString("Keep the tone concise and professional. Reply with the message only.")
	return b.String()
}

func fallbackReason(ctx context.Context, err error) string {
	var statusErr *httpclient.StatusError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil:
		return "timeout"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, errEmptyText):
		return "empty"
	}
	return "transport"
}
