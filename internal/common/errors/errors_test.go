// internal/common/errors/errors_test.go
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{"catalog load retries", NewCatalogLoadFailedError("postgres", stderrors.New("conn refused")), "CATALOG_UNAVAILABLE", 3},
		{"search timeout retries twice", NewSearchTimeoutError("credit_cards"), "SEARCH_UNAVAILABLE", 2},
		{"rephrase retries once", NewRephraseFailedError(stderrors.New("502")), "REPHRASE_FAILED", 1},
		{"invalid intake state is final", NewInvalidIntakeStateError("step 12"), "INVALID_INTAKE_STATE", 0},
		{"validation is final", NewCatalogValidationFailedError([]string{"cards.0.name: required"}), "CATALOG_INVALID", 0},
		{"unmapped code passes through", NewInternalError(stderrors.New("nil map")), "INTERNAL_ERROR", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmn.Code)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, tt.wantCode, vars["errorCode"])
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
			assert.NotEmpty(t, vars["timestamp"])
		})
	}
}

func TestNonRetryableOverridesRetryCount(t *testing.T) {
	err := NewCatalogLoadFailedError("redis", stderrors.New("down"))
	err.Retryable = false
	assert.Equal(t, 0, ConvertToBPMNError(err).Retries)
}

func TestNormalize(t *testing.T) {
	cause := NewQueryExecutionFailedError("load-cards", stderrors.New("syntax error"))
	wrapped := fmt.Errorf("load catalog: %w", cause)

	assert.Same(t, cause, Normalize(wrapped))

	timeout := Normalize(fmt.Errorf("rank: %w", context.DeadlineExceeded))
	assert.Equal(t, ErrCodeTimeout, timeout.Code)
	assert.True(t, timeout.Retryable)
	assert.ErrorIs(t, timeout, context.DeadlineExceeded)

	internal := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, internal.Code)
	assert.False(t, internal.Retryable)
}

func TestStandardErrorUnwrap(t *testing.T) {
	root := stderrors.New("connection reset")
	err := NewNotificationSendFailedError("email", root)
	assert.ErrorIs(t, err, root)
	assert.Contains(t, err.Error(), "NOTIFICATION_SEND_FAILED")
	assert.Contains(t, err.Error(), "channel: email")

	std, ok := AsStandardError(fmt.Errorf("send: %w", err))
	require.True(t, ok)
	assert.Equal(t, ErrCodeNotificationSendFailed, std.Code)

	_, ok = AsStandardError(root)
	assert.False(t, ok)
}

func TestCatalogValidationMetadata(t *testing.T) {
	problems := []string{"cards.0.reward_type: invalid", "cards.2.name: duplicate"}
	err := NewCatalogValidationFailedError(problems)
	assert.Equal(t, problems, err.Metadata["problems"])
	assert.Equal(t, "cards.0.reward_type: invalid; cards.2.name: duplicate", err.Details)
}

func TestGetErrorCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeInvalidIntakeState:            "INTAKE",
		ErrCodeInvalidProfile:                "INTAKE",
		ErrCodeCatalogValidationFailed:       "CATALOG",
		ErrCodeSearchQueryFailed:             "SEARCH",
		ErrCodeElasticsearchConnectionFailed: "SEARCH",
		ErrCodeIndexNotFound:                 "SEARCH",
		ErrCodeQueryTimeout:                  "DATABASE",
		ErrCodeDatabaseConnectionFailed:      "DATABASE",
		ErrCodeInvalidRecipient:              "NOTIFICATION",
		ErrCodeRephraseFailed:                "AI",
		ErrCodeInvalidInput:                  "VALIDATION",
		ErrCodeInternal:                      "OTHER",
	}
	for code, want := range tests {
		assert.Equal(t, want, GetErrorCategory(code), string(code))
	}
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeNotificationSendFailed))
	assert.True(t, IsRetryableErrorCode(ErrCodeTimeout))
	assert.False(t, IsRetryableErrorCode(ErrCodeInvalidRecipient))
}
