// internal/workers/recommendation/calculate-card-score/handler_test.go
package calculatecardscore

import (
	"context"
	"encoding/json"
	"testing"

	apperrors "card-advisor-workers/internal/common/errors"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		Income:             50000,
		SpendingFuel:       5000,
		SpendingGroceries:  3000,
		BenefitsPreference: "cashback",
		ExistingCards:      "none",
		CreditScore:        models.UnknownCreditScore(),
	}
}

func testCard() *models.CardRecord {
	return &models.CardRecord{
		Name:           "Fuel Saver",
		AnnualFee:      500,
		RewardType:     models.RewardCashback,
		RewardRate:     "5% on fuel, 1% on others",
		MinIncome:      30000,
		MinCreditScore: 700,
		Perks:          []string{"fuel", "dining"},
	}
}

func TestHandler_Execute(t *testing.T) {
	log := logger.NewZapAdapter(zaptest.NewLogger(t))

	tests := []struct {
		name         string
		config       *Config
		mutate       func(p *models.UserProfile, c *models.CardRecord)
		wantScore    int
		wantRaw      int
		wantEligible bool
	}{
		{
			name:         "all checks pass",
			config:       DefaultConfig(),
			wantScore:    120,
			wantRaw:      120,
			wantEligible: true,
		},
		{
			name:         "normalized",
			config:       &Config{NormalizeScores: true},
			wantScore:    100,
			wantRaw:      120,
			wantEligible: true,
		},
		{
			name:   "low income and known low credit score",
			config: DefaultConfig(),
			mutate: func(p *models.UserProfile, _ *models.CardRecord) {
				p.Income = 20000
				p.CreditScore = models.KnownCreditScore(650)
			},
			// category 30 + benefit 20 + fee (500 < 2000) 10
			wantScore:    60,
			wantRaw:      60,
			wantEligible: false,
		},
		{
			name:   "no preference match",
			config: DefaultConfig(),
			mutate: func(p *models.UserProfile, _ *models.CardRecord) {
				p.BenefitsPreference = "lounge access"
			},
			wantScore:    100,
			wantRaw:      100,
			wantEligible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.config, log)
			p, c := testProfile(), testCard()
			if tt.mutate != nil {
				tt.mutate(p, c)
			}

			out, err := h.Execute(context.Background(), &Input{UserProfile: p, Card: c})
			require.NoError(t, err)
			assert.Equal(t, "Fuel Saver", out.CardName)
			assert.Equal(t, tt.wantScore, out.Score)
			assert.Equal(t, tt.wantRaw, out.RawScore)
			assert.Equal(t, tt.wantEligible, out.Eligible)
			assert.Equal(t, models.CategoryFuel, out.Breakdown.TopCategory)
		})
	}
}

func TestHandler_Execute_MissingInput(t *testing.T) {
	h := NewHandler(nil, logger.NewZapAdapter(zaptest.NewLogger(t)))

	_, err := h.Execute(context.Background(), &Input{Card: testCard()})
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidProfile, stdErr.Code)

	_, err = h.Execute(context.Background(), &Input{UserProfile: testProfile()})
	stdErr, ok = apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, stdErr.Code)
}

func TestInput_FromWorkflowVariables(t *testing.T) {
	raw := `{
		"userProfile": {"income": 50000, "spendingFuel": 5000, "spendingGroceries": 3000,
			"benefitsPreference": "cashback", "existingCards": "none", "creditScore": "unknown"},
		"card": {"name": "Fuel Saver", "annualFee": 500, "rewardType": "cashback",
			"rewardRate": "5% on fuel, 1% on others", "minIncome": 30000, "minCreditScore": 700,
			"perks": ["fuel", "dining"]}
	}`
	var in Input
	require.NoError(t, json.Unmarshal([]byte(raw), &in))

	h := NewHandler(nil, logger.NewZapAdapter(zaptest.NewLogger(t)))
	out, err := h.Execute(context.Background(), &in)
	require.NoError(t, err)
	assert.Equal(t, 120, out.Score)
}
