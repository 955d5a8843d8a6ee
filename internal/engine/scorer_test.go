// internal/engine/scorer_test.go
package engine

import (
	"testing"

	"card-advisor-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestScore_WorkedExample(t *testing.T) {
	// All five checks fire, so the raw total exceeds 100 and is left as is.
	b := Breakdown(workedExampleProfile(), workedExampleCard())
	assert.True(t, b.IncomeEligible)
	assert.True(t, b.CreditScoreEligible)
	assert.True(t, b.CategoryMatch)
	assert.True(t, b.BenefitMatch)
	assert.True(t, b.FeeAffordable)
	assert.Equal(t, models.CategoryFuel, b.TopCategory)

	assert.Equal(t, 120, Score(workedExampleProfile(), workedExampleCard()))
	assert.Equal(t, MaxRawScore, 120)
	assert.Equal(t, 100, NormalizeScore(120))
}

func TestScore_IndividualChecks(t *testing.T) {
	card := workedExampleCard()

	tests := []struct {
		name    string
		profile func(p *models.UserProfile)
		card    func(c *models.CardRecord)
		want    int
	}{
		{
			name:    "nothing matches",
			profile: func(p *models.UserProfile) { *p = models.UserProfile{CreditScore: models.KnownCreditScore(300)} },
			card:    func(c *models.CardRecord) { c.Perks = []string{"movies"}; c.RewardType = models.RewardPoints },
			want:    0,
		},
		{
			name:    "income below minimum",
			profile: func(p *models.UserProfile) { p.Income = 29999 },
			want:    120 - WeightIncome,
		},
		{
			name:    "known credit score below minimum",
			profile: func(p *models.UserProfile) { p.CreditScore = models.KnownCreditScore(650) },
			want:    120 - WeightCreditScore,
		},
		{
			name:    "known credit score at minimum",
			profile: func(p *models.UserProfile) { p.CreditScore = models.KnownCreditScore(700) },
			want:    120,
		},
		{
			name:    "top category not in perks",
			profile: func(p *models.UserProfile) { p.SpendingTravel = 9000 },
			want:    120 - WeightCategory,
		},
		{
			name:    "benefit matches perk case-insensitively",
			profile: func(p *models.UserProfile) { p.BenefitsPreference = "Lounge Access" },
			card:    func(c *models.CardRecord) { c.Perks = append(c.Perks, "lounge access") },
			want:    120,
		},
		{
			name:    "benefit partial perk does not match",
			profile: func(p *models.UserProfile) { p.BenefitsPreference = "lounge access" },
			card:    func(c *models.CardRecord) { c.Perks = append(c.Perks, "airport lounge access") },
			want:    120 - WeightBenefit,
		},
		{
			name:    "empty benefit never matches",
			profile: func(p *models.UserProfile) { p.BenefitsPreference = "" },
			want:    120 - WeightBenefit,
		},
		{
			name: "fee equal to ten percent of income",
			card: func(c *models.CardRecord) { c.AnnualFee = 5000 },
			want: 120 - WeightFee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := workedExampleProfile()
			c := card
			c.Perks = append([]string(nil), card.Perks...)
			if tt.profile != nil {
				tt.profile(&p)
			}
			if tt.card != nil {
				tt.card(&c)
			}
			got := Score(p, c)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, MaxRawScore)
		})
	}
}

func TestTopCategory(t *testing.T) {
	tests := []struct {
		name    string
		profile models.UserProfile
		want    models.SpendingCategory
	}{
		{"all zero picks fuel", models.UserProfile{}, models.CategoryFuel},
		{"strict maximum", models.UserProfile{SpendingDining: 10, SpendingTravel: 5}, models.CategoryDining},
		{"tie goes to travel before groceries", models.UserProfile{SpendingTravel: 100, SpendingGroceries: 100}, models.CategoryTravel},
		{"tie goes to fuel first", models.UserProfile{SpendingFuel: 7, SpendingDining: 7}, models.CategoryFuel},
		{"groceries beat dining on tie", models.UserProfile{SpendingGroceries: 3, SpendingDining: 3}, models.CategoryGroceries},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopCategory(tt.profile))
		})
	}
}

func TestNormalizeScore(t *testing.T) {
	assert.Equal(t, 0, NormalizeScore(0))
	assert.Equal(t, 0, NormalizeScore(-10))
	assert.Equal(t, 25, NormalizeScore(30))
	assert.Equal(t, 91, NormalizeScore(110))
}
