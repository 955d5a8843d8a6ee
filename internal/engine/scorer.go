// internal/engine/scorer.go
package engine

import (
	"strings"

	"card-advisor-workers/internal/models"
)

const (
	WeightIncome      = 30
	WeightCreditScore = 30
	WeightCategory    = 30
	WeightBenefit     = 20
	WeightFee         = 10

	// MaxRawScore is the sum of all weights. Scores are not clamped to 100.
	MaxRawScore = WeightIncome + WeightCreditScore + WeightCategory + WeightBenefit + WeightFee

	feeIncomeRatio = 0.1
)

// TopCategory returns the category with the strictly largest monthly spend.
// Ties, including an all-zero profile, go to the earliest category in
// models.SpendingCategories.
func TopCategory(profile models.UserProfile) models.SpendingCategory {
	top := models.SpendingCategories[0]
	best := profile.Spending(top)
	for _, c := range models.SpendingCategories[1:] {
		if v := profile.Spending(c); v > best {
			top, best = c, v
		}
	}
	return top
}

// Breakdown evaluates each scoring check independently.
func Breakdown(profile models.UserProfile, card models.CardRecord) models.ScoreBreakdown {
	top := TopCategory(profile)
	return models.ScoreBreakdown{
		IncomeEligible:      profile.Income >= float64(card.MinIncome),
		CreditScoreEligible: !profile.CreditScore.Known || profile.CreditScore.Value >= card.MinCreditScore,
		CategoryMatch:       anyPerkContains(card.Perks, string(top)),
		BenefitMatch:        benefitMatches(profile.BenefitsPreference, card),
		FeeAffordable:       float64(card.AnnualFee) < profile.Income*feeIncomeRatio,
		TopCategory:         top,
	}
}

// Total returns the additive score for a breakdown, in [0, MaxRawScore].
func Total(b models.ScoreBreakdown) int {
	score := 0
	if b.IncomeEligible {
		score += WeightIncome
	}
	if b.CreditScoreEligible {
		score += WeightCreditScore
	}
	if b.CategoryMatch {
		score += WeightCategory
	}
	if b.BenefitMatch {
		score += WeightBenefit
	}
	if b.FeeAffordable {
		score += WeightFee
	}
	return score
}

// Score is the raw additive match score of a card for a profile.
func Score(profile models.UserProfile, card models.CardRecord) int {
	return Total(Breakdown(profile, card))
}

// NormalizeScore rescales a raw score onto 0..100.
func NormalizeScore(raw int) int {
	if raw <= 0 {
		return 0
	}
	return raw * 100 / MaxRawScore
}

func anyPerkContains(perks []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, perk := range perks {
		if strings.Contains(strings.ToLower(perk), needle) {
			return true
		}
	}
	return false
}

func benefitMatches(preference string, card models.CardRecord) bool {
	preference = strings.TrimSpace(preference)
	if preference == "" {
		return false
	}
	if strings.EqualFold(preference, string(card.RewardType)) {
		return true
	}
	for _, perk := range card.Perks {
		if strings.EqualFold(preference, strings.TrimSpace(perk)) {
			return true
		}
	}
	return false
}
