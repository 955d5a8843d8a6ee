package models

// Recommendation is a scored catalog card prepared for presentation.
type Recommendation struct {
	Name             string     `json:"name"`
	Issuer           string     `json:"issuer"`
	AnnualFee        int        `json:"annualFee"`
	RewardType       RewardType `json:"rewardType"`
	RewardRate       string     `json:"rewardRate"`
	Perks            []string   `json:"perks"`
	ApplyLink        string     `json:"applyLink"`
	ImgURL           string     `json:"imgUrl,omitempty"`
	Score            int        `json:"score"`
	AnnualReward     float64    `json:"annualReward"`
	RewardSimulation string     `json:"rewardSimulation"`
	Reasons          []string   `json:"reasons"`
}

// ScoreBreakdown records which scoring checks passed for a card.
type ScoreBreakdown struct {
	IncomeEligible      bool             `json:"incomeEligible"`
	CreditScoreEligible bool             `json:"creditScoreEligible"`
	CategoryMatch       bool             `json:"categoryMatch"`
	BenefitMatch        bool             `json:"benefitMatch"`
	FeeAffordable       bool             `json:"feeAffordable"`
	TopCategory         SpendingCategory `json:"topCategory"`
}
