// internal/workers/recommendation/simulate-card-reward/models.go
package simulatecardreward

import "card-advisor-workers/internal/models"

type Input struct {
	UserProfile *models.UserProfile `json:"userProfile"`
	Card        *models.CardRecord  `json:"card"`
}

type Output struct {
	CardName         string             `json:"cardName"`
	RewardType       models.RewardType  `json:"rewardType"`
	AnnualReward     float64            `json:"annualReward"`
	RewardSimulation string             `json:"rewardSimulation"`
	CategoryRewards  map[string]float64 `json:"categoryRewards"`
}
