// internal/engine/simulator.go
package engine

import (
	"fmt"
	"math"

	"card-advisor-workers/internal/models"
)

const monthsPerYear = 12

// SimulateAnnualReward estimates the yearly reward a profile would earn on a
// card. Currency rewards are in INR; point-like rewards are a count of the
// card's reward unit.
func SimulateAnnualReward(profile models.UserProfile, card models.CardRecord) float64 {
	rewardType := card.RewardType.Normalize()

	var total float64
	for _, category := range models.SpendingCategories {
		spend := profile.Spending(category)
		if spend <= 0 {
			continue
		}
		annual := spend * monthsPerYear
		total += categoryReward(annual, rewardType, card.RewardRate, category)
	}
	return total
}

func categoryReward(annual float64, rewardType models.RewardType, rateText string, category models.SpendingCategory) float64 {
	switch {
	case rewardType.IsCurrency():
		rate, pct := ParseRate(rateText, string(category))
		if !pct {
			rate /= 100
		}
		return annual * rate
	case rewardType.IsPointBased():
		rate, pct := ParseRate(rateText, string(category))
		if pct {
			rate *= 100
		}
		return annual / 100 * rate
	default:
		return annual * DefaultRate
	}
}

// RenderRewardSimulation formats a simulated yield, truncating to a whole number.
func RenderRewardSimulation(amount float64, rewardType models.RewardType) string {
	if amount < 0 {
		amount = 0
	}
	n := int64(math.MaxInt64)
	if amount < math.MaxInt64 {
		n = int64(amount)
	}
	rt := rewardType.Normalize()
	switch {
	case rt.IsCurrency():
		return fmt.Sprintf("You could earn ₹%d/year in %s", n, rt)
	case rt.IsPointBased():
		return fmt.Sprintf("You could earn %d %s/year", n, rt)
	default:
		return fmt.Sprintf("You could earn ₹%d/year in rewards", n)
	}
}
