package models

import "strings"

// RewardType is the unit a card pays rewards in.
type RewardType string

const (
	RewardCashback   RewardType = "cashback"
	RewardDiscount   RewardType = "discount"
	RewardPoints     RewardType = "points"
	RewardMiles      RewardType = "miles"
	RewardNeuCoins   RewardType = "neucoins"
	RewardFuelPoints RewardType = "fuel-points"
	RewardOther      RewardType = "other"
)

var RewardTypes = []RewardType{
	RewardCashback, RewardDiscount, RewardPoints, RewardMiles,
	RewardNeuCoins, RewardFuelPoints, RewardOther,
}

// Normalize maps free-form reward types onto the known set. Anything
// unrecognised becomes RewardOther.
func (r RewardType) Normalize() RewardType {
	v := RewardType(strings.ToLower(strings.TrimSpace(string(r))))
	for _, known := range RewardTypes {
		if v == known {
			return v
		}
	}
	return RewardOther
}

// IsCurrency reports whether the reward is paid as money off the bill.
func (r RewardType) IsCurrency() bool {
	switch r.Normalize() {
	case RewardCashback, RewardDiscount:
		return true
	}
	return false
}

// IsPointBased reports whether the reward accrues as a count per ₹100 spent.
func (r RewardType) IsPointBased() bool {
	switch r.Normalize() {
	case RewardPoints, RewardMiles, RewardNeuCoins, RewardFuelPoints:
		return true
	}
	return false
}

// CardRecord is one entry of the static card catalog.
type CardRecord struct {
	Name           string     `json:"name"`
	Issuer         string     `json:"issuer"`
	AnnualFee      int        `json:"annualFee"`
	RewardType     RewardType `json:"rewardType"`
	RewardRate     string     `json:"rewardRate"`
	MinIncome      int        `json:"minIncome"`
	MinCreditScore int        `json:"minCreditScore"`
	Perks          []string   `json:"perks"`
	ApplyLink      string     `json:"applyLink"`
	ImgURL         string     `json:"imgUrl"`
}
