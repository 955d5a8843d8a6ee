package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SpendingCategory is one of the four monthly spending buckets collected during intake.
type SpendingCategory string

const (
	CategoryFuel      SpendingCategory = "fuel"
	CategoryTravel    SpendingCategory = "travel"
	CategoryGroceries SpendingCategory = "groceries"
	CategoryDining    SpendingCategory = "dining"
)

// SpendingCategories lists the categories in priority order. Ties for the
// top spending category go to the earlier entry.
var SpendingCategories = []SpendingCategory{
	CategoryFuel,
	CategoryTravel,
	CategoryGroceries,
	CategoryDining,
}

// Benefit preferences accepted by the intake dialogue.
const (
	BenefitCashback     = "cashback"
	BenefitTravelPoints = "travel points"
	BenefitLoungeAccess = "lounge access"
)

var BenefitPreferences = []string{BenefitCashback, BenefitTravelPoints, BenefitLoungeAccess}

// ExistingCardsNone is the sentinel answer for "no existing cards".
const ExistingCardsNone = "none"

// CreditScoreUnknown is the sentinel answer for an unknown credit score.
const CreditScoreUnknown = "unknown"

const (
	MinCreditScore = 300
	MaxCreditScore = 900
)

// CreditScore is either a known score in [300,900] or unknown. The zero value is unknown.
type CreditScore struct {
	Value int
	Known bool
}

func KnownCreditScore(v int) CreditScore {
	return CreditScore{Value: v, Known: true}
}

func UnknownCreditScore() CreditScore {
	return CreditScore{}
}

// ParseCreditScore accepts "unknown" (any case) or an integer in [300,900].
func ParseCreditScore(raw string) (CreditScore, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, CreditScoreUnknown) {
		return UnknownCreditScore(), nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return CreditScore{}, fmt.Errorf("credit score %q is not an integer", raw)
	}
	if v < MinCreditScore || v > MaxCreditScore {
		return CreditScore{}, fmt.Errorf("credit score %d outside [%d,%d]", v, MinCreditScore, MaxCreditScore)
	}
	return KnownCreditScore(v), nil
}

func (c CreditScore) String() string {
	if !c.Known {
		return CreditScoreUnknown
	}
	return strconv.Itoa(c.Value)
}

func (c CreditScore) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return json.Marshal(CreditScoreUnknown)
	}
	return json.Marshal(c.Value)
}

func (c *CreditScore) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = UnknownCreditScore()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = KnownCreditScore(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("credit score must be a number or %q", CreditScoreUnknown)
	}
	parsed, err := ParseCreditScore(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalYAML lets profile files use the same "unknown" sentinel as JSON.
func (c *CreditScore) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseCreditScore(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UserProfile is the financial profile collected by the intake dialogue.
// Amounts are monthly and in INR. Missing fields are zero values: no income,
// no spending, unknown credit score.
type UserProfile struct {
	Income             float64     `json:"income" yaml:"income"`
	SpendingFuel       float64     `json:"spendingFuel" yaml:"spending_fuel"`
	SpendingTravel     float64     `json:"spendingTravel" yaml:"spending_travel"`
	SpendingGroceries  float64     `json:"spendingGroceries" yaml:"spending_groceries"`
	SpendingDining     float64     `json:"spendingDining" yaml:"spending_dining"`
	BenefitsPreference string      `json:"benefitsPreference" yaml:"benefits"`
	ExistingCards      string      `json:"existingCards" yaml:"existing_cards"`
	CreditScore        CreditScore `json:"creditScore" yaml:"credit_score"`
}

// Spending returns the monthly amount for a category.
func (p UserProfile) Spending(category SpendingCategory) float64 {
	switch category {
	case CategoryFuel:
		return p.SpendingFuel
	case CategoryTravel:
		return p.SpendingTravel
	case CategoryGroceries:
		return p.SpendingGroceries
	case CategoryDining:
		return p.SpendingDining
	}
	return 0
}

// HasExistingCards reports whether ExistingCards should be used to exclude cards.
// An empty value is treated like the "none" sentinel.
func (p UserProfile) HasExistingCards() bool {
	v := strings.TrimSpace(p.ExistingCards)
	return v != "" && !strings.EqualFold(v, ExistingCardsNone)
}
