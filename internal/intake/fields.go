// internal/intake/fields.go
package intake

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"card-advisor-workers/internal/models"
)

// FieldKind identifies one intake question. The order of the constants is
// the order in which questions are asked.
type FieldKind int

const (
	FieldIncome FieldKind = iota
	FieldSpendingFuel
	FieldSpendingTravel
	FieldSpendingGroceries
	FieldSpendingDining
	FieldBenefits
	FieldExistingCards
	FieldCreditScore
)

// Fields is the fixed question sequence.
var Fields = []FieldKind{
	FieldIncome,
	FieldSpendingFuel,
	FieldSpendingTravel,
	FieldSpendingGroceries,
	FieldSpendingDining,
	FieldBenefits,
	FieldExistingCards,
	FieldCreditScore,
}

type fieldSpec struct {
	key      string
	prompt   string
	validate func(answer string) string
}

var fieldSpecs = map[FieldKind]fieldSpec{
	FieldIncome: {
		key:      "income",
		prompt:   "What is your monthly income in INR?",
		validate: validateIncome,
	},
	FieldSpendingFuel: {
		key:      "spending_fuel",
		prompt:   "How much do you spend monthly on fuel (in INR)?",
		validate: validateAmount,
	},
	FieldSpendingTravel: {
		key:      "spending_travel",
		prompt:   "How much do you spend monthly on travel (in INR)?",
		validate: validateAmount,
	},
	FieldSpendingGroceries: {
		key:      "spending_groceries",
		prompt:   "How much do you spend monthly on groceries (in INR)?",
		validate: validateAmount,
	},
	FieldSpendingDining: {
		key:      "spending_dining",
		prompt:   "How much do you spend monthly on dining (in INR)?",
		validate: validateAmount,
	},
	FieldBenefits: {
		key:      "benefits",
		prompt:   "Which benefit do you prefer? (cashback, travel points, lounge access)",
		validate: validateBenefits,
	},
	FieldExistingCards: {
		key:      "existing_cards",
		prompt:   "Do you have any credit cards? If yes, list them (or say 'none').",
		validate: func(string) string { return "" },
	},
	FieldCreditScore: {
		key:      "credit_score",
		prompt:   "What's your approximate credit score? (300-900, or 'unknown')",
		validate: validateCreditScore,
	},
}

func (k FieldKind) Valid() bool {
	_, ok := fieldSpecs[k]
	return ok
}

// Key is the answer key the field is stored under.
func (k FieldKind) Key() string {
	return fieldSpecs[k].key
}

func (k FieldKind) Prompt() string {
	return fieldSpecs[k].prompt
}

func (k FieldKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
	return k.Key()
}

// Validate checks a trimmed answer. The returned error's message is meant
// for the user.
func (k FieldKind) Validate(answer string) error {
	spec, ok := fieldSpecs[k]
	if !ok {
		return &ValidationError{Field: k, Message: "Unexpected question."}
	}
	if msg := spec.validate(answer); msg != "" {
		return &ValidationError{Field: k, Message: msg}
	}
	return nil
}

type ValidationError struct {
	Field   FieldKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func parseAmount(answer string) (float64, bool) {
	v, err := strconv.ParseFloat(answer, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func validateIncome(answer string) string {
	v, ok := parseAmount(answer)
	if !ok {
		return "Please enter a valid number for your income."
	}
	if v < 0 {
		return "Income cannot be negative. Please provide a valid monthly income."
	}
	return ""
}

func validateAmount(answer string) string {
	v, ok := parseAmount(answer)
	if !ok {
		return "Please enter a valid number for your spending."
	}
	if v < 0 {
		return "Amount cannot be negative. Please provide a valid amount."
	}
	return ""
}

func validateBenefits(answer string) string {
	a := strings.ToLower(answer)
	for _, b := range models.BenefitPreferences {
		if a == b {
			return ""
		}
	}
	return fmt.Sprintf("Please choose one of: %s.", strings.Join(models.BenefitPreferences, ", "))
}

func validateCreditScore(answer string) string {
	if strings.EqualFold(answer, models.CreditScoreUnknown) {
		return ""
	}
	v, err := strconv.Atoi(answer)
	if err != nil {
		return "Please enter a valid credit score (300-900) or 'unknown'."
	}
	if v < models.MinCreditScore || v > models.MaxCreditScore {
		return "Credit score must be between 300 and 900, or 'unknown'."
	}
	return ""
}
