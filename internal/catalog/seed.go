// internal/catalog/seed.go
package catalog

import (
	"fmt"
	"os"
	"strings"

	apperrors "card-advisor-workers/internal/common/errors"
	"card-advisor-workers/internal/common/validation"
	"card-advisor-workers/internal/models"

	"gopkg.in/yaml.v3"
)

const seedSchemaJSON = `{
  "type": "object",
  "required": ["cards"],
  "properties": {
    "cards": {"type": "array", "items": {"$ref": "#/definitions/card"}}
  },
  "definitions": {
    "card": {
      "type": "object",
      "required": ["name", "issuer", "annual_fee", "reward_type", "reward_rate", "eligibility", "perks", "apply_link"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "issuer": {"type": "string"},
        "annual_fee": {"type": "integer", "minimum": 0},
        "reward_type": {"type": "string", "enum": ["cashback", "discount", "points", "miles", "neucoins", "fuel-points", "other"]},
        "reward_rate": {"type": "string"},
        "eligibility": {
          "type": "object",
          "required": ["min_income", "min_credit_score"],
          "properties": {
            "min_income": {"type": "integer", "minimum": 0},
            "min_credit_score": {"type": "integer", "minimum": 0, "maximum": 900}
          }
        },
        "perks": {"type": "array", "items": {"type": "string"}},
        "apply_link": {"type": "string"},
        "img_url": {"type": "string"}
      }
    }
  }
}`

var seedSchema = validation.MustCompile(seedSchemaJSON)

type seedFile struct {
	Cards []seedCard `yaml:"cards"`
}

type seedCard struct {
	Name        string   `yaml:"name"`
	Issuer      string   `yaml:"issuer"`
	AnnualFee   int      `yaml:"annual_fee"`
	RewardType  string   `yaml:"reward_type"`
	RewardRate  string   `yaml:"reward_rate"`
	Eligibility struct {
		MinIncome      int `yaml:"min_income"`
		MinCreditScore int `yaml:"min_credit_score"`
	} `yaml:"eligibility"`
	Perks     []string `yaml:"perks"`
	ApplyLink string   `yaml:"apply_link"`
	ImgURL    string   `yaml:"img_url"`
}

// LoadSeedFile reads and validates a YAML catalog seed.
func LoadSeedFile(path string) ([]models.CardRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError("seed file "+path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a seed document. Schema violations and duplicate card
// names are reported together as a CATALOG_VALIDATION_FAILED error.
func ParseSeed(data []byte) ([]models.CardRecord, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.NewCatalogValidationFailedError([]string{fmt.Sprintf("yaml: %v", err)})
	}

	result, err := seedSchema.Validate(raw)
	if err != nil {
		return nil, apperrors.NewCatalogValidationFailedError([]string{err.Error()})
	}
	if !result.Valid {
		return nil, apperrors.NewCatalogValidationFailedError(result.GetErrorMessages())
	}

	var doc seedFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewCatalogValidationFailedError([]string{fmt.Sprintf("yaml: %v", err)})
	}

	seen := make(map[string]int, len(doc.Cards))
	for i, c := range doc.Cards {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if first, dup := seen[key]; dup {
			result.AddError(fmt.Sprintf("cards.%d.name", i), fmt.Sprintf("duplicates cards.%d.name %q", first, c.Name), "DUPLICATE")
			continue
		}
		seen[key] = i
	}
	if !result.Valid {
		return nil, apperrors.NewCatalogValidationFailedError(result.GetErrorMessages())
	}

	cards := make([]models.CardRecord, 0, len(doc.Cards))
	for _, c := range doc.Cards {
		cards = append(cards, c.toRecord())
	}
	return cards, nil
}

func (c seedCard) toRecord() models.CardRecord {
	perks := c.Perks
	if perks == nil {
		perks = []string{}
	}
	return models.CardRecord{
		Name:           strings.TrimSpace(c.Name),
		Issuer:         c.Issuer,
		AnnualFee:      c.AnnualFee,
		RewardType:     models.RewardType(c.RewardType).Normalize(),
		RewardRate:     c.RewardRate,
		MinIncome:      c.Eligibility.MinIncome,
		MinCreditScore: c.Eligibility.MinCreditScore,
		Perks:          perks,
		ApplyLink:      c.ApplyLink,
		ImgURL:         c.ImgURL,
	}
}
