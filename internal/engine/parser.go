// internal/engine/parser.go
package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultRate is returned when a reward-rate text yields nothing usable.
const DefaultRate = 0.01

// minReverseMatch is the shortest tagged word that may match as a part of the
// category name.
const minReverseMatch = 3

const unitPattern = `(%|percent|points?|pts|miles?|neucoins?|coins?)`

var (
	// "5% on fuel", "4 points on dining", "5% cashback on travel". At most one
	// qualifier word may sit between the unit and "on".
	taggedRatePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*` + unitPattern + `(?:\s+[a-z\-]+)?\s+on\s+([a-z][a-z&\-]*)`)
	bareRatePattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*` + unitPattern)
)

// ParseRate extracts the reward rate that applies to category from a free-text
// reward-rate description. Percentages come back as fractions (5% -> 0.05)
// with isPercentage set; point, mile and coin counts come back as-is.
//
// The first tagged occurrence whose word matches the category (or is
// "other"/"others") wins. A bare "<number><unit>" is only considered when the
// text carries no tagged occurrence at all. Anything else yields DefaultRate.
func ParseRate(text, category string) (rate float64, isPercentage bool) {
	category = strings.ToLower(strings.TrimSpace(category))

	tagged := taggedRatePattern.FindAllStringSubmatch(text, -1)
	for _, m := range tagged {
		word := strings.ToLower(m[3])
		if !categoryMatches(word, category) {
			continue
		}
		if r, pct, ok := rateFromMatch(m[1], m[2]); ok {
			return r, pct
		}
	}

	if len(tagged) == 0 {
		for _, m := range bareRatePattern.FindAllStringSubmatch(text, -1) {
			if r, pct, ok := rateFromMatch(m[1], m[2]); ok {
				return r, pct
			}
		}
	}

	return DefaultRate, true
}

func categoryMatches(word, category string) bool {
	if word == "other" || word == "others" {
		return true
	}
	if category == "" {
		return false
	}
	if strings.Contains(word, category) {
		return true
	}
	// Short fillers such as "a" would otherwise match most categories.
	return len(word) >= minReverseMatch && strings.Contains(category, word)
}

func rateFromMatch(number, unit string) (float64, bool, bool) {
	v, err := strconv.ParseFloat(number, 64)
	if err != nil || v <= 0 {
		return 0, false, false
	}
	if isPercentUnit(unit) {
		v /= 100
		if v > 1 {
			return 0, false, false
		}
		return v, true, true
	}
	return v, false, true
}

func isPercentUnit(unit string) bool {
	u := strings.ToLower(unit)
	return u == "%" || u == "percent"
}
