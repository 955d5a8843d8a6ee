// internal/engine/ranker.go
package engine

import (
	"fmt"
	"sort"
	"strings"

	"card-advisor-workers/internal/models"
)

const DefaultMaxResults = 5

// Ranker builds shortlists. The zero value uses DefaultMaxResults and raw scores.
type Ranker struct {
	MaxResults int
	Normalize  bool
}

// Rank scores the catalog for a profile with the default settings.
func Rank(profile models.UserProfile, catalog []models.CardRecord) []models.Recommendation {
	return Ranker{}.Rank(profile, catalog)
}

// Rank drops cards the user already holds, scores and simulates the rest,
// and returns the best MaxResults ordered by score. Equal scores keep catalog
// order. The result is never nil.
func (r Ranker) Rank(profile models.UserProfile, catalog []models.CardRecord) []models.Recommendation {
	limit := r.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	top := TopCategory(profile)
	reasons := func() []string {
		return []string{
			fmt.Sprintf("Matches your %s", benefitLabel(profile.BenefitsPreference)),
			fmt.Sprintf("Suitable for your %s spending", top),
		}
	}

	recs := make([]models.Recommendation, 0, len(catalog))
	for _, card := range catalog {
		if AlreadyHeld(profile, card) {
			continue
		}
		score := Score(profile, card)
		if r.Normalize {
			score = NormalizeScore(score)
		}
		reward := SimulateAnnualReward(profile, card)
		recs = append(recs, models.Recommendation{
			Name:             card.Name,
			Issuer:           card.Issuer,
			AnnualFee:        card.AnnualFee,
			RewardType:       card.RewardType,
			RewardRate:       card.RewardRate,
			Perks:            append([]string(nil), card.Perks...),
			ApplyLink:        card.ApplyLink,
			ImgURL:           card.ImgURL,
			Score:            score,
			AnnualReward:     reward,
			RewardSimulation: RenderRewardSimulation(reward, card.RewardType),
			Reasons:          reasons(),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// AlreadyHeld reports whether the card name appears in the profile's existing
// cards text. Matching is a case-insensitive substring test.
func AlreadyHeld(profile models.UserProfile, card models.CardRecord) bool {
	if !profile.HasExistingCards() {
		return false
	}
	name := strings.ToLower(strings.TrimSpace(card.Name))
	if name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(profile.ExistingCards), name)
}

func benefitLabel(preference string) string {
	if p := strings.TrimSpace(preference); p != "" {
		return p
	}
	return "preferred benefits"
}
