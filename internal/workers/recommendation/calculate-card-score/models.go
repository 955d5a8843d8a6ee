// internal/workers/recommendation/calculate-card-score/models.go
package calculatecardscore

import "card-advisor-workers/internal/models"

type Input struct {
	UserProfile *models.UserProfile `json:"userProfile"`
	Card        *models.CardRecord  `json:"card"`
}

type Output struct {
	CardName  string                `json:"cardName"`
	Score     int                   `json:"score"`
	RawScore  int                   `json:"rawScore"`
	Eligible  bool                  `json:"eligible"`
	Breakdown models.ScoreBreakdown `json:"breakdown"`
}
