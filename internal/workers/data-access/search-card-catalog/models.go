// internal/workers/data-access/search-card-catalog/models.go
package searchcardcatalog

import "card-advisor-workers/internal/models"

type Input struct {
	Query        string `json:"query"`
	RewardType   string `json:"rewardType,omitempty"`
	MaxAnnualFee *int   `json:"maxAnnualFee,omitempty"`
	Size         int    `json:"size,omitempty"`
}

type Hit struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type Output struct {
	Cards     []models.CardRecord `json:"cards"`
	Hits      []Hit               `json:"hits"`
	TotalHits int                 `json:"totalHits"`
	Took      int                 `json:"took"` // milliseconds
}
