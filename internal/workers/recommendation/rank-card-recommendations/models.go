// internal/workers/recommendation/rank-card-recommendations/models.go
package rankcardrecommendations

import "card-advisor-workers/internal/models"

const (
	CatalogFromVariables = "variables"
	CatalogFromStore     = "store"
)

type Input struct {
	UserProfile *models.UserProfile `json:"userProfile"`
	// Catalog overrides the stored catalog when present.
	Catalog    []models.CardRecord `json:"catalog,omitempty"`
	MaxResults int                 `json:"maxResults,omitempty"`
}

type Output struct {
	Recommendations     []models.Recommendation `json:"recommendations"`
	RecommendationCount int                     `json:"recommendationCount"`
	CatalogSize         int                     `json:"catalogSize"`
	ExcludedCount       int                     `json:"excludedCount"`
	TopCategory         models.SpendingCategory `json:"topCategory"`
	CatalogSource       string                  `json:"catalogSource"`
}
