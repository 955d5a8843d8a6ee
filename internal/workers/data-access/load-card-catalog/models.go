// internal/workers/data-access/load-card-catalog/models.go
package loadcardcatalog

import "card-advisor-workers/internal/models"

type Input struct {
	// Refresh drops the cached catalog before loading.
	Refresh bool `json:"refresh,omitempty"`
}

type Output struct {
	Catalog   []models.CardRecord `json:"catalog"`
	CardCount int                 `json:"cardCount"`
	Refreshed bool                `json:"refreshed"`
}
