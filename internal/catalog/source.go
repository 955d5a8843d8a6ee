// internal/catalog/source.go
package catalog

import (
	"context"

	"card-advisor-workers/internal/models"
)

// Source supplies the full card catalog in a stable order.
type Source interface {
	LoadAll(ctx context.Context) ([]models.CardRecord, error)
}

// StaticSource serves a fixed in-memory catalog, typically the seed file.
type StaticSource struct {
	cards []models.CardRecord
}

func NewStaticSource(cards []models.CardRecord) *StaticSource {
	return &StaticSource{cards: cloneCards(cards)}
}

func (s *StaticSource) LoadAll(_ context.Context) ([]models.CardRecord, error) {
	return cloneCards(s.cards), nil
}

func cloneCards(cards []models.CardRecord) []models.CardRecord {
	out := make([]models.CardRecord, len(cards))
	for i, c := range cards {
		perks := make([]string, len(c.Perks))
		copy(perks, c.Perks)
		c.Perks = perks
		out[i] = c
	}
	return out
}
