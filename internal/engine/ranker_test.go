// internal/engine/ranker_test.go
package engine

import (
	"fmt"
	"sync"
	"testing"

	"card-advisor-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []models.CardRecord {
	return []models.CardRecord{
		{Name: "Travel One", RewardType: models.RewardMiles, RewardRate: "4 miles on travel", MinIncome: 100000, MinCreditScore: 750, Perks: []string{"travel", "lounge access"}, AnnualFee: 10000},
		workedExampleCard(),
		{Name: "Grocer Plus", RewardType: models.RewardCashback, RewardRate: "5% on groceries", MinIncome: 20000, MinCreditScore: 650, Perks: []string{"groceries"}, AnnualFee: 0},
		{Name: "Dine Max", RewardType: models.RewardPoints, RewardRate: "10 points on dining", MinIncome: 25000, MinCreditScore: 700, Perks: []string{"dining"}, AnnualFee: 1000},
		{Name: "Plain Card", RewardType: models.RewardOther, RewardRate: "", MinIncome: 0, MinCreditScore: 0, AnnualFee: 0},
		{Name: "Fuel Saver Lite", RewardType: models.RewardCashback, RewardRate: "2.5% on fuel", MinIncome: 15000, MinCreditScore: 600, Perks: []string{"Fuel surcharge waiver"}, AnnualFee: 250},
		{Name: "Premium Fuel", RewardType: models.RewardFuelPoints, RewardRate: "13 points on fuel", MinIncome: 60000, MinCreditScore: 750, Perks: []string{"fuel"}, AnnualFee: 1500},
	}
}

func TestRank_WorkedExample(t *testing.T) {
	recs := Rank(workedExampleProfile(), []models.CardRecord{workedExampleCard()})
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "Fuel Saver", rec.Name)
	assert.Equal(t, 120, rec.Score)
	assert.InDelta(t, 3360.0, rec.AnnualReward, 1e-6)
	assert.Equal(t, "You could earn ₹3360/year in cashback", rec.RewardSimulation)
	assert.Equal(t, []string{"Matches your cashback", "Suitable for your fuel spending"}, rec.Reasons)
	assert.Equal(t, []string{"fuel", "dining"}, rec.Perks)
}

func TestRank_OrderingAndTruncation(t *testing.T) {
	recs := Rank(workedExampleProfile(), testCatalog())
	require.Len(t, recs, DefaultMaxResults)

	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}
	for _, r := range recs {
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.LessOrEqual(t, r.Score, MaxRawScore)
	}
	assert.Equal(t, "Fuel Saver", recs[0].Name)
}

func TestRank_StableTies(t *testing.T) {
	var catalog []models.CardRecord
	for i := 0; i < 8; i++ {
		catalog = append(catalog, models.CardRecord{Name: fmt.Sprintf("Card %d", i), RewardType: models.RewardOther})
	}

	recs := Ranker{MaxResults: 8}.Rank(models.UserProfile{}, catalog)
	require.Len(t, recs, 8)
	for i, r := range recs {
		assert.Equal(t, fmt.Sprintf("Card %d", i), r.Name)
	}
}

func TestRank_Exclusion(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		excluded []string
	}{
		{"none sentinel keeps all", "none", nil},
		{"none sentinel any case", " NONE ", nil},
		{"empty keeps all", "", nil},
		{"single card", "I have the fuel saver card", []string{"Fuel Saver"}},
		{"substring quirk", "Fuel Saver Lite", []string{"Fuel Saver", "Fuel Saver Lite"}},
		{"several cards", "dine max, plain card", []string{"Dine Max", "Plain Card"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := workedExampleProfile()
			p.ExistingCards = tt.existing

			recs := Ranker{MaxResults: 100}.Rank(p, testCatalog())
			assert.Len(t, recs, len(testCatalog())-len(tt.excluded))

			names := make(map[string]bool)
			for _, r := range recs {
				names[r.Name] = true
			}
			for _, ex := range tt.excluded {
				assert.False(t, names[ex], ex)
			}
		})
	}
}

func TestRank_Empty(t *testing.T) {
	recs := Rank(workedExampleProfile(), nil)
	require.NotNil(t, recs)
	assert.Empty(t, recs)

	p := workedExampleProfile()
	p.ExistingCards = "Fuel Saver"
	recs = Rank(p, []models.CardRecord{workedExampleCard()})
	require.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRank_DefaultReasonAndNormalize(t *testing.T) {
	p := workedExampleProfile()
	p.BenefitsPreference = ""

	recs := Ranker{Normalize: true}.Rank(p, []models.CardRecord{workedExampleCard()})
	require.Len(t, recs, 1)
	assert.Equal(t, "Matches your preferred benefits", recs[0].Reasons[0])
	assert.Equal(t, NormalizeScore(100), recs[0].Score)
	assert.LessOrEqual(t, recs[0].Score, 100)
}

func TestRank_DoesNotAliasCatalog(t *testing.T) {
	catalog := []models.CardRecord{workedExampleCard()}
	recs := Rank(workedExampleProfile(), catalog)
	recs[0].Perks[0] = "mutated"
	assert.Equal(t, "fuel", catalog[0].Perks[0])
}

func TestRank_Concurrent(t *testing.T) {
	catalog := testCatalog()
	want := Rank(workedExampleProfile(), catalog)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Rank(workedExampleProfile(), catalog))
		}()
	}
	wg.Wait()
}
