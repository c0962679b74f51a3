package pricing

import (
	"testing"

	"torgi-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

// The tier table used throughout: ≤500k:15000, ≤1.5M:25000, ≤3M:35000, ∞:50000.
func serviceTiers() []domain.PriceTier {
	return SortTiers([]domain.PriceTier{
		{ID: 4, Label: "Крупный", Amount: 50000, MaxPrice: nil, SortOrder: 3},
		{ID: 1, Label: "Базовый", Amount: 15000, MaxPrice: f(500000), SortOrder: 0},
		{ID: 3, Label: "Расширенный", Amount: 35000, MaxPrice: f(3000000), SortOrder: 2},
		{ID: 2, Label: "Стандарт", Amount: 25000, MaxPrice: f(1500000), SortOrder: 1},
	})
}

func TestResolveTier_SmallestCoveringCeiling(t *testing.T) {
	tiers := serviceTiers()

	tier := ResolveTier(tiers, f(450000))
	require.NotNil(t, tier)
	assert.Equal(t, 15000.0, tier.Amount)

	tier = ResolveTier(tiers, f(500000))
	require.NotNil(t, tier)
	assert.Equal(t, 15000.0, tier.Amount)

	tier = ResolveTier(tiers, f(500001))
	require.NotNil(t, tier)
	assert.Equal(t, 25000.0, tier.Amount)

	tier = ResolveTier(tiers, f(10000000))
	require.NotNil(t, tier)
	assert.Equal(t, 50000.0, tier.Amount)
}

func TestResolveTier_UnknownPriceUsesSecondTier(t *testing.T) {
	tier := ResolveTier(serviceTiers(), nil)
	require.NotNil(t, tier)
	assert.Equal(t, 25000.0, tier.Amount)
}

func TestResolveTier_UnknownPriceSingleTier(t *testing.T) {
	tiers := SortTiers([]domain.PriceTier{{Label: "Единый", Amount: 9000}})
	tier := ResolveTier(tiers, nil)
	require.NotNil(t, tier)
	assert.Equal(t, 9000.0, tier.Amount)
}

func TestResolveTier_NoTiers(t *testing.T) {
	assert.Nil(t, ResolveTier(nil, f(100)))
	assert.Nil(t, ResolveTier(nil, nil))
}

func TestSortTiers_TieBreakIsStable(t *testing.T) {
	tiers := SortTiers([]domain.PriceTier{
		{ID: 1, Label: "A", Amount: 100, MaxPrice: f(1000), SortOrder: 0},
		{ID: 2, Label: "B", Amount: 200, MaxPrice: f(1000), SortOrder: 0},
	})
	// Same sort_order and max: lower amount first, and the resolver takes
	// the first encountered.
	tier := ResolveTier(tiers, f(500))
	require.NotNil(t, tier)
	assert.Equal(t, "A", tier.Label)
}

func TestTradeFee(t *testing.T) {
	assert.Equal(t, 5000.0, TradeFee(100000, 5))
	assert.Equal(t, 333.0, TradeFee(10000, 3.33))
	assert.Equal(t, 0.0, TradeFee(10000, 0))
}

func TestNormalizeDepositPercent(t *testing.T) {
	assert.Equal(t, 5.0, NormalizeDepositPercent(5))
	assert.Equal(t, 5.56, NormalizeDepositPercent(5.555))
	assert.Equal(t, 0.0, NormalizeDepositPercent(-3))
	assert.Equal(t, 100.0, NormalizeDepositPercent(150))
}
