package pricing

import (
	"math"
	"sort"

	"torgi-backend/internal/domain"
)

// SortTiers orders tiers the way the resolver consumes them: sort_order, then
// ceiling ascending with the unbounded tier last, then amount. The sort is
// stable so tiers with identical ceilings keep their stored order.
func SortTiers(tiers []domain.PriceTier) []domain.PriceTier {
	out := make([]domain.PriceTier, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		mi, mj := ceiling(out[i]), ceiling(out[j])
		if mi != mj {
			return mi < mj
		}
		return out[i].Amount < out[j].Amount
	})
	return out
}

func ceiling(t domain.PriceTier) float64 {
	if t.MaxPrice == nil {
		return math.Inf(1)
	}
	return *t.MaxPrice
}

// ResolveTier picks the flat service-fee tier for an estimated lot price.
// Tiers must already be in canonical order (SortTiers). A nil price means the
// lot price could not be determined; in that case the second tier is charged
// rather than the cheapest, so unknown lots are not under-billed. With fewer
// than two tiers whatever exists is used. Returns nil only when no tiers
// are configured.
func ResolveTier(tiers []domain.PriceTier, price *float64) *domain.PriceTier {
	if len(tiers) == 0 {
		return nil
	}
	if price == nil {
		if len(tiers) >= 2 {
			return &tiers[1]
		}
		return &tiers[0]
	}
	for i := range tiers {
		if ceiling(tiers[i]) >= *price {
			return &tiers[i]
		}
	}
	// No ceiling covers the price; the last tier is the unbounded catch-all
	// when tiers are configured correctly, so this only happens with a
	// malformed table. Charge the last tier.
	return &tiers[len(tiers)-1]
}

// TradeFee computes the percentage-of-deposit accompaniment fee, rounded to
// the nearest whole currency unit.
func TradeFee(deposit, depositPercent float64) float64 {
	return math.Round(deposit * depositPercent / 100)
}

// NormalizeDepositPercent clamps a raw percent into [0,100] and rounds it to
// two decimals for storage.
func NormalizeDepositPercent(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 100 {
		return 100
	}
	return math.Round(v*100) / 100
}
