// Package pricing computes service fees for inspection and trade-order
// requests: lot price estimation over heterogeneous parser payloads, flat
// tier resolution, percentage-of-deposit fees and PRO discounts. Every
// function here is total; only the surrounding transaction can fail.
package pricing

import (
	"math"

	"torgi-backend/internal/domain"
)

// Config carries the admin-tunable pricing knobs, loaded once at startup and
// injected into the order services.
type Config struct {
	ProDiscountInspection float64
	ProDiscountTrade      float64
}

// Quote is the pricing outcome persisted onto an order at creation. Final
// amounts are fixed here and never recomputed by later status changes.
type Quote struct {
	BasePrice        float64
	DiscountPercent  float64
	FinalAmount      float64
	ServiceTier      *string
	LotPriceEstimate *float64
	DepositAmount    *float64
}

// ApplyDiscount computes the charged amount from a base fee: PRO subscribers
// get proPercent off, everyone else pays full. Clamped at zero.
func ApplyDiscount(base float64, subscriptionStatus string, proPercent float64) (discount, final float64) {
	if subscriptionStatus == domain.SubscriptionPro {
		discount = proPercent
	}
	final = math.Round(base * (100 - discount) / 100)
	if final < 0 {
		final = 0
	}
	return discount, final
}

// InspectionQuote prices an inspection order: estimate the lot price, resolve
// the flat tier, apply the PRO discount.
func (c Config) InspectionQuote(l *domain.Listing, tiers []domain.PriceTier, subscriptionStatus string) Quote {
	est := EstimateLotPrice(l)
	q := Quote{LotPriceEstimate: est}
	if t := ResolveTier(tiers, est); t != nil {
		q.BasePrice = t.Amount
		q.ServiceTier = &t.Label
	}
	q.DiscountPercent, q.FinalAmount = ApplyDiscount(q.BasePrice, subscriptionStatus, c.ProDiscountInspection)
	return q
}

// TradeQuote prices a trade-accompaniment order. When the lot's deposit is
// discoverable and a deposit percent is configured the fee is a percentage
// of the deposit; otherwise it falls back to the flat tier table, same as
// inspections.
func (c Config) TradeQuote(l *domain.Listing, tiers []domain.PriceTier, settings domain.PricingSettings, subscriptionStatus string) Quote {
	est := EstimateLotPrice(l)
	dep := EstimateDeposit(l)
	q := Quote{LotPriceEstimate: est, DepositAmount: dep}

	if dep != nil && settings.DepositPercent > 0 {
		q.BasePrice = TradeFee(*dep, settings.DepositPercent)
	} else if t := ResolveTier(tiers, est); t != nil {
		q.BasePrice = t.Amount
		q.ServiceTier = &t.Label
	}
	q.DiscountPercent, q.FinalAmount = ApplyDiscount(q.BasePrice, subscriptionStatus, c.ProDiscountTrade)
	return q
}
