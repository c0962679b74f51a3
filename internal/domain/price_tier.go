package domain

import "time"

// PriceTier is a service-fee bracket: lots estimated at or below MaxPrice pay
// the flat Amount. A nil MaxPrice marks the unbounded catch-all tier; exactly
// one such tier is expected.
type PriceTier struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Label     string    `gorm:"column:label;not null" json:"label"`
	Amount    float64   `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	MaxPrice  *float64  `gorm:"column:max_price;type:decimal(18,2)" json:"max_price"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PriceTier) TableName() string {
	return "price_tiers"
}

// PricingSettings is a single-row table holding the trade-accompaniment fee
// percentage charged against a lot's deposit.
type PricingSettings struct {
	ID             int64     `gorm:"column:id;primaryKey" json:"id"`
	DepositPercent float64   `gorm:"column:deposit_percent;type:decimal(5,2);not null;default:0" json:"deposit_percent"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (PricingSettings) TableName() string {
	return "pricing_settings"
}
