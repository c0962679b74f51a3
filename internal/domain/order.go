package domain

import (
	"time"

	"github.com/google/uuid"
)

// Initial order statuses stamped by the issuance transaction.
const (
	InspectionStatusInitial = "Идет модерация"
	TradeOrderStatusInitial = "Оплачен/Ожидание модерации"
)

// InspectionStatuses is the fixed workflow for inspection orders.
var InspectionStatuses = []string{
	"Идет модерация",
	"Выполняется осмотр машины",
	"Завершен",
}

// InspectionOrder is a paid request for an inspection report on a lot.
// Pricing fields are written once at creation; status changes never
// recompute them.
type InspectionOrder struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID            uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	ListingID         int64      `gorm:"column:listing_id;not null;index" json:"listing_id"`
	Status            string     `gorm:"column:status;type:varchar(200);not null" json:"status"`
	BasePrice         float64    `gorm:"column:base_price;type:decimal(18,2);not null" json:"base_price"`
	DiscountPercent   float64    `gorm:"column:discount_percent;type:decimal(5,2);not null;default:0" json:"discount_percent"`
	FinalAmount       float64    `gorm:"column:final_amount;type:decimal(18,2);not null" json:"final_amount"`
	ServiceTier       *string    `gorm:"column:service_tier" json:"service_tier"`
	LotPriceEstimate  *float64   `gorm:"column:lot_price_estimate;type:decimal(18,2)" json:"lot_price_estimate"`
	UserLastViewedAt  *time.Time `gorm:"column:user_last_viewed_at" json:"user_last_viewed_at"`
	AdminLastViewedAt *time.Time `gorm:"column:admin_last_viewed_at" json:"admin_last_viewed_at"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (InspectionOrder) TableName() string {
	return "inspection_orders"
}

// TradeOrder is a paid request for bidding/document accompaniment on a lot.
type TradeOrder struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID            uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	ListingID         int64      `gorm:"column:listing_id;not null;index" json:"listing_id"`
	Status            string     `gorm:"column:status;type:varchar(200);not null" json:"status"`
	BasePrice         float64    `gorm:"column:base_price;type:decimal(18,2);not null" json:"base_price"`
	DiscountPercent   float64    `gorm:"column:discount_percent;type:decimal(5,2);not null;default:0" json:"discount_percent"`
	FinalAmount       float64    `gorm:"column:final_amount;type:decimal(18,2);not null" json:"final_amount"`
	ServiceTier       *string    `gorm:"column:service_tier" json:"service_tier"`
	LotPriceEstimate  *float64   `gorm:"column:lot_price_estimate;type:decimal(18,2)" json:"lot_price_estimate"`
	DepositAmount     *float64   `gorm:"column:deposit_amount;type:decimal(18,2)" json:"deposit_amount"`
	UserLastViewedAt  *time.Time `gorm:"column:user_last_viewed_at" json:"user_last_viewed_at"`
	AdminLastViewedAt *time.Time `gorm:"column:admin_last_viewed_at" json:"admin_last_viewed_at"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (TradeOrder) TableName() string {
	return "trade_orders"
}

// TradeOrderStatus is the allow-list backing the open-ended trade-order
// status set. Statuses the admin UI has not used before are inserted here on
// first use rather than mutating a DB enum type.
type TradeOrderStatus struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Label     string    `gorm:"column:label;type:varchar(200);not null;uniqueIndex" json:"label"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"createdAt"`
}

func (TradeOrderStatus) TableName() string {
	return "trade_order_statuses"
}

// DefaultTradeOrderStatuses seeds the allow-list with the canonical
// progression used by the admin UI.
var DefaultTradeOrderStatuses = []string{
	"Оплачен/Ожидание модерации",
	"Заявка подтверждена",
	"Подготовка к торгам",
	"Торги завершены",
}
