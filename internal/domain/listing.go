package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Listing is an aggregated auction/trade lot sourced from external parsers.
// Price columns may be empty even when the lot has a price: many sources only
// carry it somewhere inside Details as a localized string, so readers go
// through the pricing estimator instead of trusting the columns.
type Listing struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ExternalID   string         `gorm:"column:external_id;type:varchar(64);uniqueIndex" json:"external_id"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Region       string         `gorm:"column:region" json:"region"`
	Category     string         `gorm:"column:category" json:"category"`
	Currency     string         `gorm:"column:currency;type:varchar(8);default:'RUB'" json:"currency"`
	StartPrice   *float64       `gorm:"column:start_price;type:decimal(18,2)" json:"start_price"`
	CurrentPrice *float64       `gorm:"column:current_price;type:decimal(18,2)" json:"current_price"`
	MinPrice     *float64       `gorm:"column:min_price;type:decimal(18,2)" json:"min_price"`
	EndDate      *time.Time     `gorm:"column:end_date" json:"end_date"`
	SourceURL    string         `gorm:"column:source_url" json:"source_url"`
	Details      datatypes.JSON `gorm:"column:details;type:json" json:"details"`
	Published    bool           `gorm:"column:published;default:false" json:"published"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (Listing) TableName() string {
	return "listings"
}
