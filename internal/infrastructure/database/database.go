package database

import (
	"torgi-backend/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Open opens a GORM DB from DSN (Postgres pooler URL).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers (e.g. PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Listing{},
		&domain.InspectionOrder{},
		&domain.TradeOrder{},
		&domain.TradeOrderStatus{},
		&domain.PriceTier{},
		&domain.PricingSettings{},
	)
}

// LockForUpdate adds SELECT ... FOR UPDATE to a query inside a transaction.
// The sqlite test driver has no FOR UPDATE; its transactions are single-writer
// and serialize on their own, so the clause is applied on Postgres only.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Seed inserts the canonical trade-order statuses and the pricing settings
// row when they are missing. Safe to run on every startup.
func Seed(db *gorm.DB) error {
	for i, label := range domain.DefaultTradeOrderStatuses {
		s := domain.TradeOrderStatus{Label: label, SortOrder: i}
		if err := db.Where("label = ?", label).FirstOrCreate(&s).Error; err != nil {
			return err
		}
	}
	settings := domain.PricingSettings{ID: 1}
	return db.FirstOrCreate(&settings).Error
}
