package tiers

import (
	"context"
	"testing"

	"torgi-backend/internal/domain"
	"torgi-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func f(v float64) *float64 { return &v }

func setupService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.PriceTier{}, &domain.PricingSettings{}, &domain.TradeOrderStatus{}))
	require.NoError(t, database.Seed(db))
	return &Service{DB: db}, db
}

func TestCreateAndList_SortedByResolverOrder(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	// Inserted out of order on purpose.
	_, err := s.Create(ctx, TierInput{Label: "Крупный", Amount: 50000, SortOrder: 2})
	require.NoError(t, err)
	_, err = s.Create(ctx, TierInput{Label: "Базовый", Amount: 15000, MaxPrice: f(500000), SortOrder: 0})
	require.NoError(t, err)
	_, err = s.Create(ctx, TierInput{Label: "Стандарт", Amount: 25000, MaxPrice: f(1500000), SortOrder: 1})
	require.NoError(t, err)

	tiers, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tiers, 3)
	assert.Equal(t, "Базовый", tiers[0].Label)
	assert.Equal(t, "Стандарт", tiers[1].Label)
	assert.Equal(t, "Крупный", tiers[2].Label)
	assert.Nil(t, tiers[2].MaxPrice)
}

func TestCreate_Validation(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, TierInput{Label: "", Amount: 15000})
	require.Error(t, err)
	assert.Equal(t, "label is required", err.Error())

	_, err = s.Create(ctx, TierInput{Label: "Базовый", Amount: 0})
	require.Error(t, err)
	assert.Equal(t, "amount must be a positive number", err.Error())

	_, err = s.Create(ctx, TierInput{Label: "Базовый", Amount: 15000, MaxPrice: f(-1)})
	require.Error(t, err)
	assert.Equal(t, "max_price must be a positive number", err.Error())
}

func TestUpdate_ReplacesFields(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, TierInput{Label: "Базовый", Amount: 15000, MaxPrice: f(500000)})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, TierInput{Label: "Базовый+", Amount: 18000, MaxPrice: nil, SortOrder: 5})
	require.NoError(t, err)
	assert.Equal(t, "Базовый+", updated.Label)
	assert.Equal(t, 18000.0, updated.Amount)
	assert.Nil(t, updated.MaxPrice)
	assert.Equal(t, 5, updated.SortOrder)
}

func TestUpdate_NotFound(t *testing.T) {
	s, _ := setupService(t)
	_, err := s.Update(context.Background(), 999, TierInput{Label: "X", Amount: 1})
	require.Error(t, err)
	assert.Equal(t, "Tier not found", err.Error())
}

func TestDelete(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, TierInput{Label: "Базовый", Amount: 15000})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, created.ID))

	err = s.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, "Tier not found", err.Error())
}

func TestSettings_DefaultRow(t *testing.T) {
	s, _ := setupService(t)

	settings, err := s.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), settings.ID)
	assert.Equal(t, 0.0, settings.DepositPercent)
}

func TestUpdateSettings_NormalizesPercent(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	settings, err := s.UpdateSettings(ctx, 5.126)
	require.NoError(t, err)
	assert.Equal(t, 5.13, settings.DepositPercent)

	settings, err = s.UpdateSettings(ctx, -3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, settings.DepositPercent)

	settings, err = s.UpdateSettings(ctx, 250)
	require.NoError(t, err)
	assert.Equal(t, 100.0, settings.DepositPercent)

	// Persisted, not just returned.
	settings, err = s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100.0, settings.DepositPercent)
}
