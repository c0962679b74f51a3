package tiers

import (
	"context"
	"errors"

	"torgi-backend/internal/domain"
	"torgi-backend/internal/pricing"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// List returns all tiers in canonical resolver order.
func (s *Service) List(ctx context.Context) ([]domain.PriceTier, error) {
	var tiers []domain.PriceTier
	if err := s.DB.WithContext(ctx).Find(&tiers).Error; err != nil {
		return nil, err
	}
	return pricing.SortTiers(tiers), nil
}

// TierInput is the admin create/update payload. A nil MaxPrice makes the tier
// the unbounded catch-all.
type TierInput struct {
	Label     string   `json:"label"`
	Amount    float64  `json:"amount"`
	MaxPrice  *float64 `json:"max_price"`
	SortOrder int      `json:"sort_order"`
}

func (in TierInput) validate() error {
	if in.Label == "" {
		return errors.New("label is required")
	}
	if in.Amount <= 0 {
		return errors.New("amount must be a positive number")
	}
	if in.MaxPrice != nil && *in.MaxPrice <= 0 {
		return errors.New("max_price must be a positive number")
	}
	return nil
}

// Create inserts a new tier.
func (s *Service) Create(ctx context.Context, in TierInput) (*domain.PriceTier, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	tier := domain.PriceTier{
		Label:     in.Label,
		Amount:    in.Amount,
		MaxPrice:  in.MaxPrice,
		SortOrder: in.SortOrder,
	}
	if err := s.DB.WithContext(ctx).Create(&tier).Error; err != nil {
		return nil, err
	}
	return &tier, nil
}

// Update replaces a tier's fields.
func (s *Service) Update(ctx context.Context, id int64, in TierInput) (*domain.PriceTier, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var tier domain.PriceTier
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&tier).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Tier not found")
		}
		return nil, err
	}
	tier.Label = in.Label
	tier.Amount = in.Amount
	tier.MaxPrice = in.MaxPrice
	tier.SortOrder = in.SortOrder
	if err := s.DB.WithContext(ctx).Save(&tier).Error; err != nil {
		return nil, err
	}
	return &tier, nil
}

// Delete removes a tier.
func (s *Service) Delete(ctx context.Context, id int64) error {
	res := s.DB.WithContext(ctx).Delete(&domain.PriceTier{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("Tier not found")
	}
	return nil
}

// GetSettings returns the single pricing settings row.
func (s *Service) GetSettings(ctx context.Context) (*domain.PricingSettings, error) {
	settings := domain.PricingSettings{ID: 1}
	if err := s.DB.WithContext(ctx).Where("id = ?", 1).FirstOrCreate(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings stores the deposit percent, normalized into [0,100] and
// rounded to two decimals.
func (s *Service) UpdateSettings(ctx context.Context, depositPercent float64) (*domain.PricingSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	settings.DepositPercent = pricing.NormalizeDepositPercent(depositPercent)
	if err := s.DB.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
