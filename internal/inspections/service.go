package inspections

import (
	"context"
	"errors"
	"time"

	"torgi-backend/internal/domain"
	"torgi-backend/internal/infrastructure/database"
	"torgi-backend/internal/listings"
	"torgi-backend/internal/pkg/listingref"
	"torgi-backend/internal/pkg/money"
	"torgi-backend/internal/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB      *gorm.DB
	Pricing pricing.Config
}

// CreateOrder issues an inspection order: resolves the listing, then inside a
// transaction locks the user row, prices the service, verifies and debits the
// balance and inserts the order. Debit and insert are atomic; every failure
// path rolls the whole thing back via the transaction closure.
func (s *Service) CreateOrder(ctx context.Context, userID uuid.UUID, ref listingref.Ref) (*domain.InspectionOrder, error) {
	// Listings are read-only reference data for the order engine; no lock.
	listing, err := listings.FindByRef(s.DB.WithContext(ctx), ref)
	if err != nil {
		return nil, err
	}

	var order *domain.InspectionOrder
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := database.LockForUpdate(tx).Where("user_id = ?", userID).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New("User not found")
			}
			return err
		}
		if user.BalanceFrozen {
			return errors.New("Balance is frozen")
		}

		var tiers []domain.PriceTier
		if err := tx.Find(&tiers).Error; err != nil {
			return err
		}
		q := s.Pricing.InspectionQuote(listing, pricing.SortTiers(tiers), user.SubscriptionStatus)

		if user.Balance < q.FinalAmount {
			return errors.New("Insufficient funds")
		}
		newBalance := money.Round2(user.Balance - q.FinalAmount)
		if err := tx.Model(&user).Update("balance", newBalance).Error; err != nil {
			return err
		}

		order = &domain.InspectionOrder{
			UserID:           user.UserID,
			ListingID:        listing.ID,
			Status:           domain.InspectionStatusInitial,
			BasePrice:        q.BasePrice,
			DiscountPercent:  q.DiscountPercent,
			FinalAmount:      q.FinalAmount,
			ServiceTier:      q.ServiceTier,
			LotPriceEstimate: q.LotPriceEstimate,
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListForUser returns the caller's inspection orders, newest first, and
// stamps user_last_viewed_at so the frontend can clear unread badges.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.InspectionOrder, error) {
	var orders []domain.InspectionOrder
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.DB.WithContext(ctx).Model(&domain.InspectionOrder{}).
		Where("user_id = ?", userID).
		UpdateColumn("user_last_viewed_at", now).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll returns all inspection orders for the admin screen and stamps
// admin_last_viewed_at.
func (s *Service) ListAll(ctx context.Context) ([]domain.InspectionOrder, error) {
	var orders []domain.InspectionOrder
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.DB.WithContext(ctx).Model(&domain.InspectionOrder{}).
		Where("1 = 1").
		UpdateColumn("admin_last_viewed_at", now).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus sets a new status on an inspection order. Pricing fields are
// never touched; only status and updated_at change.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status string) (*domain.InspectionOrder, error) {
	if status == "" || len(status) > 200 {
		return nil, errors.New("Invalid status")
	}
	var order domain.InspectionOrder
	if err := s.DB.WithContext(ctx).Where("id = ?", orderID).First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Order not found")
		}
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}
	order.Status = status
	return &order, nil
}

// Statuses returns the fixed inspection workflow.
func (s *Service) Statuses() []string {
	return domain.InspectionStatuses
}
