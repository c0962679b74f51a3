package tradeorders

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

// CreateOrder issues a trade-accompaniment order. Same transactional contract
// as inspections: the user row is locked for the duration, the balance check
// and debit are atomic with the order insert, and a frozen balance blocks the
// debit before any pricing happens.
func (s *Service) CreateOrder(ctx context.Context, userID uuid.UUID, ref listingref.Ref) (*domain.TradeOrder, error) {
	listing, err := listings.FindByRef(s.DB.WithContext(ctx), ref)
	if err != nil {
		return nil, err
	}

	var order *domain.TradeOrder
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
		var settings domain.PricingSettings
		if err := tx.Where("id = ?", 1).First(&settings).Error; err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		q := s.Pricing.TradeQuote(listing, pricing.SortTiers(tiers), settings, user.SubscriptionStatus)

		if user.Balance < q.FinalAmount {
			return errors.New("Insufficient funds")
		}
		newBalance := money.Round2(user.Balance - q.FinalAmount)
		if err := tx.Model(&user).Update("balance", newBalance).Error; err != nil {
			return err
		}

		order = &domain.TradeOrder{
			UserID:           user.UserID,
			ListingID:        listing.ID,
			Status:           domain.TradeOrderStatusInitial,
			BasePrice:        q.BasePrice,
			DiscountPercent:  q.DiscountPercent,
			FinalAmount:      q.FinalAmount,
			ServiceTier:      q.ServiceTier,
			LotPriceEstimate: q.LotPriceEstimate,
			DepositAmount:    q.DepositAmount,
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListForUser returns the caller's trade orders and stamps
// user_last_viewed_at.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.TradeOrder, error) {
	var orders []domain.TradeOrder
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.DB.WithContext(ctx).Model(&domain.TradeOrder{}).
		Where("user_id = ?", userID).
		UpdateColumn("user_last_viewed_at", now).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll returns all trade orders for the admin screen and stamps
// admin_last_viewed_at.
func (s *Service) ListAll(ctx context.Context) ([]domain.TradeOrder, error) {
	var orders []domain.TradeOrder
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.DB.WithContext(ctx).Model(&domain.TradeOrder{}).
		Where("1 = 1").
		UpdateColumn("admin_last_viewed_at", now).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Statuses returns the current status allow-list in display order.
func (s *Service) Statuses(ctx context.Context) ([]string, error) {
	var rows []domain.TradeOrderStatus
	if err := s.DB.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(rows))
	for _, r := range rows {
		labels = append(labels, r.Label)
	}
	return labels, nil
}

// UpdateStatus sets a new status on a trade order. The status set is
// open-ended: an unseen label (non-empty, at most 200 chars) is admitted into
// the allow-list table first, then applied. Pricing fields are never touched.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status string) (*domain.TradeOrder, error) {
	if status == "" || len(status) > 200 {
		return nil, errors.New("Invalid status")
	}

	var order domain.TradeOrder
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", orderID).First(&order).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New("Order not found")
			}
			return err
		}

		// Admit unseen labels instead of failing; new ones sort after the
		// seeded progression.
		known := domain.TradeOrderStatus{Label: status, SortOrder: len(domain.DefaultTradeOrderStatuses)}
		if err := tx.Where("label = ?", status).FirstOrCreate(&known).Error; err != nil {
			return err
		}

		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return err
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
