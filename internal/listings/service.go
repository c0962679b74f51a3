package listings

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"torgi-backend/internal/domain"
	"torgi-backend/internal/pkg/listingref"
	"torgi-backend/internal/pkg/money"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// GetPublished returns published listings, optionally filtered by region and
// category.
func (s *Service) GetPublished(ctx context.Context, region, category string) ([]domain.Listing, error) {
	q := s.DB.WithContext(ctx).Where("published = ?", true)
	if region != "" {
		q = q.Where("region = ?", region)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var listings []domain.Listing
	if err := q.Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// GetByRef loads one listing by its tagged identifier.
func (s *Service) GetByRef(ctx context.Context, ref listingref.Ref) (*domain.Listing, error) {
	return FindByRef(s.DB.WithContext(ctx), ref)
}

// FindByRef resolves a listing by internal numeric id or external source id.
// Shared with the order services, which call it inside their transactions.
func FindByRef(db *gorm.DB, ref listingref.Ref) (*domain.Listing, error) {
	if ref.IsZero() {
		return nil, errors.New("Listing not found")
	}
	var l domain.Listing
	q := db
	if ref.IsNumeric() {
		// Digit strings beyond bigint cannot be internal ids; they can only
		// be numeric external source ids.
		if n, err := strconv.ParseInt(ref.Numeric, 10, 64); err == nil {
			q = q.Where("id = ?", n)
		} else {
			q = q.Where("external_id = ?", ref.Numeric)
		}
	} else {
		q = q.Where("external_id = ?", ref.External)
	}
	if err := q.First(&l).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Listing not found")
		}
		return nil, err
	}
	return &l, nil
}

// IngestInput is one parsed lot payload from the external parser. Price
// fields arrive in whatever shape the source used (numbers, localized
// strings), so they are normalized here once.
type IngestInput struct {
	ExternalID   string                 `json:"external_id"`
	Title        string                 `json:"title"`
	Region       string                 `json:"region"`
	Category     string                 `json:"category"`
	Currency     string                 `json:"currency"`
	StartPrice   interface{}            `json:"start_price"`
	CurrentPrice interface{}            `json:"current_price"`
	MinPrice     interface{}            `json:"min_price"`
	EndDate      *time.Time             `json:"end_date"`
	SourceURL    string                 `json:"source_url"`
	Details      map[string]interface{} `json:"details"`
}

// Ingest upserts parsed lots by external_id. Existing listings keep their
// internal id and published flag; everything else is replaced by the fresh
// parse. Returns the number of created and updated rows.
func (s *Service) Ingest(ctx context.Context, inputs []IngestInput) (created, updated int, err error) {
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			if in.ExternalID == "" || in.Title == "" {
				return errors.New("external_id and title are required")
			}
			detailsJSON, err := json.Marshal(in.Details)
			if err != nil {
				return err
			}
			currency := in.Currency
			if currency == "" {
				currency = "RUB"
			}
			fresh := domain.Listing{
				ExternalID:   in.ExternalID,
				Title:        in.Title,
				Region:       in.Region,
				Category:     in.Category,
				Currency:     currency,
				StartPrice:   money.Parse(in.StartPrice),
				CurrentPrice: money.Parse(in.CurrentPrice),
				MinPrice:     money.Parse(in.MinPrice),
				EndDate:      in.EndDate,
				SourceURL:    in.SourceURL,
				Details:      datatypes.JSON(detailsJSON),
			}

			var existing domain.Listing
			err = tx.Where("external_id = ?", in.ExternalID).First(&existing).Error
			if err == gorm.ErrRecordNotFound {
				if err := tx.Create(&fresh).Error; err != nil {
					return err
				}
				created++
				continue
			}
			if err != nil {
				return err
			}
			fresh.ID = existing.ID
			fresh.Published = existing.Published
			fresh.CreatedAt = existing.CreatedAt
			if err := tx.Save(&fresh).Error; err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	return created, updated, err
}

// SetPublished flips a listing's visibility.
func (s *Service) SetPublished(ctx context.Context, ref listingref.Ref, published bool) (*domain.Listing, error) {
	l, err := FindByRef(s.DB.WithContext(ctx), ref)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(l).Update("published", published).Error; err != nil {
		return nil, err
	}
	l.Published = published
	return l, nil
}
