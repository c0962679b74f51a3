package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription statuses.
const (
	SubscriptionFree = "free"
	SubscriptionPro  = "pro"
)

// User is a marketplace account with a prepaid balance.
// Balance is decremented only by order issuance; top-ups and freezes come
// from outside this service.
type User struct {
	UserID             uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Phone              string         `gorm:"column:phone;type:varchar(20);uniqueIndex" json:"phone"`
	Fullname           string         `gorm:"column:fullname" json:"fullname"`
	Email              string         `gorm:"column:email" json:"email"`
	PasswordHash       string         `gorm:"column:password_hash" json:"-"`
	Role               string         `gorm:"column:role;not null;default:user" json:"role"`
	Balance            float64        `gorm:"column:balance;type:decimal(18,2);not null;default:0" json:"balance"`
	SubscriptionStatus string         `gorm:"column:subscription_status;type:varchar(10);not null;default:free" json:"subscription_status"`
	BalanceFrozen      bool           `gorm:"column:balance_frozen;not null;default:false" json:"balance_frozen"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate sets user_id for DBs without default uuid.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
