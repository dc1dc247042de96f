package domain

import (
	"time"

	"github.com/beezio/marketplace/internal/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Product is a marketplace listing. The pricing fields are a frozen copy of
// the breakdown computed at creation time; later rate-card changes never
// alter them.
type Product struct {
	ID          int64             `json:"id" gorm:"primaryKey"`
	SellerID    int64             `json:"seller_id" gorm:"column:seller_id;not null;index"`
	Title       string            `json:"title" gorm:"type:text;not null"`
	Slug        string            `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description *string           `json:"description,omitempty" gorm:"type:text"`
	Currency    string            `json:"currency" gorm:"type:text;not null;default:USD"`
	Active      bool              `json:"active" gorm:"not null;default:true"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`

	CommissionType  pricing.CommissionType `json:"commission_type" gorm:"type:text;not null"`
	CommissionRate  decimal.Decimal        `json:"commission_rate" gorm:"type:numeric;not null"`
	ReferralRate    decimal.Decimal        `json:"referral_rate" gorm:"type:numeric;not null"`
	PlatformFeeRate decimal.Decimal        `json:"platform_fee_rate" gorm:"type:numeric;not null"`

	SellerAmount    decimal.Decimal `json:"seller_amount" gorm:"type:numeric;not null"`
	AffiliateAmount decimal.Decimal `json:"affiliate_amount" gorm:"type:numeric;not null"`
	PlatformFee     decimal.Decimal `json:"platform_fee" gorm:"type:numeric;not null"`
	ProcessorFee    decimal.Decimal `json:"processor_fee" gorm:"type:numeric;not null"`
	ListingPrice    decimal.Decimal `json:"listing_price" gorm:"type:numeric;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }
