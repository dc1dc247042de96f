package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusPaid           Status = "paid"
	StatusCancelled      Status = "cancelled"
)

// Order is a checkout snapshot. Every money column is copied from the
// product's frozen breakdown at checkout time, so later rate-card or
// catalog changes never move an order's totals.
type Order struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	OrderNumber string `json:"order_number" gorm:"type:text;not null;uniqueIndex"`
	BuyerID     int64  `json:"buyer_id" gorm:"column:buyer_id;not null;index"`
	Currency    string `json:"currency" gorm:"type:text;not null;default:USD"`
	Status      Status `json:"status" gorm:"type:text;not null"`

	ReferralRate decimal.Decimal `json:"referral_rate" gorm:"type:numeric;not null"`

	ListingTotal     decimal.Decimal `json:"listing_total" gorm:"type:numeric;not null"`
	SellerTotal      decimal.Decimal `json:"seller_total" gorm:"type:numeric;not null"`
	AffiliateTotal   decimal.Decimal `json:"affiliate_total" gorm:"type:numeric;not null"`
	ReferralTotal    decimal.Decimal `json:"referral_total" gorm:"type:numeric;not null"`
	PlatformNetTotal decimal.Decimal `json:"platform_net_total" gorm:"type:numeric;not null"`
	ProcessorTotal   decimal.Decimal `json:"processor_total" gorm:"type:numeric;not null"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Order) TableName() string { return "orders" }

// OrderItem carries the per-unit split for one product line. Estimated is
// set when the product record had no usable frozen breakdown and the split
// was derived from the listing price alone.
type OrderItem struct {
	ID        int64 `json:"id" gorm:"primaryKey"`
	OrderID   int64 `json:"order_id" gorm:"not null;index"`
	ProductID int64 `json:"product_id" gorm:"not null;index"`
	Quantity  int64 `json:"quantity" gorm:"not null"`
	Estimated bool  `json:"estimated" gorm:"not null;default:false"`

	UnitListingPrice    decimal.Decimal `json:"unit_listing_price" gorm:"type:numeric;not null"`
	UnitSellerAmount    decimal.Decimal `json:"unit_seller_amount" gorm:"type:numeric;not null"`
	UnitAffiliateAmount decimal.Decimal `json:"unit_affiliate_amount" gorm:"type:numeric;not null"`
	UnitReferralBonus   decimal.Decimal `json:"unit_referral_bonus" gorm:"type:numeric;not null"`
	UnitPlatformNet     decimal.Decimal `json:"unit_platform_net" gorm:"type:numeric;not null"`
	UnitProcessorFee    decimal.Decimal `json:"unit_processor_fee" gorm:"type:numeric;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (OrderItem) TableName() string { return "order_items" }
