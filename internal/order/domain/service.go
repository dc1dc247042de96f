package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
}

type CheckoutItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type CheckoutRequest struct {
	BuyerID      string           `json:"buyer_id"`
	Currency     string           `json:"currency"`
	ReferralRate *decimal.Decimal `json:"referral_rate"`
	Items        []CheckoutItem   `json:"items"`
}

type ListRequest struct {
	BuyerID string `json:"buyer_id"`
}

type ItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Estimated bool   `json:"estimated"`

	UnitListingPrice    decimal.Decimal `json:"unit_listing_price"`
	UnitSellerAmount    decimal.Decimal `json:"unit_seller_amount"`
	UnitAffiliateAmount decimal.Decimal `json:"unit_affiliate_amount"`
	UnitReferralBonus   decimal.Decimal `json:"unit_referral_bonus"`
	UnitPlatformNet     decimal.Decimal `json:"unit_platform_net"`
	UnitProcessorFee    decimal.Decimal `json:"unit_processor_fee"`

	LineTotal decimal.Decimal `json:"line_total"`
}

type Response struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	BuyerID     string `json:"buyer_id"`
	Currency    string `json:"currency"`
	Status      Status `json:"status"`

	ReferralRate decimal.Decimal `json:"referral_rate"`

	ListingTotal     decimal.Decimal `json:"listing_total"`
	SellerTotal      decimal.Decimal `json:"seller_total"`
	AffiliateTotal   decimal.Decimal `json:"affiliate_total"`
	ReferralTotal    decimal.Decimal `json:"referral_total"`
	PlatformNetTotal decimal.Decimal `json:"platform_net_total"`
	ProcessorTotal   decimal.Decimal `json:"processor_total"`

	Items []ItemResponse `json:"items"`

	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrInvalidBuyer    = errors.New("invalid_buyer")
	ErrInvalidID       = errors.New("invalid_id")
	ErrEmptyOrder      = errors.New("empty_order")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrProductNotFound = errors.New("product_not_found")
	ErrProductInactive = errors.New("product_inactive")
	ErrUnpriceable     = errors.New("unpriceable_product")
	ErrMixedCurrency   = errors.New("mixed_currency_order")
	ErrNotFound        = errors.New("not_found")
)
