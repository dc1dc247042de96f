package domain

import (
	"context"
	"errors"
	"time"

	"github.com/beezio/marketplace/internal/pricing"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
}

type CreateRequest struct {
	SellerID            string                 `json:"seller_id"`
	Title               string                 `json:"title"`
	Description         *string                `json:"description"`
	Currency            string                 `json:"currency"`
	SellerDesiredAmount decimal.Decimal        `json:"seller_desired_amount"`
	AffiliateRate       decimal.Decimal        `json:"affiliate_rate"`
	AffiliateType       pricing.CommissionType `json:"affiliate_type"`
	ReferralRate        *decimal.Decimal       `json:"referral_rate"`
	PlatformFeeRate     *decimal.Decimal       `json:"platform_fee_rate"`
	Metadata            map[string]any         `json:"metadata"`
}

type ListRequest struct {
	SellerID string `json:"seller_id"`
	Active   *bool  `json:"active"`
}

type Response struct {
	ID          string         `json:"id"`
	SellerID    string         `json:"seller_id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description *string        `json:"description,omitempty"`
	Currency    string         `json:"currency"`
	Active      bool           `json:"active"`
	Metadata    map[string]any `json:"metadata,omitempty"`

	Breakdown pricing.Breakdown          `json:"breakdown"`
	Display   pricing.FormattedBreakdown `json:"display"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidSeller  = errors.New("invalid_seller")
	ErrInvalidTitle   = errors.New("invalid_title")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidPricing = errors.New("invalid_pricing")
	ErrNotFound       = errors.New("not_found")
)
