package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CommissionType tags how an affiliate commission is computed.
type CommissionType string

const (
	// CommissionPercentage pays the affiliate a percentage of the seller amount.
	CommissionPercentage CommissionType = "percentage"
	// CommissionFlatRate pays a fixed amount regardless of seller amount.
	CommissionFlatRate CommissionType = "flat_rate"
)

// Normalize maps unknown tags to percentage, mirroring how product records
// created before the flat-rate option default their policy.
func (t CommissionType) Normalize() CommissionType {
	if t == CommissionFlatRate {
		return CommissionFlatRate
	}
	return CommissionPercentage
}

// Input is the forward calculator's argument set. ReferralRate and
// PlatformFeeRate are optional overrides; nil means platform defaults.
type Input struct {
	SellerDesiredAmount decimal.Decimal  `json:"seller_desired_amount"`
	AffiliateRate       decimal.Decimal  `json:"affiliate_rate"`
	AffiliateType       CommissionType   `json:"affiliate_type"`
	ReferralRate        *decimal.Decimal `json:"referral_rate,omitempty"`
	PlatformFeeRate     *decimal.Decimal `json:"platform_fee_rate,omitempty"`
}

// Breakdown is the reconciled multi-party split for one unit of a product.
// Invariant: SellerAmount + AffiliateAmount + PlatformFee + ProcessorFee ==
// ListingPrice, exactly to the cent. ReferralAmount and TaxAmount are
// informational line items and never additive into ListingPrice.
type Breakdown struct {
	SellerAmount    decimal.Decimal `json:"seller_amount"`
	AffiliateAmount decimal.Decimal `json:"affiliate_amount"`
	ReferralAmount  decimal.Decimal `json:"referral_amount"`
	PlatformFee     decimal.Decimal `json:"platform_fee"`
	ProcessorFee    decimal.Decimal `json:"processor_fee"`
	ListingPrice    decimal.Decimal `json:"listing_price"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`

	// Echo of the policy inputs, retained for audit and display.
	AffiliateRate   decimal.Decimal `json:"affiliate_rate"`
	AffiliateType   CommissionType  `json:"affiliate_type"`
	ReferralRate    decimal.Decimal `json:"referral_rate"`
	PlatformFeeRate decimal.Decimal `json:"platform_fee_rate"`
}

// PayoutSplit is the distribution applied when an order completes. The
// referral bonus is funded from the platform's own share, so
// PlatformNet = PlatformFee - ReferralBonus, floored at zero.
type PayoutSplit struct {
	SellerPayout        decimal.Decimal `json:"seller_payout"`
	AffiliateCommission decimal.Decimal `json:"affiliate_commission"`
	ReferralBonus       decimal.Decimal `json:"referral_bonus"`
	PlatformNet         decimal.Decimal `json:"platform_net"`
	ProcessorFee        decimal.Decimal `json:"processor_fee"`
}

// RateRecommendation is the suggested affiliate commission band for a
// given seller amount, in whole percent.
type RateRecommendation struct {
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
}

var (
	ErrInvalidSellerAmount   = errors.New("invalid_seller_amount")
	ErrInvalidAffiliateRate  = errors.New("invalid_affiliate_rate")
	ErrAffiliateRateAboveCap = errors.New("affiliate_rate_above_cap")
	ErrInvalidListingPrice   = errors.New("invalid_listing_price")

	// ErrReconciliation marks an internal logic fault: a computed breakdown
	// whose components do not sum to the listing price. Never user-facing.
	ErrReconciliation = errors.New("pricing_reconciliation_fault")
)
