package pricing

import "github.com/shopspring/decimal"

// Engine computes pricing breakdowns. It is pure and synchronous: no I/O,
// no shared mutable state. Safe for concurrent use.
type Engine struct {
	source ConfigSource
}

// NewEngine builds an engine over a fixed configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{source: staticSource{cfg: cfg}}
}

// NewEngineWithSource builds an engine that re-reads configuration on every
// computation, so rate-card reloads apply without restarts. Previously
// persisted breakdowns are frozen copies and are never recomputed.
func NewEngineWithSource(src ConfigSource) *Engine {
	return &Engine{source: src}
}

// Calculate runs the forward direction: seller's desired amount in,
// reconciled breakdown and customer listing price out.
//
// The processor fee is a function of the final charged price, which makes
// the listing price a fixed point. It is solved in closed form,
//
//	listing = (seller + affiliate + platform + fixedFee) / (1 - percent)
//
// rather than by adding a fee computed on the subtotal, so the sum
// invariant holds exactly.
func (e *Engine) Calculate(in Input) (*Breakdown, error) {
	cfg := e.source.PricingConfig()

	typ := in.AffiliateType.Normalize()
	if err := checkPolicy(in.AffiliateRate, typ); err != nil {
		return nil, err
	}
	if !in.SellerDesiredAmount.IsPositive() {
		return nil, ErrInvalidSellerAmount
	}

	seller := roundCents(in.SellerDesiredAmount)
	if !seller.IsPositive() {
		// Sub-half-cent asks round to zero.
		return nil, ErrInvalidSellerAmount
	}

	platformRate := e.resolvePlatformRate(cfg, seller, in.PlatformFeeRate)
	referralRate := e.resolveReferralRate(cfg, in.ReferralRate)

	affiliate := roundCents(affiliateAmount(seller, typ, in.AffiliateRate))
	platformFee := roundCents(seller.Mul(platformRate).Add(surcharge(cfg, seller)))
	subtotal := seller.Add(affiliate).Add(platformFee)

	listing := roundCents(closedFormListing(cfg, subtotal))
	// Materialized as the residual so the breakdown reconciles to the cent;
	// stays within half a cent of listing*percent + fixed.
	processor := listing.Sub(subtotal)

	b := &Breakdown{
		SellerAmount:    seller,
		AffiliateAmount: affiliate,
		ReferralAmount:  roundCents(seller.Mul(referralRate)),
		PlatformFee:     platformFee,
		ProcessorFee:    processor,
		ListingPrice:    listing,
		TaxAmount:       roundCents(seller.Add(affiliate).Mul(cfg.TaxRate)),
		AffiliateRate:   in.AffiliateRate,
		AffiliateType:   typ,
		ReferralRate:    referralRate,
		PlatformFeeRate: platformRate,
	}

	if err := b.verify(); err != nil {
		return nil, err
	}
	return b, nil
}

// ReverseFromListingPrice inverts Calculate: given the customer-facing
// listing price, recover the seller amount that produces it. The forward
// relation is monotonically increasing but has no closed-form inverse when
// the commission is a percentage, so it is bisected over
// [0, max(listing, 1000)] for a fixed 18 iterations, which narrows the
// bracket to well under a tenth of a cent. The final midpoint is rounded to
// cents and fed back through Calculate, so the returned breakdown
// reconciles exactly; the achieved listing price may differ from the
// requested one by up to $0.01 of rounding slack.
func (e *Engine) ReverseFromListingPrice(listing, affiliateRate decimal.Decimal, typ CommissionType, referralRate, platformRate *decimal.Decimal) (*Breakdown, error) {
	cfg := e.source.PricingConfig()

	typ = typ.Normalize()
	if err := checkPolicy(affiliateRate, typ); err != nil {
		return nil, err
	}
	if !listing.IsPositive() {
		return nil, ErrInvalidListingPrice
	}

	low := zero
	high := maxDecimal(listing, decimal.NewFromInt(1000))
	mid := low

	for i := 0; i < 18; i++ {
		mid = low.Add(high).Div(two)
		price := e.listingFor(cfg, mid, affiliateRate, typ, platformRate)
		if price.GreaterThan(listing) {
			high = mid
		} else {
			low = mid
		}
	}

	seller := roundCents(mid)
	if !seller.IsPositive() {
		// The requested price does not cover even the fixed fees.
		return nil, ErrInvalidListingPrice
	}

	return e.Calculate(Input{
		SellerDesiredAmount: seller,
		AffiliateRate:       affiliateRate,
		AffiliateType:       typ,
		ReferralRate:        referralRate,
		PlatformFeeRate:     platformRate,
	})
}

// EstimateSellerAmount is the explicit degraded-input mode for records that
// predate frozen breakdowns: approximate the seller's share as 75% of the
// listing price. Callers must treat the result as an estimate, not a quote.
func (e *Engine) EstimateSellerAmount(listing decimal.Decimal) decimal.Decimal {
	if !listing.IsPositive() {
		return zero
	}
	return roundCents(listing.Mul(decimal.New(75, -2)))
}

// EstimateBreakdownFromListingPrice is the degraded-input mode for catalog
// rows that predate commission policies: the seller share is estimated via
// EstimateSellerAmount, no affiliate is assumed, and the platform keeps the
// remainder after processor fees. Callers must label the result an estimate.
func (e *Engine) EstimateBreakdownFromListingPrice(listing decimal.Decimal, referralRate *decimal.Decimal) (*Breakdown, error) {
	if !listing.IsPositive() {
		return nil, ErrInvalidListingPrice
	}
	cfg := e.source.PricingConfig()

	seller := e.EstimateSellerAmount(listing)
	processor := roundCents(listing.Mul(cfg.ProcessorPercent).Add(cfg.ProcessorFixedFee))
	platform := listing.Sub(seller).Sub(processor)
	if platform.IsNegative() {
		return nil, ErrInvalidListingPrice
	}
	referral := e.resolveReferralRate(cfg, referralRate)

	b := &Breakdown{
		SellerAmount:    seller,
		AffiliateAmount: zero,
		ReferralAmount:  roundCents(seller.Mul(referral)),
		PlatformFee:     platform,
		ProcessorFee:    processor,
		ListingPrice:    listing,
		TaxAmount:       roundCents(seller.Mul(cfg.TaxRate)),
		AffiliateType:   CommissionPercentage,
		ReferralRate:    referral,
	}
	if err := b.verify(); err != nil {
		return nil, err
	}
	return b, nil
}

// SplitPayout distributes a completed sale. The referral bonus comes out of
// the platform's own share, never the customer's price; whether it should
// instead be additive is an open product question, flagged in DESIGN.md.
func (e *Engine) SplitPayout(b *Breakdown) PayoutSplit {
	referral := b.ReferralAmount
	if referral.GreaterThan(b.PlatformFee) {
		referral = b.PlatformFee
	}
	return PayoutSplit{
		SellerPayout:        b.SellerAmount,
		AffiliateCommission: b.AffiliateAmount,
		ReferralBonus:       referral,
		PlatformNet:         b.PlatformFee.Sub(referral),
		ProcessorFee:        b.ProcessorFee,
	}
}

// ResolveReferralRate applies the same default-and-clamp rule Calculate uses
// to a caller-supplied override, for callers that need the effective rate
// without running a full computation.
func (e *Engine) ResolveReferralRate(override *decimal.Decimal) decimal.Decimal {
	return e.resolveReferralRate(e.source.PricingConfig(), override)
}

// listingFor is the unrounded forward listing price at a candidate seller
// amount, used as the bisection oracle.
func (e *Engine) listingFor(cfg Config, seller, affiliateRate decimal.Decimal, typ CommissionType, platformRate *decimal.Decimal) decimal.Decimal {
	if !seller.IsPositive() {
		return zero
	}
	rate := e.resolvePlatformRate(cfg, seller, platformRate)
	affiliate := affiliateAmount(seller, typ, affiliateRate)
	platformFee := seller.Mul(rate).Add(surcharge(cfg, seller))
	return closedFormListing(cfg, seller.Add(affiliate).Add(platformFee))
}

func (e *Engine) resolvePlatformRate(cfg Config, seller decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return clampDecimal(*override, cfg.MinPlatformFeeRate, cfg.MaxPlatformFeeRate)
	}
	return resolvePlatformFeeRate(cfg, seller)
}

func (e *Engine) resolveReferralRate(cfg Config, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return clampDecimal(*override, cfg.MinReferralRate, cfg.MaxReferralRate)
	}
	return cfg.DefaultReferralRate
}

func closedFormListing(cfg Config, subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(cfg.ProcessorFixedFee).Div(one.Sub(cfg.ProcessorPercent))
}

func affiliateAmount(seller decimal.Decimal, typ CommissionType, rate decimal.Decimal) decimal.Decimal {
	if typ == CommissionFlatRate {
		return rate
	}
	return seller.Mul(rate).Div(hundred)
}

func surcharge(cfg Config, seller decimal.Decimal) decimal.Decimal {
	if seller.IsPositive() && seller.LessThanOrEqual(cfg.SurchargeThreshold) {
		return cfg.SurchargeAmount
	}
	return zero
}

func checkPolicy(rate decimal.Decimal, typ CommissionType) error {
	if rate.IsNegative() {
		return ErrInvalidAffiliateRate
	}
	if typ == CommissionPercentage && rate.GreaterThan(hundred) {
		return ErrAffiliateRateAboveCap
	}
	return nil
}

func (b *Breakdown) verify() error {
	sum := b.SellerAmount.Add(b.AffiliateAmount).Add(b.PlatformFee).Add(b.ProcessorFee)
	if !sum.Equal(b.ListingPrice) {
		return ErrReconciliation
	}
	return nil
}
