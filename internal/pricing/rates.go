package pricing

import "github.com/shopspring/decimal"

// ResolvePlatformFeeRate returns the platform's cut for a given seller
// amount. This tier is deliberately separate from the affiliate-rate
// recommendation tiers below; the two answer different questions.
func (e *Engine) ResolvePlatformFeeRate(sellerAmount decimal.Decimal) decimal.Decimal {
	return resolvePlatformFeeRate(e.source.PricingConfig(), sellerAmount)
}

func resolvePlatformFeeRate(cfg Config, sellerAmount decimal.Decimal) decimal.Decimal {
	if sellerAmount.LessThan(cfg.PlatformRateThreshold) {
		return cfg.PlatformRateHigh
	}
	return cfg.PlatformRateLow
}

var (
	recommendSmall = RateRecommendation{Low: 10, Medium: 15, High: 25}
	recommendMid   = RateRecommendation{Low: 8, Medium: 12, High: 20}
	recommendLarge = RateRecommendation{Low: 5, Medium: 10, High: 15}

	recommendMidFloor   = decimal.NewFromInt(50)
	recommendLargeFloor = decimal.NewFromInt(200)
)

// RecommendedAffiliateRates suggests low/medium/high commission percentages
// for a seller amount. Pure lookup; total over sellerAmount >= 0.
func (e *Engine) RecommendedAffiliateRates(sellerAmount decimal.Decimal) RateRecommendation {
	switch {
	case sellerAmount.LessThan(recommendMidFloor):
		return recommendSmall
	case sellerAmount.LessThan(recommendLargeFloor):
		return recommendMid
	default:
		return recommendLarge
	}
}
