package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Config carries every externally owned rate constant the engine consumes.
// Callers inject it explicitly; the engine never reads globals, so tests can
// exercise arbitrary rate regimes.
type Config struct {
	// Platform fee rate tiers, keyed on the seller's desired amount.
	PlatformRateHigh      decimal.Decimal // below the threshold
	PlatformRateLow       decimal.Decimal // at or above the threshold
	PlatformRateThreshold decimal.Decimal

	// Clamp bounds applied to caller-supplied platform rate overrides.
	MinPlatformFeeRate decimal.Decimal
	MaxPlatformFeeRate decimal.Decimal

	// Payment processor terms: percentage of the final charged price plus
	// a fixed per-transaction fee.
	ProcessorPercent  decimal.Decimal
	ProcessorFixedFee decimal.Decimal

	// Referral (recruiter override) slice, carved out of the platform share.
	DefaultReferralRate decimal.Decimal
	MinReferralRate     decimal.Decimal
	MaxReferralRate     decimal.Decimal

	// Flat platform surcharge for small asks. Zero amount disables it.
	SurchargeThreshold decimal.Decimal
	SurchargeAmount    decimal.Decimal

	// Informational sales tax rate on seller + affiliate. Never added to
	// the listing price; zero by default.
	TaxRate decimal.Decimal
}

var (
	ErrProcessorPercentTooHigh = errors.New("invalid_processor_percent")
	ErrNegativeRate            = errors.New("invalid_rate_config")
)

// DefaultConfig returns the platform's production rate card.
func DefaultConfig() Config {
	return Config{
		PlatformRateHigh:      decimal.New(15, -2),  // 15% under $100
		PlatformRateLow:       decimal.New(10, -2),  // 10% at $100 and up
		PlatformRateThreshold: decimal.NewFromInt(100),
		MinPlatformFeeRate:    decimal.New(10, -2),
		MaxPlatformFeeRate:    decimal.New(15, -2),
		ProcessorPercent:      decimal.New(29, -3), // 2.9%
		ProcessorFixedFee:     decimal.New(60, -2), // $0.60 per charge
		DefaultReferralRate:   decimal.New(5, -2),  // 5% of seller amount
		MinReferralRate:       decimal.Zero,
		MaxReferralRate:       decimal.New(10, -2),
		SurchargeThreshold:    decimal.NewFromInt(20),
		SurchargeAmount:       decimal.NewFromInt(1),
		TaxRate:               decimal.Zero,
	}
}

// Validate rejects configurations whose forward fixed point has no
// solution (processor percent >= 100%) or that carry negative rates.
func (c Config) Validate() error {
	if c.ProcessorPercent.GreaterThanOrEqual(one) || c.ProcessorPercent.IsNegative() {
		return ErrProcessorPercentTooHigh
	}
	for _, r := range []decimal.Decimal{
		c.PlatformRateHigh, c.PlatformRateLow, c.MinPlatformFeeRate,
		c.MaxPlatformFeeRate, c.ProcessorFixedFee, c.DefaultReferralRate,
		c.MinReferralRate, c.MaxReferralRate, c.SurchargeAmount, c.TaxRate,
	} {
		if r.IsNegative() {
			return ErrNegativeRate
		}
	}
	return nil
}

// ConfigSource yields the current engine configuration. The hot-reloading
// holder in internal/config implements it; tests use a static Config.
type ConfigSource interface {
	PricingConfig() Config
}

type staticSource struct{ cfg Config }

func (s staticSource) PricingConfig() Config { return s.cfg }
