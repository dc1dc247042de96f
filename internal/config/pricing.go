package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/beezio/marketplace/internal/pricing"
	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// PricingSettings is the file-facing shape of the engine rate card. Rates
// are plain floats in the YAML; they are converted to decimals once per
// load, not per calculation.
type PricingSettings struct {
	PlatformRateHigh      float64 `mapstructure:"platformRateHigh"`
	PlatformRateLow       float64 `mapstructure:"platformRateLow"`
	PlatformRateThreshold float64 `mapstructure:"platformRateThreshold"`
	MinPlatformFeeRate    float64 `mapstructure:"minPlatformFeeRate"`
	MaxPlatformFeeRate    float64 `mapstructure:"maxPlatformFeeRate"`
	ProcessorPercent      float64 `mapstructure:"processorPercent"`
	ProcessorFixedFee     float64 `mapstructure:"processorFixedFee"`
	DefaultReferralRate   float64 `mapstructure:"defaultReferralRate"`
	MinReferralRate       float64 `mapstructure:"minReferralRate"`
	MaxReferralRate       float64 `mapstructure:"maxReferralRate"`
	SurchargeThreshold    float64 `mapstructure:"surchargeThreshold"`
	SurchargeAmount       float64 `mapstructure:"surchargeAmount"`
	TaxRate               float64 `mapstructure:"taxRate"`
}

func (s PricingSettings) toConfig() pricing.Config {
	return pricing.Config{
		PlatformRateHigh:      decimal.NewFromFloat(s.PlatformRateHigh),
		PlatformRateLow:       decimal.NewFromFloat(s.PlatformRateLow),
		PlatformRateThreshold: decimal.NewFromFloat(s.PlatformRateThreshold),
		MinPlatformFeeRate:    decimal.NewFromFloat(s.MinPlatformFeeRate),
		MaxPlatformFeeRate:    decimal.NewFromFloat(s.MaxPlatformFeeRate),
		ProcessorPercent:      decimal.NewFromFloat(s.ProcessorPercent),
		ProcessorFixedFee:     decimal.NewFromFloat(s.ProcessorFixedFee),
		DefaultReferralRate:   decimal.NewFromFloat(s.DefaultReferralRate),
		MinReferralRate:       decimal.NewFromFloat(s.MinReferralRate),
		MaxReferralRate:       decimal.NewFromFloat(s.MaxReferralRate),
		SurchargeThreshold:    decimal.NewFromFloat(s.SurchargeThreshold),
		SurchargeAmount:       decimal.NewFromFloat(s.SurchargeAmount),
		TaxRate:               decimal.NewFromFloat(s.TaxRate),
	}
}

// PricingConfigHolder serves the current engine rate card and hot-reloads
// it when the config file changes. Breakdowns already persisted on product
// or order rows are frozen and unaffected by reloads.
type PricingConfigHolder struct {
	current atomic.Value // holds pricing.Config
}

// PricingConfig implements pricing.ConfigSource.
func (h *PricingConfigHolder) PricingConfig() pricing.Config {
	return h.current.Load().(pricing.Config)
}

// NewPricingConfigHolder reads pricing.yml (volume mount, /etc/beezio, or
// the working directory) and falls back to the production defaults when no
// file exists.
func NewPricingConfigHolder() (*PricingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/beezio/config")
	v.AddConfigPath("/etc/beezio")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BEEZIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &PricingConfigHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(pricing.DefaultConfig())
		return holder, nil
	}

	cfg, err := unmarshalPricing(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := unmarshalPricing(v)
		if err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func unmarshalPricing(v *viper.Viper) (pricing.Config, error) {
	var settings PricingSettings
	if err := v.UnmarshalKey("pricing", &settings); err != nil {
		return pricing.Config{}, err
	}
	cfg := settings.toConfig()
	if err := cfg.Validate(); err != nil {
		return pricing.Config{}, err
	}
	return cfg, nil
}
