package config

import (
	"github.com/beezio/marketplace/internal/pricing"
	"go.uber.org/fx"
)

// Module wires application config and the hot-reloading pricing rate card.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewPricingConfigHolder),
	fx.Provide(func(h *PricingConfigHolder) pricing.ConfigSource { return h }),
)
