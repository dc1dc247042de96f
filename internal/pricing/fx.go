package pricing

import "go.uber.org/fx"

// Module wires the engine against the application's live config source.
var Module = fx.Module("pricing.engine",
	fx.Provide(NewEngineWithSource),
)
