package order

import (
	"github.com/beezio/marketplace/internal/order/repository"
	"github.com/beezio/marketplace/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
