package product

import (
	"github.com/beezio/marketplace/internal/product/repository"
	"github.com/beezio/marketplace/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
