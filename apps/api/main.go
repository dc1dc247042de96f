package main

import (
	"github.com/beezio/marketplace/internal/config"
	"github.com/beezio/marketplace/internal/logger"
	"github.com/beezio/marketplace/internal/metrics"
	orderdomain "github.com/beezio/marketplace/internal/order/domain"
	productdomain "github.com/beezio/marketplace/internal/product/domain"
	"github.com/beezio/marketplace/internal/server"
	"github.com/beezio/marketplace/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		metrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		fx.Invoke(migrate),

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&productdomain.Product{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	)
}
