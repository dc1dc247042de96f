package server

import (
	"context"
	"net/http"
	"time"

	"github.com/beezio/marketplace/internal/config"
	"github.com/beezio/marketplace/internal/metrics"
	"github.com/beezio/marketplace/internal/order"
	orderdomain "github.com/beezio/marketplace/internal/order/domain"
	"github.com/beezio/marketplace/internal/pricing"
	"github.com/beezio/marketplace/internal/product"
	productdomain "github.com/beezio/marketplace/internal/product/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	pricing.Module,
	product.Module,
	order.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	return r
}

func registerGin(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	return NewEngine(log, m)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	metrics    *metrics.Metrics
	pricingEng *pricing.Engine
	productSvc productdomain.Service
	orderSvc   orderdomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	Metrics    *metrics.Metrics
	PricingEng *pricing.Engine
	ProductSvc productdomain.Service
	OrderSvc   orderdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        p.Log.Named("http"),
		metrics:    p.Metrics,
		pricingEng: p.PricingEng,
		productSvc: p.ProductSvc,
		orderSvc:   p.OrderSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	prc := v1.Group("/pricing")
	prc.POST("/quote", s.PricingQuote)
	prc.POST("/reverse", s.PricingReverse)
	prc.GET("/recommendations", s.PricingRecommendations)

	products := v1.Group("/products")
	products.POST("", s.CreateProduct)
	products.GET("", s.ListProducts)
	products.GET("/:id", s.GetProductByID)

	orders := v1.Group("/orders")
	orders.POST("", s.Checkout)
	orders.GET("", s.ListOrders)
	orders.GET("/:id", s.GetOrderByID)
}
