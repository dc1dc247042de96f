package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/beezio/marketplace/internal/order/domain"
	"github.com/beezio/marketplace/internal/pricing"
	productdomain "github.com/beezio/marketplace/internal/product/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Products productdomain.Repository
	Engine   *pricing.Engine
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	products productdomain.Repository
	engine   *pricing.Engine
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("order.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		products: p.Products,
		engine:   p.Engine,
	}
}

func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Response, error) {
	buyerID, err := snowflake.ParseString(strings.TrimSpace(req.BuyerID))
	if err != nil {
		return nil, domain.ErrInvalidBuyer
	}
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	referralRate := s.engine.ResolveReferralRate(req.ReferralRate)
	now := time.Now().UTC()

	order := &domain.Order{
		ID:           s.genID.Generate().Int64(),
		OrderNumber:  ulid.Make().String(),
		BuyerID:      buyerID.Int64(),
		Currency:     strings.ToUpper(strings.TrimSpace(req.Currency)),
		Status:       domain.StatusPendingPayment,
		ReferralRate: referralRate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		productID, err := snowflake.ParseString(strings.TrimSpace(line.ProductID))
		if err != nil {
			return nil, domain.ErrProductNotFound
		}

		p, err := s.products.FindByID(ctx, s.db, productID.Int64())
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrProductNotFound
		}
		if !p.Active {
			return nil, domain.ErrProductInactive
		}
		if order.Currency == "" {
			order.Currency = p.Currency
		} else if order.Currency != p.Currency {
			return nil, domain.ErrMixedCurrency
		}

		b, estimated, err := s.unitBreakdown(p, referralRate)
		if err != nil {
			return nil, err
		}
		split := s.engine.SplitPayout(b)

		qty := decimal.NewFromInt(line.Quantity)
		order.Items = append(order.Items, domain.OrderItem{
			ID:        s.genID.Generate().Int64(),
			OrderID:   order.ID,
			ProductID: p.ID,
			Quantity:  line.Quantity,
			Estimated: estimated,

			UnitListingPrice:    b.ListingPrice,
			UnitSellerAmount:    split.SellerPayout,
			UnitAffiliateAmount: split.AffiliateCommission,
			UnitReferralBonus:   split.ReferralBonus,
			UnitPlatformNet:     split.PlatformNet,
			UnitProcessorFee:    split.ProcessorFee,

			CreatedAt: now,
		})

		order.ListingTotal = order.ListingTotal.Add(b.ListingPrice.Mul(qty))
		order.SellerTotal = order.SellerTotal.Add(split.SellerPayout.Mul(qty))
		order.AffiliateTotal = order.AffiliateTotal.Add(split.AffiliateCommission.Mul(qty))
		order.ReferralTotal = order.ReferralTotal.Add(split.ReferralBonus.Mul(qty))
		order.PlatformNetTotal = order.PlatformNetTotal.Add(split.PlatformNet.Mul(qty))
		order.ProcessorTotal = order.ProcessorTotal.Add(split.ProcessorFee.Mul(qty))
	}

	if err := s.repo.Create(ctx, s.db, order); err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.Int("lines", len(order.Items)),
		zap.String("listing_total", order.ListingTotal.StringFixed(2)),
	)

	resp := toResponse(order)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	o, err := s.repo.FindByID(ctx, s.db, orderID.Int64())
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(o)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	buyerID, err := snowflake.ParseString(strings.TrimSpace(req.BuyerID))
	if err != nil {
		return nil, domain.ErrInvalidBuyer
	}

	orders, err := s.repo.ListByBuyer(ctx, s.db, buyerID.Int64())
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(orders))
	for i := range orders {
		resp = append(resp, toResponse(&orders[i]))
	}
	return resp, nil
}

// unitBreakdown recomputes the per-unit split for a product line at
// purchase time by reverse-solving from the persisted listing price with
// the persisted commission policy. The referral rate may differ from the
// one in effect at listing, since the referrer is only known at checkout.
//
// Rows that predate commission policies have no rate to solve against and
// fall back to the estimator, flagged on the order line.
func (s *Service) unitBreakdown(p *productdomain.Product, referralRate decimal.Decimal) (*pricing.Breakdown, bool, error) {
	if !p.ListingPrice.IsPositive() {
		return nil, false, domain.ErrUnpriceable
	}

	if p.CommissionType == "" {
		b, err := s.engine.EstimateBreakdownFromListingPrice(p.ListingPrice, &referralRate)
		if err != nil {
			return nil, false, domain.ErrUnpriceable
		}
		return b, true, nil
	}

	b, err := s.engine.ReverseFromListingPrice(
		p.ListingPrice,
		p.CommissionRate,
		p.CommissionType,
		&referralRate,
		&p.PlatformFeeRate,
	)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidListingPrice) {
			return nil, false, domain.ErrUnpriceable
		}
		return nil, false, err
	}
	return b, false, nil
}

func toResponse(o *domain.Order) domain.Response {
	items := make([]domain.ItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, domain.ItemResponse{
			ID:        snowflake.ID(it.ID).String(),
			ProductID: snowflake.ID(it.ProductID).String(),
			Quantity:  it.Quantity,
			Estimated: it.Estimated,

			UnitListingPrice:    it.UnitListingPrice,
			UnitSellerAmount:    it.UnitSellerAmount,
			UnitAffiliateAmount: it.UnitAffiliateAmount,
			UnitReferralBonus:   it.UnitReferralBonus,
			UnitPlatformNet:     it.UnitPlatformNet,
			UnitProcessorFee:    it.UnitProcessorFee,

			LineTotal: it.UnitListingPrice.Mul(decimal.NewFromInt(it.Quantity)),
		})
	}

	return domain.Response{
		ID:          snowflake.ID(o.ID).String(),
		OrderNumber: o.OrderNumber,
		BuyerID:     snowflake.ID(o.BuyerID).String(),
		Currency:    o.Currency,
		Status:      o.Status,

		ReferralRate: o.ReferralRate,

		ListingTotal:     o.ListingTotal,
		SellerTotal:      o.SellerTotal,
		AffiliateTotal:   o.AffiliateTotal,
		ReferralTotal:    o.ReferralTotal,
		PlatformNetTotal: o.PlatformNetTotal,
		ProcessorTotal:   o.ProcessorTotal,

		Items:     items,
		CreatedAt: o.CreatedAt,
	}
}
