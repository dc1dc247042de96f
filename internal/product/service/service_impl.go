package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beezio/marketplace/internal/pricing"
	"github.com/beezio/marketplace/internal/product/domain"
	"github.com/beezio/marketplace/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Engine *pricing.Engine
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	repo   domain.Repository
	genID  *snowflake.Node
	engine *pricing.Engine
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("product.service"),
		repo:   p.Repo,
		genID:  p.GenID,
		engine: p.Engine,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	sellerID, err := snowflake.ParseString(strings.TrimSpace(req.SellerID))
	if err != nil {
		return nil, domain.ErrInvalidSeller
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	// The engine enforces the same constraints; the precheck exists so
	// callers get every violation at once instead of the first.
	if msgs := pricing.ValidateInput(pricing.Input{
		SellerDesiredAmount: req.SellerDesiredAmount,
		AffiliateRate:       req.AffiliateRate,
		AffiliateType:       req.AffiliateType,
	}); len(msgs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPricing, strings.Join(msgs, "; "))
	}

	breakdown, err := s.engine.Calculate(pricing.Input{
		SellerDesiredAmount: req.SellerDesiredAmount,
		AffiliateRate:       req.AffiliateRate,
		AffiliateType:       req.AffiliateType,
		ReferralRate:        req.ReferralRate,
		PlatformFeeRate:     req.PlatformFeeRate,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ID:          s.genID.Generate().Int64(),
		SellerID:    sellerID.Int64(),
		Title:       title,
		Slug:        slug.Make(title),
		Description: req.Description,
		Currency:    currency,
		Active:      true,

		CommissionType:  breakdown.AffiliateType,
		CommissionRate:  breakdown.AffiliateRate,
		ReferralRate:    breakdown.ReferralRate,
		PlatformFeeRate: breakdown.PlatformFeeRate,

		SellerAmount:    breakdown.SellerAmount,
		AffiliateAmount: breakdown.AffiliateAmount,
		PlatformFee:     breakdown.PlatformFee,
		ProcessorFee:    breakdown.ProcessorFee,
		ListingPrice:    breakdown.ListingPrice,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Metadata != nil {
		p.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Create(ctx, s.db, p); err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Slug collision with another listing; suffix with the ID.
			p.Slug = fmt.Sprintf("%s-%s", p.Slug, snowflake.ID(p.ID).String())
			err = s.repo.Create(ctx, s.db, p)
		}
		if err != nil {
			return nil, err
		}
	}

	s.log.Info("product created",
		zap.String("product_id", snowflake.ID(p.ID).String()),
		zap.String("listing_price", p.ListingPrice.StringFixed(2)),
	)

	resp := s.toResponse(p)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	filter := domain.ListFilter{Active: req.Active}
	if sid := strings.TrimSpace(req.SellerID); sid != "" {
		id, err := snowflake.ParseString(sid)
		if err != nil {
			return nil, domain.ErrInvalidSeller
		}
		filter.SellerID = id.Int64()
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, s.toResponse(&item))
	}
	return resp, nil
}

func (s *Service) toResponse(p *domain.Product) domain.Response {
	breakdown := pricing.Breakdown{
		SellerAmount:    p.SellerAmount,
		AffiliateAmount: p.AffiliateAmount,
		PlatformFee:     p.PlatformFee,
		ProcessorFee:    p.ProcessorFee,
		ListingPrice:    p.ListingPrice,
		ReferralAmount:  p.SellerAmount.Mul(p.ReferralRate).Round(2),
		AffiliateRate:   p.CommissionRate,
		AffiliateType:   p.CommissionType,
		ReferralRate:    p.ReferralRate,
		PlatformFeeRate: p.PlatformFeeRate,
	}

	resp := domain.Response{
		ID:          snowflake.ID(p.ID).String(),
		SellerID:    snowflake.ID(p.SellerID).String(),
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Currency:    p.Currency,
		Active:      p.Active,
		Breakdown:   breakdown,
		Display:     pricing.FormatBreakdown(&breakdown, p.Currency),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if len(p.Metadata) > 0 {
		resp.Metadata = map[string]any(p.Metadata)
	}
	return resp
}
