package service

import (
	"context"
	"testing"
	"time"

	"github.com/beezio/marketplace/internal/order/domain"
	"github.com/beezio/marketplace/internal/order/repository"
	"github.com/beezio/marketplace/internal/pricing"
	productdomain "github.com/beezio/marketplace/internal/product/domain"
	productrepo "github.com/beezio/marketplace/internal/product/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc    domain.Service
	db     *gorm.DB
	node   *snowflake.Node
	engine *pricing.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&productdomain.Product{}, &domain.Order{}, &domain.OrderItem{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	engine := pricing.NewEngine(pricing.DefaultConfig())
	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Products: productrepo.Provide(),
		Engine:   engine,
	})
	return &fixture{svc: svc, db: db, node: node, engine: engine}
}

// seedProduct persists a listing with the breakdown the engine would have
// frozen at creation time.
func (f *fixture) seedProduct(t *testing.T, seller int64, rate int64) *productdomain.Product {
	t.Helper()

	b, err := f.engine.Calculate(pricing.Input{
		SellerDesiredAmount: decimal.NewFromInt(seller),
		AffiliateRate:       decimal.NewFromInt(rate),
		AffiliateType:       pricing.CommissionPercentage,
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	p := &productdomain.Product{
		ID:       f.node.Generate().Int64(),
		SellerID: f.node.Generate().Int64(),
		Title:    "Seeded",
		Slug:     "seeded-" + f.node.Generate().String(),
		Currency: "USD",
		Active:   true,

		CommissionType:  b.AffiliateType,
		CommissionRate:  b.AffiliateRate,
		ReferralRate:    b.ReferralRate,
		PlatformFeeRate: b.PlatformFeeRate,

		SellerAmount:    b.SellerAmount,
		AffiliateAmount: b.AffiliateAmount,
		PlatformFee:     b.PlatformFee,
		ProcessorFee:    b.ProcessorFee,
		ListingPrice:    b.ListingPrice,

		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func TestCheckoutSingleLine(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, 100, 20)

	resp, err := f.svc.Checkout(context.Background(), domain.CheckoutRequest{
		BuyerID: "555555555555555555",
		Items: []domain.CheckoutItem{
			{ProductID: snowflake.ID(p.ID).String(), Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, domain.StatusPendingPayment, resp.Status)
	assert.Equal(t, "USD", resp.Currency)
	assert.NotEmpty(t, resp.OrderNumber)
	assert.False(t, resp.Items[0].Estimated)

	assert.True(t, resp.Items[0].UnitListingPrice.Equal(p.ListingPrice))
	assert.True(t, resp.ListingTotal.Equal(p.ListingPrice.Mul(decimal.NewFromInt(2))))

	// Per line, payouts reconcile against the charge: the referral bonus
	// comes out of the platform share, so net + bonus == platform fee.
	sum := resp.SellerTotal.
		Add(resp.AffiliateTotal).
		Add(resp.ReferralTotal).
		Add(resp.PlatformNetTotal).
		Add(resp.ProcessorTotal)
	assert.True(t, sum.Equal(resp.ListingTotal),
		"payout total %s should equal charge total %s", sum, resp.ListingTotal)
}

func TestCheckoutReferralOverride(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, 100, 10)

	rate := decimal.RequireFromString("0.08")
	resp, err := f.svc.Checkout(context.Background(), domain.CheckoutRequest{
		BuyerID:      "555555555555555555",
		ReferralRate: &rate,
		Items: []domain.CheckoutItem{
			{ProductID: snowflake.ID(p.ID).String(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "0.08", resp.ReferralRate.String())
	assert.Equal(t, "8", resp.ReferralTotal.String())

	// Above-cap overrides clamp to the configured maximum.
	high := decimal.RequireFromString("0.40")
	resp, err = f.svc.Checkout(context.Background(), domain.CheckoutRequest{
		BuyerID:      "555555555555555555",
		ReferralRate: &high,
		Items: []domain.CheckoutItem{
			{ProductID: snowflake.ID(p.ID).String(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "0.1", resp.ReferralRate.String())
}

func TestCheckoutEstimatesLegacyRecords(t *testing.T) {
	f := newFixture(t)

	// A row from before commission policies existed: listing price only.
	now := time.Now().UTC()
	p := &productdomain.Product{
		ID:           f.node.Generate().Int64(),
		SellerID:     f.node.Generate().Int64(),
		Title:        "Legacy",
		Slug:         "legacy-" + f.node.Generate().String(),
		Currency:     "USD",
		Active:       true,
		ListingPrice: decimal.NewFromInt(100),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, f.db.Create(p).Error)

	resp, err := f.svc.Checkout(context.Background(), domain.CheckoutRequest{
		BuyerID: "555555555555555555",
		Items: []domain.CheckoutItem{
			{ProductID: snowflake.ID(p.ID).String(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.True(t, item.Estimated)
	assert.Equal(t, "75", item.UnitSellerAmount.String())
	assert.True(t, item.UnitAffiliateAmount.IsZero())

	sum := item.UnitSellerAmount.
		Add(item.UnitAffiliateAmount).
		Add(item.UnitReferralBonus).
		Add(item.UnitPlatformNet).
		Add(item.UnitProcessorFee)
	assert.True(t, sum.Equal(item.UnitListingPrice))
}

func TestCheckoutValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, 50, 10)

	_, err := f.svc.Checkout(ctx, domain.CheckoutRequest{
		BuyerID: "nope",
		Items:   []domain.CheckoutItem{{ProductID: snowflake.ID(p.ID).String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBuyer)

	_, err = f.svc.Checkout(ctx, domain.CheckoutRequest{BuyerID: "555555555555555555"})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = f.svc.Checkout(ctx, domain.CheckoutRequest{
		BuyerID: "555555555555555555",
		Items:   []domain.CheckoutItem{{ProductID: snowflake.ID(p.ID).String(), Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.svc.Checkout(ctx, domain.CheckoutRequest{
		BuyerID: "555555555555555555",
		Items:   []domain.CheckoutItem{{ProductID: "999999999999999999", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	inactive := f.seedProduct(t, 40, 10)
	require.NoError(t, f.db.Model(&productdomain.Product{}).
		Where("id = ?", inactive.ID).Update("active", false).Error)
	_, err = f.svc.Checkout(ctx, domain.CheckoutRequest{
		BuyerID: "555555555555555555",
		Items:   []domain.CheckoutItem{{ProductID: snowflake.ID(inactive.ID).String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductInactive)
}

func TestGetAndListOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, 60, 15)

	created, err := f.svc.Checkout(ctx, domain.CheckoutRequest{
		BuyerID: "555555555555555555",
		Items:   []domain.CheckoutItem{{ProductID: snowflake.ID(p.ID).String(), Quantity: 3}},
	})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.OrderNumber, got.OrderNumber)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(3), got.Items[0].Quantity)

	_, err = f.svc.Get(ctx, "999999999999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.svc.List(ctx, domain.ListRequest{BuyerID: "555555555555555555"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	other, err := f.svc.List(ctx, domain.ListRequest{BuyerID: "111111111111111111"})
	require.NoError(t, err)
	assert.Empty(t, other)
}
