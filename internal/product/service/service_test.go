package service

import (
	"context"
	"testing"

	"github.com/beezio/marketplace/internal/pricing"
	"github.com/beezio/marketplace/internal/product/domain"
	"github.com/beezio/marketplace/internal/product/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Product{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   repository.Provide(),
		Engine: pricing.NewEngine(pricing.DefaultConfig()),
	})
}

func TestCreateProductFreezesBreakdown(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		SellerID:            "1234567890123456789",
		Title:               "Handmade Ceramic Mug",
		SellerDesiredAmount: decimal.NewFromInt(100),
		AffiliateRate:       decimal.NewFromInt(20),
		AffiliateType:       pricing.CommissionPercentage,
	})
	require.NoError(t, err)

	assert.Equal(t, "handmade-ceramic-mug", resp.Slug)
	assert.Equal(t, "USD", resp.Currency)
	assert.True(t, resp.Active)
	assert.Equal(t, "100", resp.Breakdown.SellerAmount.String())
	assert.Equal(t, "20", resp.Breakdown.AffiliateAmount.String())

	sum := resp.Breakdown.SellerAmount.
		Add(resp.Breakdown.AffiliateAmount).
		Add(resp.Breakdown.PlatformFee).
		Add(resp.Breakdown.ProcessorFee)
	assert.True(t, sum.Equal(resp.Breakdown.ListingPrice),
		"components %s should sum to listing %s", sum, resp.Breakdown.ListingPrice)

	got, err := svc.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, got.Breakdown.ListingPrice.Equal(resp.Breakdown.ListingPrice))
}

func TestCreateProductSlugCollision(t *testing.T) {
	svc := newTestService(t)

	req := domain.CreateRequest{
		SellerID:            "1234567890123456789",
		Title:               "Walnut Cutting Board",
		SellerDesiredAmount: decimal.NewFromInt(45),
		AffiliateRate:       decimal.NewFromInt(10),
		AffiliateType:       pricing.CommissionPercentage,
	}

	first, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "walnut-cutting-board", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "walnut-cutting-board-")
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{
		SellerID:            "not-a-number",
		Title:               "Mug",
		SellerDesiredAmount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSeller)

	_, err = svc.Create(ctx, domain.CreateRequest{
		SellerID:            "1234567890123456789",
		Title:               "   ",
		SellerDesiredAmount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = svc.Create(ctx, domain.CreateRequest{
		SellerID:            "1234567890123456789",
		Title:               "Mug",
		SellerDesiredAmount: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPricing)

	_, err = svc.Create(ctx, domain.CreateRequest{
		SellerID:            "1234567890123456789",
		Title:               "Mug",
		SellerDesiredAmount: decimal.NewFromInt(10),
		AffiliateRate:       decimal.NewFromInt(120),
		AffiliateType:       pricing.CommissionPercentage,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPricing)
}

func TestGetProductNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "999999999999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestListProductsBySeller(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"Mug", "Bowl", "Plate"} {
		_, err := svc.Create(ctx, domain.CreateRequest{
			SellerID:            "1234567890123456789",
			Title:               title,
			SellerDesiredAmount: decimal.NewFromInt(30),
			AffiliateRate:       decimal.NewFromInt(15),
			AffiliateType:       pricing.CommissionPercentage,
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, domain.CreateRequest{
		SellerID:            "987654321098765432",
		Title:               "Vase",
		SellerDesiredAmount: decimal.NewFromInt(80),
		AffiliateRate:       decimal.NewFromInt(10),
		AffiliateType:       pricing.CommissionPercentage,
	})
	require.NoError(t, err)

	items, err := svc.List(ctx, domain.ListRequest{SellerID: "1234567890123456789"})
	require.NoError(t, err)
	assert.Len(t, items, 3)

	all, err := svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
