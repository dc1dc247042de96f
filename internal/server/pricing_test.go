package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beezio/marketplace/internal/config"
	"github.com/beezio/marketplace/internal/metrics"
	orderdomain "github.com/beezio/marketplace/internal/order/domain"
	"github.com/beezio/marketplace/internal/pricing"
	productdomain "github.com/beezio/marketplace/internal/product/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProductService struct {
	created *productdomain.CreateRequest
	resp    *productdomain.Response
	err     error
}

func (f *fakeProductService) Create(ctx context.Context, req productdomain.CreateRequest) (*productdomain.Response, error) {
	f.created = &req
	_ = ctx
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &productdomain.Response{ID: "1", Title: req.Title}, nil
}

func (f *fakeProductService) Get(ctx context.Context, id string) (*productdomain.Response, error) {
	_ = ctx
	if f.err != nil {
		return nil, f.err
	}
	return &productdomain.Response{ID: id}, nil
}

func (f *fakeProductService) List(ctx context.Context, req productdomain.ListRequest) ([]productdomain.Response, error) {
	_ = ctx
	_ = req
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

type fakeOrderService struct {
	err error
}

func (f *fakeOrderService) Checkout(ctx context.Context, req orderdomain.CheckoutRequest) (*orderdomain.Response, error) {
	_ = ctx
	_ = req
	if f.err != nil {
		return nil, f.err
	}
	return &orderdomain.Response{ID: "1", Status: orderdomain.StatusPendingPayment}, nil
}

func (f *fakeOrderService) Get(ctx context.Context, id string) (*orderdomain.Response, error) {
	_ = ctx
	if f.err != nil {
		return nil, f.err
	}
	return &orderdomain.Response{ID: id}, nil
}

func (f *fakeOrderService) List(ctx context.Context, req orderdomain.ListRequest) ([]orderdomain.Response, error) {
	_ = ctx
	_ = req
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

func newTestServer(t *testing.T, products productdomain.Service, orders orderdomain.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := metrics.New()
	engine := NewEngine(zap.NewNop(), m)
	NewServer(ServerParams{
		Gin:        engine,
		Cfg:        config.Config{},
		Log:        zap.NewNop(),
		Metrics:    m,
		PricingEng: pricing.NewEngine(pricing.DefaultConfig()),
		ProductSvc: products,
		OrderSvc:   orders,
	})
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestPricingQuoteEndpoint(t *testing.T) {
	engine := newTestServer(t, &fakeProductService{}, &fakeOrderService{})

	w := doJSON(t, engine, http.MethodPost, "/v1/pricing/quote", map[string]any{
		"seller_desired_amount": "100",
		"affiliate_rate":        "20",
		"affiliate_type":        "percentage",
		"platform_fee_rate":     "0.15",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Breakdown pricing.Breakdown          `json:"breakdown"`
			Display   pricing.FormattedBreakdown `json:"display"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "139.65", resp.Data.Breakdown.ListingPrice.StringFixed(2))
	assert.Equal(t, "20.00", resp.Data.Breakdown.AffiliateAmount.StringFixed(2))
	assert.Contains(t, resp.Data.Display.Total, "139.65")
}

func TestPricingQuoteValidationPayload(t *testing.T) {
	engine := newTestServer(t, &fakeProductService{}, &fakeOrderService{})

	w := doJSON(t, engine, http.MethodPost, "/v1/pricing/quote", map[string]any{
		"seller_desired_amount": "0",
		"affiliate_rate":        "120",
		"affiliate_type":        "percentage",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Message string `json:"message"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 2)
	assert.Equal(t, "Seller desired amount must be greater than 0", resp.Error.Errors[0].Message)
	assert.Equal(t, "Affiliate percentage cannot exceed 100%", resp.Error.Errors[1].Message)
}

func TestPricingReverseEndpoint(t *testing.T) {
	engine := newTestServer(t, &fakeProductService{}, &fakeOrderService{})

	w := doJSON(t, engine, http.MethodPost, "/v1/pricing/reverse", map[string]any{
		"listing_price":  "129.99",
		"affiliate_rate": "20",
		"affiliate_type": "percentage",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Breakdown pricing.Breakdown `json:"breakdown"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	diff := resp.Data.Breakdown.ListingPrice.Sub(resp.Data.Breakdown.SellerAmount.
		Add(resp.Data.Breakdown.AffiliateAmount).
		Add(resp.Data.Breakdown.PlatformFee).
		Add(resp.Data.Breakdown.ProcessorFee))
	assert.True(t, diff.IsZero(), "reverse breakdown must reconcile, got diff %s", diff)
}

func TestPricingReverseRejectsNonPositivePrice(t *testing.T) {
	engine := newTestServer(t, &fakeProductService{}, &fakeOrderService{})

	w := doJSON(t, engine, http.MethodPost, "/v1/pricing/reverse", map[string]any{
		"listing_price":  "0",
		"affiliate_rate": "10",
		"affiliate_type": "percentage",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPricingRecommendationsEndpoint(t *testing.T) {
	engine := newTestServer(t, &fakeProductService{}, &fakeOrderService{})

	w := doJSON(t, engine, http.MethodGet, "/v1/pricing/recommendations?seller_amount=30", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data pricing.RateRecommendation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, pricing.RateRecommendation{Low: 10, Medium: 15, High: 25}, resp.Data)

	w = doJSON(t, engine, http.MethodGet, "/v1/pricing/recommendations?seller_amount=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductNotFoundMapsTo404(t *testing.T) {
	engine := newTestServer(t, &fakeProductService{err: productdomain.ErrNotFound}, &fakeOrderService{})

	w := doJSON(t, engine, http.MethodGet, "/v1/products/123", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutValidationMapsTo400(t *testing.T) {
	engine := newTestServer(t, &fakeProductService{}, &fakeOrderService{err: orderdomain.ErrEmptyOrder})

	w := doJSON(t, engine, http.MethodPost, "/v1/orders", map[string]any{
		"buyer_id": "1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 1)
	assert.Equal(t, "empty_order", resp.Error.Errors[0].Code)
	assert.Equal(t, "Order must contain at least one item", resp.Error.Errors[0].Message)
}

func TestHealthz(t *testing.T) {
	engine := newTestServer(t, &fakeProductService{}, &fakeOrderService{})

	w := doJSON(t, engine, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
