package server

import (
	"net/http"
	"strings"

	orderdomain "github.com/beezio/marketplace/internal/order/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type checkoutItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type checkoutRequest struct {
	BuyerID      string                `json:"buyer_id"`
	Currency     string                `json:"currency"`
	ReferralRate *decimal.Decimal      `json:"referral_rate"`
	Items        []checkoutItemRequest `json:"items"`
}

func (s *Server) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items := make([]orderdomain.CheckoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orderdomain.CheckoutItem{
			ProductID: strings.TrimSpace(it.ProductID),
			Quantity:  it.Quantity,
		})
	}

	resp, err := s.orderSvc.Checkout(c.Request.Context(), orderdomain.CheckoutRequest{
		BuyerID:      strings.TrimSpace(req.BuyerID),
		Currency:     req.Currency,
		ReferralRate: req.ReferralRate,
		Items:        items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.metrics.Checkouts.Inc()

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.orderSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOrders(c *gin.Context) {
	resp, err := s.orderSvc.List(c.Request.Context(), orderdomain.ListRequest{
		BuyerID: strings.TrimSpace(c.Query("buyer_id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
