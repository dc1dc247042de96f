package server

import (
	"net/http"
	"strings"

	"github.com/beezio/marketplace/internal/pricing"
	productdomain "github.com/beezio/marketplace/internal/product/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createProductRequest struct {
	SellerID            string                 `json:"seller_id"`
	Title               string                 `json:"title"`
	Description         *string                `json:"description"`
	Currency            string                 `json:"currency"`
	SellerDesiredAmount decimal.Decimal        `json:"seller_desired_amount"`
	AffiliateRate       decimal.Decimal        `json:"affiliate_rate"`
	AffiliateType       pricing.CommissionType `json:"affiliate_type"`
	ReferralRate        *decimal.Decimal       `json:"referral_rate"`
	PlatformFeeRate     *decimal.Decimal       `json:"platform_fee_rate"`
	Metadata            map[string]any         `json:"metadata"`
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateRequest{
		SellerID:            strings.TrimSpace(req.SellerID),
		Title:               req.Title,
		Description:         req.Description,
		Currency:            req.Currency,
		SellerDesiredAmount: req.SellerDesiredAmount,
		AffiliateRate:       req.AffiliateRate,
		AffiliateType:       req.AffiliateType,
		ReferralRate:        req.ReferralRate,
		PlatformFeeRate:     req.PlatformFeeRate,
		Metadata:            req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProductByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.productSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProducts(c *gin.Context) {
	req := productdomain.ListRequest{
		SellerID: strings.TrimSpace(c.Query("seller_id")),
	}
	if raw := strings.TrimSpace(c.Query("active")); raw != "" {
		active := raw == "true"
		req.Active = &active
	}

	resp, err := s.productSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
