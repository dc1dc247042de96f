package server

import (
	"net/http"
	"strings"

	"github.com/beezio/marketplace/internal/pricing"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type quoteRequest struct {
	SellerDesiredAmount decimal.Decimal        `json:"seller_desired_amount"`
	AffiliateRate       decimal.Decimal        `json:"affiliate_rate"`
	AffiliateType       pricing.CommissionType `json:"affiliate_type"`
	ReferralRate        *decimal.Decimal       `json:"referral_rate"`
	PlatformFeeRate     *decimal.Decimal       `json:"platform_fee_rate"`
	Currency            string                 `json:"currency"`
}

type reverseRequest struct {
	ListingPrice    decimal.Decimal        `json:"listing_price"`
	AffiliateRate   decimal.Decimal        `json:"affiliate_rate"`
	AffiliateType   pricing.CommissionType `json:"affiliate_type"`
	ReferralRate    *decimal.Decimal       `json:"referral_rate"`
	PlatformFeeRate *decimal.Decimal       `json:"platform_fee_rate"`
	Currency        string                 `json:"currency"`
}

type quoteResponse struct {
	Breakdown *pricing.Breakdown         `json:"breakdown"`
	Display   pricing.FormattedBreakdown `json:"display"`
}

func (s *Server) PricingQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	in := pricing.Input{
		SellerDesiredAmount: req.SellerDesiredAmount,
		AffiliateRate:       req.AffiliateRate,
		AffiliateType:       req.AffiliateType,
		ReferralRate:        req.ReferralRate,
		PlatformFeeRate:     req.PlatformFeeRate,
	}
	if msgs := pricing.ValidateInput(in); len(msgs) > 0 {
		errs := make([]ValidationError, 0, len(msgs))
		for _, msg := range msgs {
			errs = append(errs, ValidationError{
				Field:   "pricing",
				Code:    "invalid_pricing",
				Message: msg,
			})
		}
		AbortWithError(c, &ValidationErrors{Errors: errs})
		return
	}

	b, err := s.pricingEng.Calculate(in)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.metrics.ObserveForward()

	c.JSON(http.StatusOK, gin.H{"data": quoteResponse{
		Breakdown: b,
		Display:   pricing.FormatBreakdown(b, req.Currency),
	}})
}

func (s *Server) PricingReverse(c *gin.Context) {
	var req reverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	b, err := s.pricingEng.ReverseFromListingPrice(
		req.ListingPrice,
		req.AffiliateRate,
		req.AffiliateType,
		req.ReferralRate,
		req.PlatformFeeRate,
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.metrics.ObserveReverse()

	c.JSON(http.StatusOK, gin.H{"data": quoteResponse{
		Breakdown: b,
		Display:   pricing.FormatBreakdown(b, req.Currency),
	}})
}

func (s *Server) PricingRecommendations(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("seller_amount"))
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		AbortWithError(c, newValidationError("seller_amount", "invalid_seller_amount",
			"Seller desired amount must be greater than 0"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": s.pricingEng.RecommendedAffiliateRates(amount)})
}
